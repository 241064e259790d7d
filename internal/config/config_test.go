package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Timezone != "Asia/Kolkata" {
		t.Errorf("timezone = %q, want Asia/Kolkata", cfg.Timezone)
	}
	if cfg.Shop.ConversionRate != 100 || cfg.Shop.MinRedemption != 500 {
		t.Errorf("shop = %+v, want rate 100, min 500", cfg.Shop)
	}
	if cfg.Addr() != "127.0.0.1:8654" {
		t.Errorf("addr = %q, want 127.0.0.1:8654", cfg.Addr())
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levelup.toml")
	body := `
timezone = "UTC"

[shop]
min_redemption = 200

[api]
port = 9000
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("timezone = %q, want UTC", cfg.Timezone)
	}
	if cfg.Shop.MinRedemption != 200 {
		t.Errorf("min redemption = %d, want 200", cfg.Shop.MinRedemption)
	}
	// Fields the file does not mention keep their defaults.
	if cfg.Shop.ConversionRate != 100 {
		t.Errorf("conversion rate = %d, want default 100", cfg.Shop.ConversionRate)
	}
	if cfg.Addr() != "127.0.0.1:9000" {
		t.Errorf("addr = %q, want 127.0.0.1:9000", cfg.Addr())
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levelup.toml")
	if err := os.WriteFile(path, []byte("timezone = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed toml")
	}
}

func TestDefaultPathOverride(t *testing.T) {
	t.Setenv("LEVELUP_CONFIG", "/tmp/custom.toml")
	p, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if p != "/tmp/custom.toml" {
		t.Fatalf("path = %q, want the LEVELUP_CONFIG override", p)
	}
}
