package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LevelUp theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconQuest    = "🗺️"
	IconSparkle  = "✨"
	IconDone     = "✅"
	IconUndone   = "↩️"
	IconTrophy   = "🏆"
	IconFlame    = "🔥"
	IconCoin     = "🪙"
	IconHeart    = "❤️"
	IconGem      = "💎"
	IconHands    = "🤝"
	IconJournal  = "📓"
	IconTimer    = "⏱️"
	IconShop     = "🛒"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconError    = "🧨"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// CategoryIcon maps a life domain to its glyph.
func CategoryIcon(category string) string {
	switch category {
	case "Health":
		return IconHeart
	case "Wealth":
		return IconGem
	case "Relationships":
		return IconHands
	default:
		return IconQuest
	}
}

func StatusText(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed":
		return Good.Render("completed")
	case "pending":
		return Warn.Render("pending")
	case "processing":
		return H2.Render("processing")
	case "rejected":
		return Bad.Render("rejected")
	default:
		return Muted.Render(status)
	}
}
