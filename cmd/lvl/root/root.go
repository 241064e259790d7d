package root

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "lvl",
	Short:         "LevelUp — gamified habit tracker (Health · Wealth · Relationships)",
	Long:          "LevelUp is a local-first habit tracker: complete daily quests to earn XP, coins, levels and streaks.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoneCmd(),
		newUndoCmd(),
		newDeleteCmd(),
		newListCmd(),
		newStatusCmd(),
		newJournalCmd(),
		newHistoryCmd(),
		newFocusCmd(),
		newRedeemCmd(),
		newThemeCmd(),
		newLeaderboardCmd(),
		newExportCmd(),
		newImportCmd(),
		newBoardCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+friendly(err)))
		os.Exit(1)
	}
}

// friendly maps the ledger's error taxonomy to a human sentence; any
// other error passes through as-is.
func friendly(err error) string {
	switch {
	case errors.Is(err, engine.ErrQuestNotFound):
		return "That quest does not exist."
	case errors.Is(err, engine.ErrNotCompleted):
		return "That quest is not completed today, so there is nothing to undo."
	case errors.Is(err, engine.ErrInsufficientCoins):
		return "Not enough coins for that."
	case errors.Is(err, engine.ErrImportInvalid):
		return "That file is not a valid LevelUp export: " + err.Error()
	default:
		return err.Error()
	}
}
