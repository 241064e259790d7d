package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <quest-id>",
		Short: "Complete a quest for today",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("quest id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.Complete(ctx, args[0])
			if errors.Is(err, engine.ErrAlreadyCompleted) {
				// Completing twice is idempotent success.
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Already completed today."))
				return nil
			}
			if err != nil {
				return err
			}

			line := fmt.Sprintf("%s %s %s", ui.Good.Render(ui.IconDone+" Completed"), res.Title,
				ui.Gold.Render(fmt.Sprintf("+%d XP, +%d coins", res.XPDelta, res.CoinsDelta)))
			fmt.Fprintln(cmd.OutOrStdout(), line)
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%s %d (best %d)", ui.IconFlame, res.Streak, res.BestStreak)))
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s Level %d → %d\n", ui.BadgeLevelUp, ui.IconTrophy, res.LevelBefore, res.LevelAfter)
			}
			return nil
		},
	}

	return cmd
}
