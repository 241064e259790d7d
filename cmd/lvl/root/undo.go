package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/ui"
)

func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <quest-id>",
		Short: "Undo today's completion of a quest",
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

			res, err := svc.Uncomplete(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Warn.Render(ui.IconUndone+" Undone"), res.Title,
				ui.Muted.Render(fmt.Sprintf("(%d XP, %d coins returned to the pool)", -res.XPDelta, -res.CoinsDelta)))
			if res.LevelAfter < res.LevelBefore {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Level %d → %d\n", ui.Muted.Render("back down:"), res.LevelBefore, res.LevelAfter)
			}
			return nil
		},
	}
}
