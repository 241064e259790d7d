package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/ui"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <quest-id>",
		Short: "Delete a quest and its completion history",
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

			res, err := svc.DeleteQuest(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Bad.Render("Deleted"), res.Title)
			if res.Completions > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf(
					"%d completions removed, -%d XP, -%d coins", res.Completions, res.XPRemoved, res.CoinsLost)))
			}
			return nil
		},
	}
}
