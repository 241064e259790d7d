package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newAddCmd() *cobra.Command {
	var category string
	var xp int
	var questType string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			q, err := svc.AddQuest(ctx, engine.AddQuestInput{
				Title:    args[0],
				Category: engine.ParseCategory(category),
				XP:       xp,
				Type:     engine.ParseQuestType(questType),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconSparkle+" Added"),
				ui.CategoryIcon(q.Category), q.Title,
				ui.Muted.Render(fmt.Sprintf("(%s, %d xp, %s, id %s)", q.Category, q.XP, q.Type, q.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "Health", "Category (Health|Wealth|Relationships)")
	cmd.Flags().IntVarP(&xp, "xp", "x", 20, "XP reward (5-200)")
	cmd.Flags().StringVarP(&questType, "type", "t", "daily", "Quest type (daily|weekly|oneoff)")

	return cmd
}
