package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past days: completions and journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			days, err := svc.History(ctx)
			if err != nil {
				return err
			}
			if limit > 0 && len(days) > limit {
				days = days[:limit]
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconJournal, "History"))
			if len(days) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing yet. Complete a quest or write a journal entry."))
				return nil
			}
			for _, day := range days {
				fmt.Fprintf(out, "%s %s\n", ui.H2.Render(day.Date),
					ui.Muted.Render(fmt.Sprintf("(%d completed)", len(day.Completed))))
				for _, id := range day.Completed {
					title := day.Titles[id]
					if title == "" {
						title = id // quest deleted since
					}
					fmt.Fprintf(out, "  %s %s\n", ui.Good.Render("✓"), title)
				}
				if day.Affirmation != "" {
					fmt.Fprintf(out, "  %s\n", ui.Muted.Render("“"+day.Affirmation+"”"))
				}
				if day.Notes != "" {
					fmt.Fprintf(out, "  %s\n", ui.Muted.Render(day.Notes))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 14, "Maximum days to show (0 = all)")

	return cmd
}
