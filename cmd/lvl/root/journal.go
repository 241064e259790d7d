package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/ui"
)

func newJournalCmd() *cobra.Command {
	var date string
	var notes string
	var affirmation string

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write today's journal entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if notes == "" && affirmation == "" {
				// No flags: show the entry instead of blanking it.
				day := date
				if day == "" {
					day = svc.Clock().Today()
				}
				view, err := svc.Day(ctx, day)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconJournal, "Journal — "+view.Date))
				if view.Notes == "" && view.Affirmation == "" {
					fmt.Fprintln(out, ui.Muted.Render("Nothing written yet. Use --notes / --affirmation."))
					return nil
				}
				if view.Affirmation != "" {
					fmt.Fprintln(out, ui.LabelValue("Affirmation", view.Affirmation))
				}
				if view.Notes != "" {
					fmt.Fprintln(out, ui.LabelValue("Notes", view.Notes))
				}
				return nil
			}

			// Writing one field keeps the other.
			day := date
			if day == "" {
				day = svc.Clock().Today()
			}
			existing, err := svc.Day(ctx, day)
			if err != nil {
				return err
			}
			if notes == "" {
				notes = existing.Notes
			}
			if affirmation == "" {
				affirmation = existing.Affirmation
			}

			if err := svc.SaveJournal(ctx, date, notes, affirmation); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconJournal+" Journal saved."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Free-form notes for the day")
	cmd.Flags().StringVarP(&affirmation, "affirmation", "a", "", "Daily affirmation")

	return cmd
}
