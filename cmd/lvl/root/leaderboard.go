package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/ui"
)

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "leaderboard",
		Aliases: []string{"lb"},
		Short:   "Show this week's XP leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, me, err := svc.WeeklyLeaderboard(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			from, to := svc.Clock().WeekBounds()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Weekly leaderboard (%s to %s)", from, to)))
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nobody has earned XP this week."))
				return nil
			}
			for _, e := range entries {
				name := e.DisplayName
				if name == "" {
					name = e.UserID
				}
				line := fmt.Sprintf("%2d. [%s] %-20s %5d xp", e.Rank, e.Tier, name, e.WeeklyXP)
				if e.UserID == svc.UserID() {
					line = ui.SelectedRow.Render(line)
				}
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, ui.LabelValue("You", fmt.Sprintf("rank %d, tier %s, %d xp this week", me.Rank, me.Tier, me.WeeklyXP)))
			return nil
		},
	}
}
