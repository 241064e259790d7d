package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"levelup/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, XP, coins and streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap, err := svc.Snapshot(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			name := snap.Profile.DisplayName
			if name == "" {
				name = "Adventurer"
			}
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, name))
			fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d  %s %d/%d xp",
				snap.Level.Level,
				statusBar(snap.Level.Progress, 20),
				snap.Stats.XP-snap.Level.CurrentLevelXP,
				snap.Level.NextLevelXP-snap.Level.CurrentLevelXP)))
			fmt.Fprintln(out, ui.LabelValue("Total XP", snap.Stats.XP))
			fmt.Fprintln(out, ui.LabelValue("Coins", fmt.Sprintf("%s %d", ui.IconCoin, snap.Stats.Coins)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d (best %d)", ui.IconFlame, snap.Stats.CurrentStreak, snap.Stats.BestStreak)))
			fmt.Fprintln(out, ui.LabelValue("Vitality", fmt.Sprintf("%s %d", ui.IconHeart, snap.Stats.Vitality)))
			fmt.Fprintln(out, ui.LabelValue("Mana", fmt.Sprintf("%s %d", ui.IconGem, snap.Stats.Mana)))
			fmt.Fprintln(out, ui.LabelValue("Today", fmt.Sprintf("%d/%d quests done", len(snap.TodayCompleted), len(snap.Quests))))
			return nil
		},
	}
}

func statusBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	return ui.Gold.Render(strings.Repeat("█", filled)) + ui.Muted.Render(strings.Repeat("░", width-filled))
}
