package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/storage"
	"levelup/internal/ui"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List quests with today's completions",
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

			done := make(map[string]bool, len(snap.TodayCompleted))
			for _, id := range snap.TodayCompleted {
				done[id] = true
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Quests — "+snap.Today))
			for _, cat := range []engine.Category{engine.CategoryHealth, engine.CategoryWealth, engine.CategoryRelationships} {
				var group []storage.Quest
				for _, q := range snap.Quests {
					if q.Category == string(cat) {
						group = append(group, q)
					}
				}
				if len(group) == 0 {
					continue
				}
				fmt.Fprintln(out, ui.H2.Render(ui.CategoryIcon(string(cat))+" "+string(cat)))
				for _, q := range group {
					mark := "[ ]"
					if done[q.ID] {
						mark = ui.Good.Render("[x]")
					}
					fmt.Fprintf(out, "  %s %s %s\n", mark, q.Title,
						ui.Muted.Render(fmt.Sprintf("(%d xp, %s, %s)", q.XP, q.Type, q.ID)))
				}
			}
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%d/%d done today", len(snap.TodayCompleted), len(snap.Quests))))
			return nil
		},
	}
}
