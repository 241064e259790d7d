package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"levelup/internal/ui"
)

func newFocusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Track focused work time on a quest",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "start <quest-id>",
			Short: "Start a focus session",
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

				sess, err := svc.StartTimer(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s focus session started at %s\n",
					ui.Good.Render(ui.IconTimer), sess.StartedAt.Format("15:04:05"))
				return nil
			},
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Stop the running focus session",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				svc, cleanup, err := openService(ctx)
				if err != nil {
					return err
				}
				defer cleanup()

				sess, err := svc.StopTimer(ctx)
				if err != nil {
					return err
				}
				d := time.Duration(sess.DurationSeconds) * time.Second
				fmt.Fprintf(cmd.OutOrStdout(), "%s focused for %s\n", ui.Good.Render(ui.IconTimer), d)
				return nil
			},
		},
		&cobra.Command{
			Use:   "log",
			Short: "List past focus sessions",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				svc, cleanup, err := openService(ctx)
				if err != nil {
					return err
				}
				defer cleanup()

				sessions, err := svc.TimerHistory(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconTimer, "Focus log"))
				if len(sessions) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("No sessions yet."))
					return nil
				}
				for _, s := range sessions {
					state := ui.Warn.Render("running")
					if s.EndedAt != nil {
						state = (time.Duration(s.DurationSeconds) * time.Second).String()
					}
					fmt.Fprintf(out, "%s  quest %s  %s\n",
						s.StartedAt.Format("2006-01-02 15:04"), s.QuestID, state)
				}
				return nil
			},
		},
	)

	return cmd
}
