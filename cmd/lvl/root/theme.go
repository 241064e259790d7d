package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/ui"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			profile, err := svc.ProfileRepo().GetOrCreate(ctx, svc.UserID())
			if err != nil {
				return err
			}

			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Theme", profile.Theme))
				return nil
			}

			if args[0] != "light" && args[0] != "dark" {
				return fmt.Errorf("theme must be light or dark, got %q", args[0])
			}
			profile.Theme = args[0]
			if err := svc.ProfileRepo().Update(ctx, profile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s theme set to %s\n", ui.Good.Render(ui.IconSparkle), args[0])
			return nil
		},
	}
}
