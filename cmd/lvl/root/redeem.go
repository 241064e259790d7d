package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"levelup/internal/ui"
)

func newRedeemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redeem [coins]",
		Short: "Redeem coins for real-world rewards",
		Long:  "Redeem converts coins to reward currency. Without an amount, lists past redemptions.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()

			if len(args) == 1 {
				coins, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("coins must be a number: %q", args[0])
				}
				r, err := svc.Redeem(ctx, coins)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s Redeemed %s %d coins → %d %s\n",
					ui.Good.Render(ui.IconShop), ui.IconCoin, r.CoinsRedeemed, r.Amount, ui.StatusText(r.Status))
				return nil
			}

			history, err := svc.Redemptions(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Heading(ui.IconShop, "Redemptions"))
			if len(history) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No redemptions yet."))
				return nil
			}
			for _, r := range history {
				fmt.Fprintf(out, "%s  %s %d → %d  %s\n",
					r.CreatedAt.Format("2006-01-02"), ui.IconCoin, r.CoinsRedeemed, r.Amount, ui.StatusText(r.Status))
			}
			return nil
		},
	}

	return cmd
}
