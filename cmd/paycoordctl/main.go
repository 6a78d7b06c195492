// Command paycoordctl is the operator CLI for the payment coordinator's
// housekeeping jobs (§6): flushing finalized payment orders and expired
// payment proofs past their retention cutoff, meant to run on a cron
// schedule alongside the worker.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/epandurski/swpt-payments/internal/bootstrap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "paycoordctl",
		Short: "Operator commands for the payment coordinator",
	}

	root.AddCommand(newFlushOrdersCmd(), newFlushProofsCmd())

	return root
}

func newFlushOrdersCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "flush-payment-orders",
		Short: "Delete payment orders finalized at or before the retention cutoff",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap.LoadConfig()
			if err != nil {
				return err
			}

			if days <= 0 {
				days = cfg.FlushPaymentOrdersDays
			}

			svc, err := bootstrap.InitService(cfg)
			if err != nil {
				return err
			}

			cutoff := time.Now().UTC().AddDate(0, 0, -days)

			n, err := svc.Housekeeping.FlushOrders(context.Background(), cutoff)
			if err != nil {
				return err
			}

			fmt.Printf("deleted %d payment orders finalized at or before %s\n", n, cutoff.Format(time.RFC3339))

			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "retention cutoff in days (default: APP_FLUSH_PAYMENT_ORDERS_DAYS, 30)")

	return cmd
}

func newFlushProofsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "flush-payment-proofs",
		Short: "Delete payment proofs paid at or before the retention cutoff",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap.LoadConfig()
			if err != nil {
				return err
			}

			if days <= 0 {
				days = cfg.FlushPaymentProofsDays
			}

			svc, err := bootstrap.InitService(cfg)
			if err != nil {
				return err
			}

			cutoff := time.Now().UTC().AddDate(0, 0, -days)

			n, err := svc.Housekeeping.FlushProofs(context.Background(), cutoff)
			if err != nil {
				return err
			}

			fmt.Printf("deleted %d payment proofs paid at or before %s\n", n, cutoff.Format(time.RFC3339))

			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "retention cutoff in days (default: APP_FLUSH_PAYMENT_PROOFS_DAYS, 180)")

	return cmd
}
