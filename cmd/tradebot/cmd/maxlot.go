package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var maxlotCmd = &cobra.Command{
	Use:   "maxlot SYMBOL",
	Short: "Estimate the largest openable position from free margin",
	Long: `Divide free margin by the margin a single lot requires and report the
result floored to the broker's 0.01 lot step.

Example:
  tradebot maxlot EURUSD`,
	Args: cobra.ExactArgs(1),
	RunE: runMaxlot,
}

func init() {
	rootCmd.AddCommand(maxlotCmd)
}

func runMaxlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, err := buildServices(cfg)
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	symbol := args[0]
	ctx := context.Background()
	lots := svc.advisor.MaxLotSize(ctx, symbol)
	margin := svc.sizer.MarginRequired(ctx, symbol, 1.0)

	fmt.Printf("Capacity for %s:\n", symbol)
	fmt.Printf("  Max lots:       %.2f\n", lots)
	fmt.Printf("  Margin per lot: $%.2f\n", margin)
	return nil
}
