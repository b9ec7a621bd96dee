package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradebot/journal"
	"tradebot/pkg/id"
	"tradebot/risk"
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Size a position for a given entry, stop and risk budget",
	Long: `Compute the lot size that loses the given percentage of the account
balance if the stop is hit, clamped to the configured lot bounds.

Example:
  tradebot size -s EURUSD --entry 1.1050 --stop 1.1000 --risk 1.0`,
	RunE: runSize,
}

var (
	sizeSymbol string
	sizeEntry  float64
	sizeStop   float64
	sizeRisk   float64
)

func init() {
	rootCmd.AddCommand(sizeCmd)

	sizeCmd.Flags().StringVarP(&sizeSymbol, "symbol", "s", "", "symbol to size (required)")
	sizeCmd.Flags().Float64Var(&sizeEntry, "entry", 0, "entry price (required)")
	sizeCmd.Flags().Float64Var(&sizeStop, "stop", 0, "stop loss price (required)")
	sizeCmd.Flags().Float64Var(&sizeRisk, "risk", 0, "risk percent of balance, 0 uses the configured default")
	sizeCmd.MarkFlagRequired("symbol")
	sizeCmd.MarkFlagRequired("entry")
	sizeCmd.MarkFlagRequired("stop")
}

func runSize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, err := buildServices(cfg)
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	result := svc.sizer.LotSize(context.Background(), risk.SizingRequest{
		Symbol:      sizeSymbol,
		EntryPrice:  sizeEntry,
		StopLoss:    sizeStop,
		RiskPercent: sizeRisk,
	})

	fmt.Printf("Position size for %s:\n", sizeSymbol)
	fmt.Printf("  Lots:        %.2f\n", result.Lots)
	fmt.Printf("  Policy:      %s\n", result.Policy)
	fmt.Printf("  Risk amount: $%.2f\n", result.RiskAmount)
	fmt.Printf("  Stop pips:   %.1f\n", result.RiskPips)

	if j, err := openJournal(cfg); err == nil && j != nil {
		defer j.Close()
		err = j.RecordSizing(journal.SizingRecord{
			ID:          id.New(),
			Time:        time.Now().UTC(),
			Symbol:      sizeSymbol,
			EntryPrice:  sizeEntry,
			StopLoss:    sizeStop,
			RiskPercent: sizeRisk,
			Lots:        result.Lots,
			Policy:      string(result.Policy),
		})
		if err != nil {
			fmt.Printf("\nwarning: journal write failed: %v\n", err)
		}
	}
	return nil
}
