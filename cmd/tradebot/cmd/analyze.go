package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL [SYMBOL...]",
	Short: "Classify the current market condition for one or more symbols",
	Long: `Fetch recent H1 and H4 history and classify each symbol as trending or
ranging, with trend direction and a volatility level.

Example:
  tradebot analyze EURUSD XAUUSD`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, err := buildServices(cfg)
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	ctx := context.Background()
	fmt.Printf("%-10s %-10s %-8s %s\n", "SYMBOL", "CONDITION", "TREND", "VOLATILITY")
	for _, symbol := range args {
		cond := svc.analyzer.Analyze(ctx, symbol)
		fmt.Printf("%-10s %-10s %-8s %s\n", symbol, cond.Condition, cond.Trend, cond.Volatility)
	}
	return nil
}
