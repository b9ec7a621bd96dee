package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tradebot/analysis"
	"tradebot/broker/sim"
	"tradebot/config"
	"tradebot/internal/logutil"
	"tradebot/rates"
	"tradebot/risk"
)

var rootCmd = &cobra.Command{
	Use:   "tradebot",
	Short: "A market data cache, analysis and position sizing service for retail FX",
	Long: `Tradebot keeps multi-timeframe candle history hot in memory, classifies
market conditions from it, and sizes positions against a fixed risk budget.

It provides tools for:
  - Continuous background refresh of candle data across timeframes
  - Trend and volatility classification per symbol
  - Risk-based position sizing with hard lot bounds
  - Margin-capacity estimates from free margin
  - A read-only HTTP API with Prometheus metrics`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var (
	cfgFile string
	simSeed int64
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "config file (YAML or JSON), defaults to built-in settings")
	rootCmd.PersistentFlags().Int64Var(&simSeed, "seed", 42, "seed for the synthetic quote source")
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFromFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// services is the wired object graph every command works against.
type services struct {
	log      *zap.Logger
	source   *sim.Source
	cache    *rates.Cache
	analyzer *analysis.Analyzer
	sizer    *risk.Sizer
	advisor  *risk.CapacityAdvisor
}

func buildServices(cfg *config.Config) (*services, error) {
	log, err := logutil.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	source := sim.NewSource(simSeed)
	cache := rates.NewCache(source, cfg.Feed.Retention, log)
	analyzer := analysis.NewAnalyzer(cache, log)
	sizer := risk.NewSizer(source, cfg.SpecTable(), risk.Limits{
		DefaultRiskPercent: cfg.Risk.DefaultRiskPercent,
		MinLot:             cfg.Risk.MinLot,
		MaxLot:             cfg.Risk.MaxLot,
	}, log)
	advisor := risk.NewCapacityAdvisor(source, sizer, log)

	return &services{
		log:      log,
		source:   source,
		cache:    cache,
		analyzer: analyzer,
		sizer:    sizer,
		advisor:  advisor,
	}, nil
}
