package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tradebot/api"
	"tradebot/config"
	"tradebot/journal"
	"tradebot/pkg/id"
	"tradebot/rates"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the data feed, analysis loop and HTTP API",
	Long: `Start the bot: the refresher keeps candle history hot for every
configured symbol, market conditions are re-classified on a fixed cadence and
written to the journal, and the HTTP API serves the current state.

Example:
  tradebot run -f examples/configs/basic.yaml`,
	RunE: runRun,
}

var runAnalysisInterval time.Duration

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().DurationVar(&runAnalysisInterval, "analysis-interval", time.Minute, "cadence for journaled condition snapshots")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, err := buildServices(cfg)
	if err != nil {
		return err
	}
	defer svc.log.Sync()

	j, err := openJournal(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j != nil {
		defer j.Close()
	}

	interval, _ := cfg.Feed.ParseInterval()
	backoff, _ := cfg.Feed.ParseBackoff()
	stopTimeout, _ := cfg.Feed.ParseStopTimeout()

	refresher := rates.NewRefresher(svc.cache, rates.RefresherOptions{
		Interval:    interval,
		Backoff:     backoff,
		StopTimeout: stopTimeout,
		Count:       cfg.Feed.Retention,
	}, svc.log)
	refresher.Start(cfg.Feed.Symbols)
	defer refresher.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var httpSrv *http.Server
	if cfg.API.Enabled {
		srv := api.NewServer(svc.source, svc.cache, svc.analyzer, svc.sizer, svc.advisor, svc.log)
		httpSrv = &http.Server{Addr: cfg.API.Addr, Handler: srv.Router()}
		go func() {
			svc.log.Info("http api listening", zap.String("addr", cfg.API.Addr))
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				svc.log.Error("http server failed", zap.Error(err))
			}
		}()
	}

	go analysisLoop(ctx, svc, j, cfg.Feed.Symbols)

	<-ctx.Done()
	svc.log.Info("shutting down")

	if httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			svc.log.Warn("http shutdown", zap.Error(err))
		}
	}

	return nil
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	case "csv":
		return journal.NewCSV(cfg.Journal.ConditionsFile, cfg.Journal.SizingsFile)
	default:
		return nil, nil
	}
}

// analysisLoop re-classifies every symbol on a fixed cadence and journals the
// snapshots. Journal failures are logged, never fatal.
func analysisLoop(ctx context.Context, svc *services, j journal.Journal, symbols []string) {
	ticker := time.NewTicker(runAnalysisInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		for _, symbol := range symbols {
			if open, err := svc.source.IsMarketOpen(ctx, symbol); err == nil && !open {
				svc.log.Debug("market closed, skipping analysis", zap.String("symbol", symbol))
				continue
			}
			cond := svc.analyzer.Analyze(ctx, symbol)
			svc.log.Info("market condition",
				zap.String("symbol", symbol),
				zap.String("condition", string(cond.Condition)),
				zap.String("trend", string(cond.Trend)),
				zap.String("volatility", string(cond.Volatility)))

			if j == nil {
				continue
			}
			err := j.RecordCondition(journal.ConditionRecord{
				ID:         id.New(),
				Time:       time.Now().UTC(),
				Symbol:     symbol,
				Condition:  string(cond.Condition),
				Trend:      string(cond.Trend),
				Volatility: string(cond.Volatility),
			})
			if err != nil {
				svc.log.Warn("journal condition", zap.String("symbol", symbol), zap.Error(err))
			}
		}
	}
}
