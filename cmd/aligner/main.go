package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"seriesaligner/config"
	"seriesaligner/internal/aligner"
	"seriesaligner/internal/report"
	"seriesaligner/logger"
	"seriesaligner/pkg/vstrader"
	"seriesaligner/pkg/yahoo"

	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to config.yaml")
	flag.Parse()

	// viper config
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// zap logger
	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := newProvider(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("provider setup failed", zap.Error(err))
	}

	// Dates were validated by config.Load
	start, _ := cfg.Batch.Start()
	end, _ := cfg.Batch.End()

	res := aligner.New(provider, zlog).FetchAll(ctx, cfg.Batch.Symbols, start, end)

	if err := report.Outcomes(os.Stdout, res.Outcomes); err != nil {
		zlog.Warn("failed to write outcomes", zap.Error(err))
	}

	if err := res.Err(); err != nil {
		zlog.Error("batch produced no table", zap.Error(err))
		if err := report.NoData(os.Stdout); err != nil {
			zlog.Warn("failed to write report", zap.Error(err))
		}
		return
	}

	filled := aligner.FillMissing(res.Table)
	if err := report.Summary(os.Stdout, res.Table, filled, cfg.Batch.HeadRows); err != nil {
		zlog.Warn("failed to write report", zap.Error(err))
	}
}

func newProvider(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (aligner.Provider, error) {
	switch cfg.Provider.Name {
	case config.ProviderVsTrader:
		var store config.ParameterStore
		if cfg.Env == "prod" && cfg.Provider.APIKeyParameter != "" {
			client, err := config.NewParameterStore(ctx)
			if err != nil {
				return nil, err
			}
			store = client
		}
		key, err := cfg.Provider.ResolveAPIKey(ctx, cfg.Env, store)
		if err != nil {
			return nil, err
		}
		zlog.Info("using provider", zap.String("provider", config.ProviderVsTrader), zap.String("base_url", cfg.Provider.BaseURL))
		return vstrader.NewClient(cfg.Provider.BaseURL, key, cfg.Provider.Proxy, cfg.Provider.Timeout), nil
	default:
		zlog.Info("using provider", zap.String("provider", config.ProviderYahoo))
		return yahoo.NewRESTClient(cfg.Provider.BaseURL, cfg.Provider.Timeout, cfg.Provider.Proxy), nil
	}
}
