package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/minitools-mcp/internal/config"
	"github.com/ironsheep/minitools-mcp/internal/history"
	"github.com/ironsheep/minitools-mcp/internal/ocr"
	"github.com/ironsheep/minitools-mcp/internal/rates"
	"github.com/ironsheep/minitools-mcp/internal/server"
	"github.com/ironsheep/minitools-mcp/internal/tools"
)

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	rateCache := newRateCache(cfg.Currency, logger)

	logger.Info("starting server",
		zap.String("version", Version),
		zap.String("commit", GitCommit),
		zap.String("history", cfg.History.Backend))

	srv := server.New(
		server.WithHistory(store, cfg.History.Limit),
		server.WithRates(rateCache),
		server.WithRecognizer(&ocr.Tesseract{Language: cfg.OCR.Language, TessdataPrefix: cfg.OCR.TessdataPrefix}),
		server.WithCompressDefaults(compressDefaults(cfg.Compress)),
		server.WithLogger(logger),
		server.WithVersion(Version),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rateCache.Run(gctx, cfg.Currency.RefreshInterval)
		return nil
	})
	g.Go(func() error {
		defer stop() // input closed: end the refresh loop too
		return srv.Run(gctx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	logger.Debug("server stopped")
	return nil
}

// openStore opens the configured history backend.
func openStore(cfg config.HistoryConfig) (history.Store, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return history.NewFileStore(cfg.Dir)
	case config.BackendRedis:
		return history.NewRedisStore(cfg.RedisURL, cfg.Prefix)
	default:
		return history.NewMemoryStore(), nil
	}
}

// newRateCache builds the exchange-rate cache over the configured feed.
func newRateCache(cfg config.CurrencyConfig, logger *zap.Logger) *rates.Cache {
	feed := rates.NewFeed(cfg.FeedURL,
		rates.WithTimeout(cfg.Timeout),
		rates.WithMaxRetries(cfg.MaxRetries))

	opts := []rates.CacheOption{rates.WithLogger(logger)}
	if cfg.Fallback {
		opts = append(opts, rates.WithFallback(rates.Table(rates.DefaultStatic())))
	}
	return rates.NewCache(feed, opts...)
}

func compressDefaults(cfg config.CompressConfig) tools.CompressDefaults {
	return tools.CompressDefaults{
		Quality:      cfg.Quality,
		TargetSizeKB: cfg.TargetSizeKB,
		Format:       cfg.Format,
		MaxWidth:     cfg.MaxWidth,
		MaxHeight:    cfg.MaxHeight,
	}
}
