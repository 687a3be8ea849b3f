package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/config"
	"github.com/kailas-cloud/jobmatch/internal/db"
	dbRedis "github.com/kailas-cloud/jobmatch/internal/db/redis"
	"github.com/kailas-cloud/jobmatch/internal/domain"
	dommatch "github.com/kailas-cloud/jobmatch/internal/domain/match"
	logpkg "github.com/kailas-cloud/jobmatch/internal/logger"
	"github.com/kailas-cloud/jobmatch/internal/metrics"
	"github.com/kailas-cloud/jobmatch/internal/repository/matchcache"
	chiTransport "github.com/kailas-cloud/jobmatch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/jobmatch/internal/usecase/health"
	matchuc "github.com/kailas-cloud/jobmatch/internal/usecase/match"
	"github.com/kailas-cloud/jobmatch/internal/version"
)

func newServeCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP matching API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger, err := logpkg.NewLogger(global.env, cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg, global.env, logger)
		},
	}
}

func runServe(ctx context.Context, cfg config.Config, env string, logger *zap.Logger) error {
	logger.Info("Starting jobmatch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("language", cfg.Matcher.Language),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// Register match metrics explicitly (no init())
	metrics.RegisterMatchMetrics()

	handler, cleanup, err := buildHandler(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// buildHandler is the composition root: stop words -> matcher -> cache ->
// instrumentation -> HTTP router. The returned cleanup closes the cache store.
func buildHandler(ctx context.Context, cfg config.Config, logger *zap.Logger) (http.Handler, func(), error) {
	built, err := matchuc.NewFromConfig(toMatcherConfig(cfg.Matcher))
	if err != nil {
		// Stop words are required for every request; refuse to start without them.
		return nil, nil, fmt.Errorf("build matcher: %w", err)
	}
	logger.Info("Matcher ready",
		zap.String("language", built.Lexicon.Language().String()),
		zap.Int("stop_words", built.Lexicon.Len()),
		zap.String("fingerprint", built.Fingerprint),
	)

	cleanup := func() {}
	var analyzer dommatch.Analyzer = built.Service

	// Pass nil interface (not typed nil pointer!) when the cache is disabled.
	var cachePinger healthuc.CachePinger
	if cfg.Cache.Enabled {
		store, err := openCache(ctx, cfg.Cache, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup = store.Close
		cachePinger = store
		analyzer = matchcache.New(
			analyzer, store, time.Duration(cfg.Cache.TTLSec)*time.Second,
			built.Fingerprint, metrics.MatchCacheTotal, logger,
		)
	}

	analyzer = matchuc.NewInstrumented(analyzer, logger)

	// Health probes the bare service so probes never touch the cache or skew metrics.
	healthSvc := healthuc.New(newMatchProber(built.Service), cachePinger)

	server := chiTransport.NewServer(analyzer, healthSvc, chiTransport.Limits{
		MaxBodyBytes:   cfg.Limits.MaxBodyBytes,
		MaxUploadBytes: cfg.Limits.MaxUploadBytes,
	}, logger)

	return chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger), cleanup, nil
}

func openCache(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (db.Store, error) {
	switch cfg.Driver {
	case "valkey", "redis":
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("cache not ready: %w", err)
	}
	logger.Info("Connected to cache",
		zap.String("driver", cfg.Driver),
		zap.Strings("addrs", cfg.Addrs),
	)
	return store, nil
}

func toMatcherConfig(m config.MatcherConfig) domain.MatcherConfig {
	return domain.MatcherConfig{
		Language:       m.Language,
		StopWords:      m.StopWords,
		StopWordsFile:  m.StopWordsFile,
		TopN:           m.TopN,
		MaxFeatures:    m.MaxFeatures,
		MinTokenLength: m.MinTokenLength,
		TieBreak:       m.TieBreak,
		FoldDiacritics: m.FoldDiacritics,
	}
}

// matchProber adapts an Analyzer to health.MatchProber.
type matchProber struct {
	analyzer dommatch.Analyzer
}

func newMatchProber(analyzer dommatch.Analyzer) *matchProber {
	return &matchProber{analyzer: analyzer}
}

func (p *matchProber) Analyze(ctx context.Context, jobDescription, resume string, topN int) (float64, error) {
	res, err := p.analyzer.Analyze(ctx, jobDescription, resume, topN)
	if err != nil {
		return 0, fmt.Errorf("match probe: %w", err)
	}
	return res.Similarity(), nil
}
