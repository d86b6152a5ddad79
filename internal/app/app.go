package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/shelf/internal/config"
	"github.com/MrSnakeDoc/shelf/internal/httpserver"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/metadata"
	"github.com/MrSnakeDoc/shelf/internal/redis"
	"github.com/MrSnakeDoc/shelf/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/shelf/internal/store/redis"
	"github.com/MrSnakeDoc/shelf/internal/utils"
	"github.com/MrSnakeDoc/shelf/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	enricher    *scheduler.Enricher
	reloader    *scheduler.BookmarkReloader
	gc          *scheduler.GarbageCollector
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.OptionsFromConfig(cfg), loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	memIndex := index.NewMemoryIndex()
	store := redisstore.NewStore(redisClient)

	// Redis holds everything created through the API; the seed file only adds to it
	syncer := scheduler.NewRedisSyncer(store, memIndex, loggerClient)
	if err := syncer.Sync(context.Background()); err != nil {
		loggerClient.Warn("failed to sync from redis on startup, starting empty",
			logger.Error(err))
	}

	fetcher := metadata.NewFetcher(metadata.Options{
		Timeout:  cfg.MetadataTimeout,
		CacheTTL: cfg.MetadataCacheTTL,
	}, store, loggerClient.With(logger.String("component", "metadata")))

	enricher := scheduler.NewEnricher(fetcher, store, memIndex, loggerClient, cfg.EnrichQueueSize)

	gc := scheduler.NewGarbageCollector(
		store,
		memIndex,
		loggerClient,
		cfg.GCInterval,
		cfg.GCThreshold,
	)

	// Initialize seed reloader (if a seed file is configured)
	var reloader *scheduler.BookmarkReloader
	var reloadTrigger chan struct{}
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured, initializing seed reloader",
			logger.String("file", cfg.SeedFile))
		reloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewBookmarkReloader(
			cfg.SeedFile,
			store,
			memIndex,
			enricher,
			loggerClient,
			cfg.ReloadInterval,
			reloadTrigger,
		)
	} else {
		loggerClient.Info("seed file not configured, bookmarks come from the API only")
	}

	d := deps.Deps{
		Logger:               loggerClient,
		StartTime:            time.Now(),
		Version:              version.Version,
		Commit:               version.Commit,
		BuildDate:            version.BuildDate,
		GoVersion:            version.GoVersion,
		TimeNow:              time.Now,
		AllowedHosts:         cfg.AllowedHosts,
		AllowedCIDRS:         cfg.AllowedCIDRS,
		TrustProxy:           cfg.TrustProxy,
		Store:                store,
		MemoryIndex:          memIndex,
		Fetcher:              fetcher,
		Enricher:             enricher,
		ReloadTrigger:        reloadTrigger,
		RankThreshold:        cfg.RankThreshold,
		StrongMatchThreshold: cfg.StrongMatchThreshold,
		DefaultLimit:         cfg.DefaultLimit,
		MaxLimit:             cfg.MaxLimit,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memIndex:    memIndex,
		enricher:    enricher,
		reloader:    reloader,
		gc:          gc,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Shelf %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The enricher goes first so seeded bookmarks are picked up right away
	if err := a.enricher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start enricher: %w", err)
	}
	a.logger.Info("metadata enricher started",
		logger.Int("queue_size", a.cfg.EnrichQueueSize))

	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start seed reloader: %w", err)
		}
		a.logger.Info("seed reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	if err := a.gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval),
		logger.Duration("threshold", a.cfg.GCThreshold))

	a.logger.Info("bookmarks ready",
		logger.Int("bookmarks", a.memIndex.BookmarkCount()),
		logger.Int("categories", a.memIndex.CategoryCount()))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.reloader != nil {
		a.reloader.Stop()
	}
	a.gc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// after the server, so no handler enqueues into a stopped worker
	a.enricher.Stop()

	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, a.logger, "redis")
		a.logger.Info("✅ Redis closed")
	}

	a.logger.Info("✅ Shelf stopped cleanly")
	return nil
}
