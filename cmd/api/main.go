package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/capsule-journal/internal/adapters/archive"
	"github.com/comitanigiacomo/capsule-journal/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/capsule-journal/internal/adapters/handler/http"
	"github.com/comitanigiacomo/capsule-journal/internal/adapters/repository"
	"github.com/comitanigiacomo/capsule-journal/internal/adapters/wallet"
	"github.com/comitanigiacomo/capsule-journal/internal/config"
	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
	"github.com/comitanigiacomo/capsule-journal/internal/core/services"
	"github.com/comitanigiacomo/capsule-journal/internal/core/workers"
	"github.com/comitanigiacomo/capsule-journal/internal/logger"
)

type application struct {
	handler   http.Handler
	db        *sqlx.DB
	rdb       *redis.Client
	scheduler *workers.CreditScheduler
}

func (a *application) Close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// buildApplication wires the API from cfg. Postgres, Redis and S3 are each
// optional; without Postgres the journal is kept in memory.
func buildApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	app := &application{}

	var (
		entryRepo domain.EntryRepository
		prefRepo  domain.PreferenceRepository
	)

	if cfg.DBName != "" {
		logger.Info("Connecting to database...")
		db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DSN())
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		app.db = db

		if err := repository.RunMigrations(ctx, db.DB); err != nil {
			app.Close()
			return nil, err
		}
		logger.Info("Database connected and migrated.")

		entryRepo = repository.NewPostgresEntryRepository(db)
		prefRepo = repository.NewPostgresPreferenceRepository(db)
	} else {
		logger.Warn("DB_NAME not set, journal is kept in memory")
		entryRepo = repository.NewInMemoryEntryRepository()
		prefRepo = repository.NewInMemoryPreferenceRepository()
	}

	if cfg.RedisEnabled() {
		rdb, err := cache.NewRedisClient(ctx, cache.Options{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Warn("[CACHE] Redis unavailable, running without cache", "err", err)
		} else {
			app.rdb = rdb
			entryRepo = repository.NewCachedEntryRepository(entryRepo, rdb)
		}
	}

	var snapshotArchive domain.SnapshotArchive
	if cfg.ArchiveEnabled() {
		s3Archive, err := archive.NewS3Archive(ctx, archive.Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3BaseEndpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			app.Close()
			return nil, err
		}
		snapshotArchive = s3Archive
	}

	diamonds := wallet.NewInMemoryWallet(0)
	app.scheduler = workers.NewCreditScheduler(diamonds)

	journal := services.NewJournal(entryRepo, prefRepo, snapshotArchive, cfg.Location)

	app.handler = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		EntryHandler:      adapterHTTP.NewEntryHandler(journal.Entries),
		StatsHandler:      adapterHTTP.NewStatsHandler(journal.Stats, cfg.Location),
		PreferenceHandler: adapterHTTP.NewPreferenceHandler(journal.Preferences),
		BackupHandler:     adapterHTTP.NewBackupHandler(journal.Backup),
		ShopHandler:       adapterHTTP.NewShopHandler(services.NewShopService(diamonds, app.scheduler, cfg.PurchaseDelay)),
		DB:                app.db,
		Redis:             app.rdb,
		StartTime:         time.Now(),
	})

	return app, nil
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logger.Fatal("Critical: invalid configuration", "err", err)
	}
	logger.Init(logger.Config{Debug: cfg.LogDebug, File: cfg.LogFile})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := buildApplication(ctx, cfg)
	if err != nil {
		logger.Fatal("Critical: failed to start", "err", err)
	}
	defer app.Close()

	app.scheduler.Start(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Capsule journal API running", "addr", "http://localhost:"+cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Critical server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Stop signal received. Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", "err", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully.")
}
