package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"events-api/config"
	"events-api/internal/cache"
	"events-api/internal/database"
	"events-api/internal/handler"
	"events-api/internal/queue"
	"events-api/internal/repository"
	"events-api/internal/service"
	"events-api/internal/worker"
	"events-api/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		log.Printf("Invalid LOG_LEVEL %q, keeping info: %v", cfg.Log.Level, err)
	}
	defer logger.Sync()
	lg := logger.WithComponent("server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := openEventRepository(ctx, &cfg.Database)
	if err != nil {
		lg.Fatal("Failed to initialize database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer closeStore()

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			lg.Fatal("Failed to initialize redis", zap.Error(err))
		}
		defer rdb.Close()
	}

	eventCache, changeQueue, err := newCacheBackends(cfg, rdb)
	if err != nil {
		lg.Fatal("Failed to initialize change stream", zap.String("change_queue", cfg.Cache.ChangeQueue), zap.Error(err))
	}

	eventService := service.NewEventService(repo, eventCache, changeQueue)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	var workerDone <-chan struct{}
	if !cache.IsNoop(eventCache) {
		cacheWorker := worker.NewEventCacheWorker(eventService, changeQueue)
		if err := cacheWorker.Start(workerCtx); err != nil {
			lg.Fatal("Failed to start cache worker", zap.Error(err))
		}
		workerDone = cacheWorker.Done()
	}

	router := handler.NewRouter(cfg.Server, handler.NewEventHandler(eventService))
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("Server listening", zap.String("addr", srv.Addr), zap.String("db_driver", cfg.Database.Driver), zap.Bool("redis", cfg.Redis.Enabled))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("Server shutdown failed", zap.Error(err))
	}

	stopWorker()
	if workerDone != nil {
		select {
		case <-workerDone:
		case <-shutdownCtx.Done():
			lg.Warn("Cache worker did not stop in time")
		}
	}
}

// newCacheBackends picks the cache and change queue. Without a redis client
// both are no-ops and no worker is needed.
func newCacheBackends(cfg *config.Config, rdb *redis.Client) (cache.EventCache, queue.EventChangeQueue, error) {
	if rdb == nil {
		return cache.NewNoopEventCache(), queue.NewNoopEventChangeQueue(), nil
	}
	eventCache := cache.NewRedisEventCache(rdb, cfg.Cache.TTL)
	if cfg.Cache.ChangeQueue == config.ChangeQueueMemory {
		return eventCache, queue.NewEventChangeQueue(256), nil
	}
	changeQueue, err := queue.NewRedisStreamEventChangeQueue(rdb, "", nil)
	if err != nil {
		return nil, nil, err
	}
	return eventCache, changeQueue, nil
}

// openEventRepository connects the configured store, creates the events table
// if needed and returns the repository with its close function.
func openEventRepository(ctx context.Context, cfg *config.DatabaseConfig) (repository.EventRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := database.InitDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsurePostgresSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repository.NewEventRepository(pool), pool.Close, nil
	default:
		db, err := database.InitSQLite(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSQLiteSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repository.NewSQLiteEventRepository(db), func() { _ = db.Close() }, nil
	}
}
