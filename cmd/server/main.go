package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/pandorahunt/boxhunt/internal/config"
	"github.com/pandorahunt/boxhunt/internal/database"
	"github.com/pandorahunt/boxhunt/internal/hunt"
	"github.com/pandorahunt/boxhunt/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- MongoDB ---
	db, err := database.Open(ctx, cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		return fmt.Errorf("connecting to mongodb: %w", err)
	}
	defer db.Client().Disconnect(context.Background())

	if err := database.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensuring indexes: %w", err)
	}
	logger.Info("connected to mongodb", "db", cfg.MongoDB)

	// --- Redis ---
	rdb, err := openRedis(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer rdb.Close()
	logger.Info("connected to redis")

	// --- Wiring ---
	store := server.NewMongoPlaces(db)
	svc := hunt.NewService(store)
	cache := server.NewNearbyCache(rdb, cfg.NearbyCacheTTL, logger)

	if cfg.SeedDemo {
		if err := server.SeedDemoPlaces(ctx, logger, store); err != nil {
			return err
		}
	}

	srv := server.New(cfg.HTTPAddr, logger, svc, cache, map[string]server.Checker{
		"mongodb": mongoChecker{db},
		"redis":   redisChecker{rdb},
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

// mongoChecker adapts *mongo.Database to server.Checker.
type mongoChecker struct{ db *mongo.Database }

func (m mongoChecker) Check(ctx context.Context) error { return m.db.Client().Ping(ctx, nil) }

// redisChecker adapts *redis.Client to server.Checker.
type redisChecker struct{ client *redis.Client }

func (r redisChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }
