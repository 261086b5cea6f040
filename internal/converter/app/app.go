package converterApp

import (
	"context"
	"log"
	"log/slog"
	"os"

	redisPack "github.com/redis/go-redis/v9"
	"github.com/welezhka/converter/deploy/config"
	"github.com/welezhka/converter/internal/converter/adapter/api_client/freecurrency"
	"github.com/welezhka/converter/internal/converter/adapter/storage/postgres"
	"github.com/welezhka/converter/internal/converter/adapter/storage/redis"
	"github.com/welezhka/converter/internal/converter/ports/http/public"
	"github.com/welezhka/converter/internal/converter/service"
)

type ConverterApp struct {
	cfg *config.Config
}

func NewConverterApp(cfg *config.Config) *ConverterApp {
	return &ConverterApp{cfg: cfg}
}

func (a *ConverterApp) Start(ctx context.Context) <-chan struct{} {
	a.initLogger()
	slog.Info("Logger initialized")

	pgStorage := a.initDatabase(ctx)
	slog.Info("Storage initialized")

	rdStorage := a.initRedis(ctx)
	slog.Info("Redis cache initialized")

	client := freecurrency.NewClient(a.cfg)
	slog.Info("Rate source client initialized")

	converterService := a.initService(client, pgStorage, rdStorage)
	slog.Info("Service initialized")

	serverDone := public.StartServer(ctx, converterService, a.cfg)
	slog.Info("server started", "port", a.cfg.HTTPServer.Port)

	return serverDone
}

func (a *ConverterApp) initLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: false,
	}))
	slog.SetDefault(logger)
}

func (a *ConverterApp) initDatabase(ctx context.Context) *postgres.Storage {
	pgStorage, err := postgres.New(ctx, a.cfg)
	if err != nil {
		log.Fatalln("Failed to initialize PostgresSQL storage", "error", err)
	}

	return pgStorage
}

func (a *ConverterApp) initRedis(ctx context.Context) *redis.Storage {
	options := &redisPack.Options{
		Addr:     a.cfg.Redis.Host,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	}

	rdStorage, err := redis.InitStorage(ctx, options, a.cfg.Redis.RatesTTL)
	if err != nil {
		log.Fatalln("Failed to initialize Redis cache", "error", err)
	}

	return rdStorage
}

func (a *ConverterApp) initService(source service.RateSource, storage *postgres.Storage, cache *redis.Storage) *service.Service {
	converterService, err := service.NewService(source, storage, cache, a.cfg)
	if err != nil {
		log.Fatalln("Failed to initialize converter service", "error", err)
	}

	return converterService
}
