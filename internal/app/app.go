package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/merjane-tech/go-backend/internal/cfg"
	v1Http "github.com/merjane-tech/go-backend/internal/delivery/v1/http"
	"github.com/merjane-tech/go-backend/internal/infrastructure/kafka"
	"github.com/merjane-tech/go-backend/internal/repository/pgdb"
	pgdbConv "github.com/merjane-tech/go-backend/internal/repository/pgdb/converter"
	redisRepo "github.com/merjane-tech/go-backend/internal/repository/redis"
	redisConv "github.com/merjane-tech/go-backend/internal/repository/redis/converter"
	"github.com/merjane-tech/go-backend/internal/usecase"
	"github.com/merjane-tech/go-backend/pkg/clients"
	"github.com/merjane-tech/go-backend/pkg/closer"
	"github.com/merjane-tech/go-backend/pkg/e"
	"github.com/merjane-tech/go-backend/pkg/logger"
	"github.com/merjane-tech/go-backend/pkg/postgres"
)

// App собирает зависимости сервиса и управляет их жизненным циклом.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	httpSrv *v1Http.Server
	closer  *closer.Closer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	const ensureTopicTimeout = 10 * time.Second

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := producer.EnsureTopic(ensureTopicTimeout); err != nil {
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	prConv := pgdbConv.NewProductConverter()
	infoConv := redisConv.NewProductInfoConverter()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	orderRepo := pgdb.NewOrderRepo(db.Pool, prConv)
	cacheRepo := redisRepo.NewCacheRepo(redisClient, infoConv, cfg.Redis, log)

	fulfillment := usecase.NewFulfillmentService(productRepo, producer, log)
	orderUC := usecase.NewOrderUC(orderRepo, fulfillment, db.Pool, cacheRepo, log, time.Now)
	productUC := usecase.NewProductUC(productRepo, cacheRepo, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(orderUC, productUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	// Закрытие ресурсов в порядке LIFO: сервер первым, база последней
	c := closer.NewCloser(0)
	c.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})
	c.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})
	c.Add(func(ctx context.Context) error {
		return producer.Close()
	})
	c.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	return &App{
		cfg:     cfg,
		logger:  log,
		httpSrv: httpSrv,
		closer:  c,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до сигнала завершения или фатальной ошибки.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("%v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db, logger)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
