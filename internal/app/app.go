package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/pinkcart/go-backend/internal/cfg"
	v1Grpc "github.com/pinkcart/go-backend/internal/delivery/v1/grpc"
	v1Http "github.com/pinkcart/go-backend/internal/delivery/v1/http"
	"github.com/pinkcart/go-backend/internal/handoff"
	"github.com/pinkcart/go-backend/internal/infrastructure/kafka"
	minioInfra "github.com/pinkcart/go-backend/internal/infrastructure/minio"
	s3Repo "github.com/pinkcart/go-backend/internal/repository/minio"
	"github.com/pinkcart/go-backend/internal/repository/mongodb"
	"github.com/pinkcart/go-backend/internal/repository/pgdb"
	pgdbConv "github.com/pinkcart/go-backend/internal/repository/pgdb/converter"
	"github.com/pinkcart/go-backend/internal/repository/redis"
	redisConv "github.com/pinkcart/go-backend/internal/repository/redis/converter"
	"github.com/pinkcart/go-backend/internal/usecase"
	"github.com/pinkcart/go-backend/pkg/clients"
	"github.com/pinkcart/go-backend/pkg/closer"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/logger"
	"github.com/pinkcart/go-backend/pkg/postgres"
	"github.com/pinkcart/go-backend/pkg/tr"
)

const (
	initTimeout     = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	cleanupTimeout  = 5 * time.Second
	topicTimeout    = 10 * time.Second

	redisReadyAttempts = 5
)

// stores — репозитории выбранного хранилища и его менеджер транзакций.
type stores struct {
	products   usecase.ProductRepository
	categories usecase.CategoryRepository
	orders     usecase.OrderRepository
	outbox     usecase.OutboxRepository
	trManager  tr.Manager
	listener   kafka.Listener
}

type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv     *v1Http.Server
	grpcSrv     *v1Grpc.GRPCServer
	worker      *kafka.OutboxWorker
	imagesInfra *minioInfra.MinioInfrastructure

	bgCtx    context.Context
	bgCancel context.CancelFunc
}

// NewApp поднимает клиенты хранилищ и собирает use case'ы и серверы.
// Всё открытое регистрируется в closer и закрывается в обратном порядке.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(0),
	}
	a.bgCtx, a.bgCancel = context.WithCancel(context.Background())

	if err := a.init(); err != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.bgCancel()
		if cerr := a.closer.Close(ctx); cerr != nil {
			log.Warnf("close after failed init: %v", cerr)
		}
		return nil, err
	}

	return a, nil
}

func (a *App) init() error {
	initCtx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	st, err := a.initStores(initCtx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.AddSimple("redis", redisClient.Close)
	if err := redisClient.WaitReady(initCtx, redisReadyAttempts); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return e.Wrap(whereami.WhereAmI(), err)
	}
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.ProductConverter{}, a.cfg.Redis, a.logger)

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize minio client")
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if err := clients.EnsureBucket(initCtx, minioClient, a.cfg.Minio.BucketName); err != nil {
		a.logger.Errorf(err, "failed to initialize MinIO bucket")
		return e.Wrap(whereami.WhereAmI(), err)
	}
	imageRepo := s3Repo.NewImageRepo(minioClient, a.cfg.Minio)
	a.imagesInfra = minioInfra.NewMinioInfrastructure(imageRepo, a.cfg.Minio, a.logger, a.bgCtx)

	sf := a.cfg.Storefront
	formatter := handoff.NewFormatter(sf.OperatorPhone, sf.Currency)

	catalogUC := usecase.NewCatalogUC(
		st.products,
		st.categories,
		cacheRepo,
		a.imagesInfra,
		st.trManager,
		sf.Categories,
		a.logger,
	)
	orderUC := usecase.NewOrderUC(
		st.orders,
		st.outbox,
		st.trManager,
		formatter,
		kafka.NewOrderEventEncoder(),
		a.logger,
	)

	a.initRelay(st)

	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.grpcSrv.RegisterServices(catalogUC)

	r := chi.NewRouter()
	v1Http.NewRouter(r, a.logger).Init(catalogUC, orderUC)
	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)

	return nil
}

func (a *App) initStores(ctx context.Context) (*stores, error) {
	switch a.cfg.Storefront.StoreDriver {
	case config.StoreDriverPostgres:
		return a.initPostgres(ctx)
	case config.StoreDriverMongo:
		return a.initMongo(ctx)
	default:
		return nil, e.Wrap(a.cfg.Storefront.StoreDriver, e.ErrUnknownStoreDriver)
	}
}

func (a *App) initPostgres(ctx context.Context) (*stores, error) {
	db, err := postgres.Connect(ctx, a.cfg.Db)
	if err != nil {
		a.logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.AddSimple("postgres", func() error {
		db.Close()
		return nil
	})

	if err := db.RunMigrations(a.logger); err != nil {
		a.logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(ctx); err != nil {
		a.logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	trManager, err := tr.NewPgxManager(db.Pool)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &stores{
		products:   pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConverter{}),
		categories: pgdb.NewCategoryRepo(db.Pool, pgdbConv.CategoryConverter{}),
		orders:     pgdb.NewOrderRepo(db.Pool, pgdbConv.OrderConverter{}),
		outbox:     pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.OutboxEventConverter{}, a.cfg.Outbox.ReclaimAfter),
		trManager:  trManager,
		listener:   kafka.NewPgListener(db.Dsn, pgdb.OutboxChannel, a.logger),
	}, nil
}

// initMongo подключает MongoDB. Транзакций нет: заказ и событие outbox пишутся последовательно.
func (a *App) initMongo(ctx context.Context) (*stores, error) {
	mc, err := clients.NewMongoClient(ctx, a.cfg.Mongo)
	if err != nil {
		a.logger.Errorf(err, "failed to connect to mongodb")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("mongodb", mc.Close)

	if err := mc.Ping(ctx); err != nil {
		a.logger.Errorf(err, "failed to ping mongodb")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := mongodb.EnsureIndexes(ctx, mc.DB); err != nil {
		a.logger.Errorf(err, "failed to create mongodb indexes")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &stores{
		products:   mongodb.NewProductRepo(mc.DB),
		categories: mongodb.NewCategoryRepo(mc.DB),
		orders:     mongodb.NewOrderRepo(mc.DB),
		outbox:     mongodb.NewOutboxEventRepo(mc.DB, a.cfg.Outbox.ReclaimAfter),
		trManager:  tr.NoTx{},
	}, nil
}

// initRelay запускает перенос событий outbox в Kafka. Без брокеров события копятся в outbox.
func (a *App) initRelay(st *stores) {
	if !a.cfg.Kafka.Enabled {
		return
	}

	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	a.closer.AddSimple("kafka producer", producer.Close)

	if err := producer.EnsureTopic(topicTimeout); err != nil {
		a.logger.Warnf("failed to ensure kafka topic %s: %v", a.cfg.Kafka.Topic, err)
	}

	a.worker = kafka.NewOutboxWorker(
		st.outbox,
		a.logger,
		producer,
		st.listener,
		a.cfg.Outbox.BatchSize,
		a.cfg.Outbox.PollInterval,
	)
}

// Run запускает серверы и блокируется до сигнала или падения одного из них.
func (a *App) Run() error {
	if a.worker != nil {
		a.worker.Start(a.bgCtx)
		a.closer.AddSimple("outbox worker", func() error {
			a.worker.Stop()
			return nil
		})
	}

	errCh := make(chan error, 2)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			errCh <- e.Wrap("grpc", err)
		}
	}()
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			errCh <- e.Wrap("http", err)
		}
	}()
	a.closer.Add("http server", a.httpSrv.Stop)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.shutdown()

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// серверы и воркер закрываются первыми, клиенты хранилищ последними
	if err := a.closer.Close(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			a.logger.Warnf("shutdown timed out: %v", err)
		} else {
			a.logger.Errorf(err, "shutdown error")
		}
	}

	cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cleanupCancel()
	if err := a.imagesInfra.WaitForCleanup(cleanupCtx); err != nil {
		a.logger.Warnf("MinIO cleanup did not finish before shutdown, some objects may remain: %v", err)
	} else {
		a.logger.Infof("MinIO cleanup completed")
	}

	a.bgCancel()
}
