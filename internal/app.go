package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"person-manager-api/config"
	"person-manager-api/internal/application/ports"
	"person-manager-api/internal/application/services"
	domainsession "person-manager-api/internal/domain/session"
	"person-manager-api/internal/infrastructure/db/postgres"
	"person-manager-api/internal/infrastructure/db/postgres/person"
	"person-manager-api/internal/infrastructure/db/postgres/role"
	"person-manager-api/internal/infrastructure/db/postgres/session"
	"person-manager-api/internal/infrastructure/db/redis"
	"person-manager-api/internal/infrastructure/jwt"
	"person-manager-api/internal/infrastructure/metrics"
	"person-manager-api/internal/infrastructure/mq"
	"person-manager-api/internal/interface/api/rest"
	"person-manager-api/internal/interface/api/rest/middleware"
	"person-manager-api/internal/interface/api/rest/pagination"
	"person-manager-api/pkg/rmqconsumer"
)

const (
	sessionStoreRedis = "redis"
	purgeInterval     = time.Hour
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	redis      *goredis.Client
	sessions   domainsession.Store
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	events     ports.EventPublisher
	mqConsumer ports.RMQConsumer
}

// NewLogger builds the production logger unless SERVICE_ENV asks for a
// development one.
func NewLogger() *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	switch os.Getenv("SERVICE_ENV") {
	case "dev", "development", "local":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	return logger
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig(ctx context.Context, logger *zap.Logger) config.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Fatal("error loading .env file", zap.Error(err))
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("config error", zap.Error(err))
	}
	return cfg
}

// OpenDB connects to postgres and brings the schema up to date.
func OpenDB(ctx context.Context, logger *zap.Logger, cfg config.Config) *pgxpool.Pool {
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err = postgres.Migrate(ctx, dbPool, logger); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	return dbPool
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger := NewLogger()

	// config
	cfg := LoadConfig(ctx, logger)

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(middleware.Base(logger, mCounter)...)

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	dbPool := OpenDB(ctx, logger, cfg)

	app := &App{
		logger:   logger,
		cfg:      cfg,
		db:       dbPool,
		httpSrv:  httpSrv,
		router:   r,
		mCounter: mCounter,
		events:   mq.Discard{},
	}

	// sessions
	switch cfg.Session.Store {
	case sessionStoreRedis:
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		app.redis = client
		app.sessions = redis.NewSessionStore(client)
	default:
		app.sessions = session.NewStore(dbPool)
	}
	logger.Info("session store ready", zap.String("store", cfg.Session.Store))

	if !cfg.MQ.Enabled {
		logger.Info("rabbitMQ disabled, person events are discarded")
		return app, nil
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}
	// rmqConsumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger)
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	app.mq = rbMQ
	app.events = rbMQ
	app.mqConsumer = rmqConsumer

	return app, nil
}

func (a *App) Close() {
	if a.mqConsumer != nil {
		a.mqConsumer.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run launches the http server and the background workers under one
// context and waits for all of them on shutdown.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})
	}

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	if store, ok := a.sessions.(*session.Store); ok {
		g.Go(func() error {
			a.purgeSessions(ctx, store)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

// purgeSessions drops expired postgres sessions. Redis expires its keys on
// its own.
func (a *App) purgeSessions(ctx context.Context, store *session.Store) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeExpired(ctx, time.Now())
			if err != nil {
				a.logger.Error("purge expired sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				a.logger.Info("expired sessions purged", zap.Int64("count", n))
			}
		}
	}
}

func (a *App) InitControllers() {
	// repos
	personRepo := person.NewRepository(a.db)
	roleRepo := role.NewRepository(a.db)

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	authService := services.NewAuthService(personRepo, a.sessions, jwtService, a.cfg.Session.TTL, a.logger, a.mCounter)
	personService := services.NewPersonService(personRepo, roleRepo, a.events, a.mCounter)
	roleService := services.NewRoleService(roleRepo)

	// controllers
	a.router.Use(middleware.Session(authService, a.cfg.Session.CookieName))
	paginator := pagination.Default()
	rest.NewAuthController(a.router, a.logger, authService, rest.CookieConfig{
		Name:   a.cfg.Session.CookieName,
		Secure: a.cfg.Session.Secure,
	})
	rest.NewPersonController(a.router, personService, a.logger, paginator)
	rest.NewRoleController(a.router, roleService, a.logger, paginator)

	// ops
	a.router.GET(rest.RouteHealth, a.healthz)
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := a.db.Ping(ctx); err != nil {
		a.logger.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *App) Logger() *zap.Logger { return a.logger }
