package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/Jovalentine/Digi-market/internal/auth"
	"github.com/Jovalentine/Digi-market/internal/catalog"
	"github.com/Jovalentine/Digi-market/internal/config"
	"github.com/Jovalentine/Digi-market/internal/event"
	handler "github.com/Jovalentine/Digi-market/internal/handler/http"
	"github.com/Jovalentine/Digi-market/internal/repository"
	"github.com/Jovalentine/Digi-market/internal/repository/memory"
	redisrepo "github.com/Jovalentine/Digi-market/internal/repository/redis"
	"github.com/Jovalentine/Digi-market/internal/service"
	"github.com/Jovalentine/Digi-market/pkg/breaker"
	"github.com/Jovalentine/Digi-market/pkg/database"
	"github.com/Jovalentine/Digi-market/pkg/health"
	pkgkafka "github.com/Jovalentine/Digi-market/pkg/kafka"
	"github.com/Jovalentine/Digi-market/pkg/middleware"
	"github.com/Jovalentine/Digi-market/pkg/tracing"
)

const (
	// sweepInterval is how often idle in-memory carts are evicted.
	sweepInterval = time.Minute

	// visitorTTL is how long an idle client keeps its rate limit bucket.
	visitorTTL = 3 * time.Minute
)

type closer struct {
	name string
	fn   func() error
}

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	sweeper    *memory.CartRepository
	limiter    *middleware.RateLimiter
	closers    []closer
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}
	healthHandler := health.NewHandler()

	shutdownTracer, err := tracing.InitTracer(ctx, cfg.Tracing())
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	a.closers = append(a.closers, closer{"tracer", func() error {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return shutdownTracer(sctx)
	}})

	repo, err := a.cartRepository(ctx, healthHandler)
	if err != nil {
		a.close()
		return nil, err
	}

	var publisher pkgkafka.Publisher
	if cfg.KafkaEnabled {
		producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		healthHandler.RegisterNonCritical("kafka", producer.Ping)
		a.closers = append(a.closers, closer{"kafka producer", producer.Close})
		publisher = producer
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		publisher = pkgkafka.NewDiscard(logger)
		logger.Info("kafka disabled, events are discarded")
	}
	events := event.NewProducer(publisher, breaker.New(breaker.DefaultConfig("storefront-events"), logger), logger)

	// Build the dependency graph.
	products := catalog.Default()
	healthHandler.Register("catalog", func(context.Context) error {
		if products.Len() == 0 {
			return errors.New("catalog is empty")
		}
		return nil
	})

	carts := service.NewCartService(repo, products, events, logger)
	services := handler.Services{
		Catalog:  service.NewCatalogService(products),
		Cart:     carts,
		Checkout: service.NewCheckoutService(carts, events, logger),
		Auth:     service.NewAuthService(auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry), logger),
	}

	a.limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, visitorTTL, logger)

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSAllowedOrigins

	router := handler.NewRouter(services, healthHandler, a.limiter, cors, logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return a, nil
}

// cartRepository builds the configured cart backend and registers its
// health check.
func (a *App) cartRepository(ctx context.Context, hh *health.Handler) (repository.CartRepository, error) {
	switch a.cfg.CartBackend {
	case config.BackendRedis:
		rc := a.cfg.Redis()
		rdb, err := database.NewRedisClient(ctx, rc, database.NewCommandTracer(rc.SlowCommand, a.logger))
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.logger.Info("connected to Redis",
			slog.String("addr", rc.Addr),
			slog.Int("db", rc.DB),
		)
		if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, rdb, config.ServiceName); err != nil {
			a.logger.Warn("redis pool metrics not registered", slog.String("error", err.Error()))
		}
		hh.RegisterCritical("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		a.closers = append(a.closers, closer{"redis", rdb.Close})
		return redisrepo.NewCartRepository(rdb, a.cfg.CartTTL()), nil

	default:
		repo := memory.NewCartRepository(a.cfg.CartTTL(), a.logger)
		a.sweeper = repo
		a.logger.Info("using in-memory cart store", slog.Duration("ttl", a.cfg.CartTTL()))
		return repo, nil
	}
}

// Handler returns the HTTP handler serving all routes.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and the background loops, and blocks until ctx
// is cancelled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return a.limiter.Run(ctx)
	})

	if a.sweeper != nil {
		g.Go(func() error {
			return a.sweeper.Run(ctx, sweepInterval)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	a.close()
	return err
}

// close releases resources in reverse order of acquisition.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(); err != nil {
			a.logger.Error("close error",
				slog.String("component", c.name),
				slog.String("error", err.Error()),
			)
		}
	}
	a.closers = nil
	a.logger.Info("application shutdown complete")
}
