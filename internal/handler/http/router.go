package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Jovalentine/Digi-market/internal/service"
	"github.com/Jovalentine/Digi-market/pkg/health"
	"github.com/Jovalentine/Digi-market/pkg/middleware"
)

// catalogMaxAge is how long clients may cache catalog responses, in seconds.
const catalogMaxAge = 60

// Services bundles the application services the router exposes.
type Services struct {
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Checkout *service.CheckoutService
	Auth     *service.AuthService
}

// NewRouter creates a chi router with all storefront routes registered.
// Submissions to auth and checkout pass through limiter.
func NewRouter(
	svc Services,
	healthHandler *health.Handler,
	limiter *middleware.RateLimiter,
	cors middleware.CORSConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.CORS(cors))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	catalogHandler := NewCatalogHandler(svc.Catalog, logger)
	cartHandler := NewCartHandler(svc.Cart, logger)
	checkoutHandler := NewCheckoutHandler(svc.Checkout, logger)
	authHandler := NewAuthHandler(svc.Auth, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(tokenValidator(svc.Auth)))
		r.Use(middleware.RequestLogger(logger))
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(catalogMaxAge))

			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/featured", catalogHandler.Featured)
			r.Get("/products/{id}", catalogHandler.GetProduct)
			r.Get("/products/{id}/reviews", catalogHandler.Reviews)
			r.Get("/categories", catalogHandler.Categories)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.RequireSession)
			r.Use(middleware.NoStore)

			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}", cartHandler.UpdateItemQuantity)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Use(middleware.RequireSession)
			r.Use(middleware.NoStore)

			r.Get("/", checkoutHandler.Quote)
			r.With(limiter.Handler).Post("/", checkoutHandler.PlaceOrder)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.NoStore)

			r.With(limiter.Handler).Post("/login", authHandler.Login)
			r.With(limiter.Handler).Post("/signup", authHandler.Signup)
			r.Post("/logout", authHandler.Logout)
		})
	})

	return r
}

// tokenValidator adapts the auth service to the session middleware.
func tokenValidator(auth *service.AuthService) middleware.TokenValidator {
	return func(token string) (*middleware.Identity, error) {
		u, err := auth.ParseToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Identity{UserID: u.ID, Name: u.Name, Email: u.Email}, nil
	}
}
