package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/affirmed-honey/dulin2/internal/service"
	"github.com/affirmed-honey/dulin2/pkg/health"
	"github.com/affirmed-honey/dulin2/pkg/middleware"
)

// RouterConfig carries the dependencies the router wires together.
type RouterConfig struct {
	Catalog       *service.CatalogService
	Orders        *service.OrderService
	Users         *service.UserService
	Carts         *service.CartService
	Health        *health.Handler
	TokenValidate middleware.TokenValidator
	CORS          middleware.CORSConfig
	Logger        *slog.Logger
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("dulin"))
	r.Use(middleware.Tracing("dulin"))
	// A bad token just means anonymous; RequireAuth guards the few routes
	// that need an identity.
	r.Use(middleware.Auth(cfg.TokenValidate))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORS))

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	productHandler := NewProductHandler(cfg.Catalog, cfg.Logger)
	orderHandler := NewOrderHandler(cfg.Orders, cfg.Logger)
	authHandler := NewAuthHandler(cfg.Users, cfg.Logger)
	cartHandler := NewCartHandler(cfg.Carts, cfg.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{id}", productHandler.GetProduct)
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(ContentTypeJSON).Post("/", orderHandler.PlaceOrder)
			r.With(middleware.RequireAuth).Get("/mine", orderHandler.ListMyOrders)
			r.Get("/{id}", orderHandler.GetOrder)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.With(middleware.RequireAuth).Get("/me", authHandler.Me)
			r.With(middleware.RequireAuth).Post("/change-password", authHandler.ChangePassword)
			r.With(middleware.RequireAuth).Post("/change-email", authHandler.ChangeEmail)
		})

		r.Route("/carts", func(r chi.Router) {
			r.Post("/", cartHandler.CreateCart)

			r.Route("/{cartID}", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.With(ContentTypeJSON).Post("/items", cartHandler.AddItem)
				r.With(ContentTypeJSON).Put("/items/{productID}", cartHandler.UpdateItem)
				r.Delete("/items/{productID}", cartHandler.RemoveItem)
			})
		})
	})

	return r
}
