package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/address"
	"github.com/angelmondragon/storefront-backend/internal/blogs"
	products "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/internal/wishlist"
	"github.com/angelmondragon/storefront-backend/pkg/auth/session"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

// Cache is the Redis surface the HTTP layer needs. A nil Cache disables
// idempotency replay and rate limiting.
type Cache interface {
	redis.IdempotencyStore
	redis.Pinger
	middleware.RateLimiter
}

// Services groups the domain services mounted under /api.
type Services struct {
	Address  address.Service
	Blogs    blogs.Service
	Products products.Service
	Wishlist wishlist.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	cache Cache,
	revocations session.RevocationChecker,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	svc Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		chimiddleware.RealIP,
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.SecurityHeaders(cfg.App.IsProd()),
		middleware.CORS(cfg.CORS),
		chimiddleware.RequestSize(cfg.App.MaxBodyBytes),
	)

	var idempotencyStore redis.IdempotencyStore
	var limiter middleware.RateLimiter
	checks := map[string]redis.Pinger{}
	if dbP != nil {
		checks["database"] = dbP
	}
	if cache != nil {
		idempotencyStore = cache
		limiter = cache
		checks["redis"] = cache
	}

	r.Get("/", controllers.Root())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, checks, logg))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	if dir := strings.TrimSpace(cfg.App.StaticDir); dir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
	}

	authn := middleware.Auth(cfg.JWT, revocations, logg)
	idempotent := middleware.Idempotency(idempotencyStore, logg)
	customerOnly := middleware.RequireRole(enums.ActorRoleCustomer, logg)
	adminOnly := middleware.RequireRole(enums.ActorRoleAdmin, logg)
	viewsPolicy := middleware.BlogViewsPolicy(cfg.RateLimit.BlogViewsLimit, cfg.RateLimit.BlogViewsWindow)

	r.Route("/api", func(r chi.Router) {
		r.NotFound(controllers.APINotFound())
		r.MethodNotAllowed(controllers.APINotFound())

		r.Route("/address", func(r chi.Router) {
			r.Use(authn, customerOnly)
			r.With(idempotent).Post("/", controllers.AddressCreate(svc.Address, logg))
			r.Get("/", controllers.AddressList(svc.Address, logg))
			r.Put("/{id}", controllers.AddressUpdate(svc.Address, logg))
			r.Delete("/{id}", controllers.AddressDelete(svc.Address, logg))
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", controllers.BlogList(svc.Blogs, logg))
			r.Get("/featured", controllers.BlogFeatured(svc.Blogs, logg))
			r.Get("/search", controllers.BlogSearch(svc.Blogs, logg))
			r.Get("/slug/{slug}", controllers.BlogBySlug(svc.Blogs, logg))
			r.Get("/related/{slug}", controllers.BlogRelated(svc.Blogs, logg))
			r.Get("/{id}", controllers.BlogByID(svc.Blogs, logg))
			r.With(middleware.RateLimit(limiter, viewsPolicy, logg)).Patch("/{id}/views", controllers.BlogIncrementViews(svc.Blogs, logg))

			r.Group(func(r chi.Router) {
				r.Use(authn, adminOnly)
				r.With(idempotent).Post("/", controllers.BlogCreate(svc.Blogs, logg))
				r.Put("/{id}", controllers.BlogUpdate(svc.Blogs, logg))
				r.Delete("/{id}", controllers.BlogDelete(svc.Blogs, logg))
			})
		})

		r.Get("/products/{id}", controllers.ProductGet(svc.Products, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(authn, adminOnly)
			r.Post("/products", controllers.AdminCreateProduct(svc.Products, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Use(authn, customerOnly)
			r.Get("/", controllers.WishlistGet(svc.Wishlist, logg))
			r.Get("/count", controllers.WishlistCount(svc.Wishlist, logg))
			r.Get("/check/{productId}", controllers.WishlistCheck(svc.Wishlist, logg))
			r.With(idempotent).Post("/add", controllers.WishlistAdd(svc.Wishlist, logg))
			r.With(idempotent).Post("/move-to-cart/{productId}", controllers.WishlistMoveToCart(svc.Wishlist, logg))
			r.Delete("/remove/{productId}", controllers.WishlistRemove(svc.Wishlist, logg))
			r.Delete("/clear", controllers.WishlistClear(svc.Wishlist, logg))
		})
	})

	return r
}
