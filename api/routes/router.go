package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/condostore/pos-backend/api/controllers"
	"github.com/condostore/pos-backend/api/middleware"
	authsvc "github.com/condostore/pos-backend/internal/auth"
	cartsvc "github.com/condostore/pos-backend/internal/cart"
	catalogsvc "github.com/condostore/pos-backend/internal/catalog"
	checkoutsvc "github.com/condostore/pos-backend/internal/checkout"
	dashboardsvc "github.com/condostore/pos-backend/internal/dashboard"
	journalsvc "github.com/condostore/pos-backend/internal/journal"
	residentsvc "github.com/condostore/pos-backend/internal/residents"
	"github.com/condostore/pos-backend/pkg/config"
	"github.com/condostore/pos-backend/pkg/logger"
	pkgredis "github.com/condostore/pos-backend/pkg/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Cfg       *config.Config
	Logg      *logger.Logger
	JournalDB pinger
	Redis     *pkgredis.Client
	Metrics   prometheus.Gatherer

	Auth      authsvc.Service
	Catalog   catalogsvc.Service
	Cart      cartsvc.Service
	Checkout  checkoutsvc.Service
	Residents residentsvc.Service
	Dashboard dashboardsvc.Service
	Journal   journalsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logg),
		middleware.RequestID(deps.Logg),
		middleware.Logging(deps.Logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Cfg))
		r.Get("/ready", controllers.HealthReady(deps.Cfg, deps.Logg, deps.JournalDB, redisPinger(deps.Redis)))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.Auth, deps.Logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Cfg.JWT, deps.Logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(deps.Catalog, deps.Logg))
			r.Post("/refresh", controllers.CatalogRefresh(deps.Catalog, deps.Logg))
		})

		r.Route("/residents", func(r chi.Router) {
			r.Use(middleware.Idempotency(redisStore(deps.Redis), deps.Cfg.Idempotency, deps.Logg))
			r.Get("/", controllers.ResidentList(deps.Residents, deps.Logg))
			r.Post("/", controllers.ResidentCreate(deps.Residents, deps.Logg))
			r.Get("/{residentId}/history", controllers.ResidentHistory(deps.Residents, deps.Logg))
		})

		r.Get("/dashboard", controllers.DashboardOverview(deps.Dashboard, deps.Logg))

		r.Route("/journal", func(r chi.Router) {
			r.Get("/", controllers.JournalList(deps.Journal, deps.Logg))
			r.Get("/{saleId}", controllers.JournalDetail(deps.Journal, deps.Logg))
		})

		// Register-scoped routes. Every one of these needs X-Terminal-Id.
		r.Group(func(r chi.Router) {
			r.Use(middleware.TerminalContext(deps.Logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Cart, deps.Logg))
				r.Delete("/", controllers.CartClear(deps.Cart, deps.Logg))
				r.Post("/items", controllers.CartAddItem(deps.Cart, deps.Logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, deps.Logg))
				r.Put("/payment", controllers.CartSetPayment(deps.Cart, deps.Logg))
			})

			r.With(middleware.Idempotency(redisStore(deps.Redis), deps.Cfg.Idempotency, deps.Logg)).
				Post("/checkout", controllers.Checkout(deps.Checkout, deps.Logg))
		})
	})

	return r
}

func redisPinger(client *pkgredis.Client) pinger {
	if client == nil {
		return nil
	}
	return client
}

func redisStore(client *pkgredis.Client) pkgredis.IdempotencyStore {
	if client == nil {
		return nil
	}
	return client
}
