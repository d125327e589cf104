package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/packlane/storefront/api/controllers"
	"github.com/packlane/storefront/api/middleware"
	"github.com/packlane/storefront/internal/catalog"
	"github.com/packlane/storefront/internal/orders"
	"github.com/packlane/storefront/internal/session"
	"github.com/packlane/storefront/pkg/config"
	"github.com/packlane/storefront/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	src catalog.Source,
	sessions *session.Manager,
	assembler *orders.Assembler,
	readyProbes map[string]controllers.Pinger,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyProbes))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", controllers.CatalogProducts(src, logg))
			r.Get("/products/{productId}", controllers.CatalogProduct(src, logg))
			r.Get("/categories", controllers.CatalogCategories(src, logg))
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", controllers.SessionCreate(sessions, logg))

			r.Route("/{sessionId}", func(r chi.Router) {
				r.Get("/", controllers.SessionFetch(sessions, logg))
				r.Delete("/", controllers.SessionDelete(sessions, logg))

				r.Route("/cart", func(r chi.Router) {
					r.Get("/", controllers.CartFetch(sessions, logg))
					r.Delete("/", controllers.CartClear(sessions, logg))
					r.Post("/items", controllers.CartAddItem(sessions, src, logg))
					r.Patch("/items/{productId}", controllers.CartUpdateItem(sessions, logg))
					r.Delete("/items/{productId}", controllers.CartRemoveItem(sessions, logg))
				})

				r.Route("/navigation", func(r chi.Router) {
					r.Get("/", controllers.NavigationFetch(sessions, logg))
					r.Post("/events", controllers.NavigationEvent(sessions, src, logg))
				})

				r.Post("/checkout", controllers.CheckoutComplete(sessions, assembler, cfg.Checkout, logg))
				r.Get("/orders/{orderId}/receipt", controllers.OrderReceipt(sessions, logg))
			})
		})
	})

	return r
}
