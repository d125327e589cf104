package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records the commerce-core counters exported at /metrics.
type StorefrontMetrics struct {
	cartMutations   *prometheus.CounterVec
	catalogDuration *prometheus.HistogramVec
	catalogFailures *prometheus.CounterVec
	ordersCompleted prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart ledger mutations by operation.",
	}, []string{"op"})
	catalogDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_fetch_duration_seconds",
		Help:    "Duration of catalog service calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"call"})
	catalogFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_failures_total",
		Help: "Failed catalog service calls.",
	}, []string{"call"})
	ordersCompleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_completed_total",
		Help: "Orders assembled at checkout completion.",
	})
	reg.MustRegister(cartMutations, catalogDuration, catalogFailures, ordersCompleted)
	return &StorefrontMetrics{
		cartMutations:   cartMutations,
		catalogDuration: catalogDuration,
		catalogFailures: catalogFailures,
		ordersCompleted: ordersCompleted,
	}
}

// IncCartMutation counts one ledger mutation for the named operation.
func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// ObserveCatalogFetch records the duration of the named catalog call.
func (m *StorefrontMetrics) ObserveCatalogFetch(call string, duration time.Duration) {
	if m == nil || m.catalogDuration == nil {
		return
	}
	m.catalogDuration.WithLabelValues(normalizeLabel(call)).Observe(duration.Seconds())
}

// IncCatalogFailure counts one failed catalog call.
func (m *StorefrontMetrics) IncCatalogFailure(call string) {
	if m == nil || m.catalogFailures == nil {
		return
	}
	m.catalogFailures.WithLabelValues(normalizeLabel(call)).Inc()
}

// IncOrderCompleted counts one assembled order.
func (m *StorefrontMetrics) IncOrderCompleted() {
	if m == nil || m.ordersCompleted == nil {
		return
	}
	m.ordersCompleted.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
