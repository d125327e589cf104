package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilReceiverIsSafe(t *testing.T) {
	var m *StorefrontMetrics
	m.IncCartMutation("add")
	m.ObserveCatalogFetch("list_products", time.Second)
	m.IncCatalogFailure("list_products")
	m.IncOrderCompleted()
}

func TestNilRegistererYieldsNoopMetrics(t *testing.T) {
	m := NewStorefrontMetrics(nil)
	m.IncCartMutation("add")
	m.IncOrderCompleted()
}

func TestCountersIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefrontMetrics(reg)

	m.IncCartMutation("add")
	m.IncCartMutation("add")
	m.IncCartMutation("remove")
	m.IncCatalogFailure("get_product")
	m.IncOrderCompleted()

	if got := testutil.ToFloat64(m.cartMutations.WithLabelValues("add")); got != 2 {
		t.Fatalf("expected 2 add mutations, got %v", got)
	}
	if got := testutil.ToFloat64(m.cartMutations.WithLabelValues("remove")); got != 1 {
		t.Fatalf("expected 1 remove mutation, got %v", got)
	}
	if got := testutil.ToFloat64(m.catalogFailures.WithLabelValues("get_product")); got != 1 {
		t.Fatalf("expected 1 catalog failure, got %v", got)
	}
	if got := testutil.ToFloat64(m.ordersCompleted); got != 1 {
		t.Fatalf("expected 1 completed order, got %v", got)
	}
}

func TestEmptyLabelNormalized(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefrontMetrics(reg)
	m.IncCartMutation("")
	if got := testutil.ToFloat64(m.cartMutations.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected unknown label, got %v", got)
	}
}
