package metrics

import "github.com/prometheus/client_golang/prometheus"

// CartMetrics tracks cart lifecycle events that matter operationally:
// sign-in merges and the best-effort persistence failures that are
// otherwise only visible in logs.
type CartMetrics struct {
	merges          *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	loadFallbacks   prometheus.Counter
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	merges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_merges_total",
		Help: "Guest-to-account cart merges performed at sign-in.",
	}, []string{"outcome"})
	persistFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_persist_failures_total",
		Help: "Cart saves that failed and were absorbed without surfacing to the client.",
	}, []string{"backend"})
	loadFallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_load_fallbacks_total",
		Help: "Cart loads that fell back to an empty cart after a fetch failure.",
	})
	reg.MustRegister(merges, persistFailures, loadFallbacks)
	return &CartMetrics{
		merges:          merges,
		persistFailures: persistFailures,
		loadFallbacks:   loadFallbacks,
	}
}

// IncMerge counts one merge with the given outcome ("ok" or "error").
func (c *CartMetrics) IncMerge(outcome string) {
	if c == nil || c.merges == nil {
		return
	}
	c.merges.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncPersistFailure counts one absorbed save failure for the named backend.
func (c *CartMetrics) IncPersistFailure(backend string) {
	if c == nil || c.persistFailures == nil {
		return
	}
	c.persistFailures.WithLabelValues(normalizeLabel(backend)).Inc()
}

// IncLoadFallback counts one load that degraded to an empty cart.
func (c *CartMetrics) IncLoadFallback() {
	if c == nil || c.loadFallbacks == nil {
		return
	}
	c.loadFallbacks.Inc()
}
