package internal

import (
	"hppgate/config"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var gatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hppgate",
	Name:      "gateway_requests_total",
	Help:      "Server-to-server gateway requests by operation and result.",
}, []string{"operation", "result"})

var hppUrls = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hppgate",
	Name:      "hpp_urls_total",
	Help:      "Signed hosted payment page URLs by page.",
}, []string{"page"})

func observeRequest(operation, result string) {
	if len(operation) == 0 {
		return
	}
	gatewayRequests.With(prometheus.Labels{"operation": operation, "result": result}).Inc()
}

func observeHPPURL(page Endpoint) {
	hppUrls.With(prometheus.Labels{"page": string(page)}).Inc()
}

// ListenMetrics serves /metrics until the listener fails; it returns nil at
// once when metrics are disabled.
func ListenMetrics(conf *config.Config) error {
	if !conf.Metrics.Enabled {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	address := conf.Metrics.BindIP + ":" + conf.Metrics.Port
	return http.ListenAndServe(address, mux)
}
