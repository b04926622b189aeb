// Package metrics holds the prometheus instruments for token acquisition and
// outbound API requests.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	SourceCache   = "cache"
	SourceRequest = "request"
)

var TokenAcquisitions = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "intellim",
	Name:      "token_acquisitions_total",
	Help:      "Count of access tokens handed out, by where the token came from.",
}, []string{"source"})

var requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "intellim",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "A histogram of duration, in seconds, of outbound HTTP requests.",
	Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15),
}, []string{"method", "code"})

// NewRegistry returns a registry with every instrument of this package
// registered, plus the standard process and go metrics.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(TokenAcquisitions)
	registry.MustRegister(requestDuration)
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())

	return registry
}

// InstrumentTransport wraps next so that every round trip is observed in
// intellim_http_request_duration_seconds.
func InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return promhttp.InstrumentRoundTripperDuration(requestDuration, next)
}

// WriteTextfile writes the metrics gathered by g to path in the text format
// read by the node_exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}
