package api

import (
	"net/http"
	"time"

	"github.com/mcuadros/go-defaults"
	"github.com/ybbus/httpretry"

	"github.com/michaelrosejr/pytellum/metrics"
)

// RetryPolicy controls how failed requests are retried. Connection errors,
// 429 and 5xx responses are retried with exponential backoff.
type RetryPolicy struct {
	MaxRetries int           `default:"3"`
	MinDelay   time.Duration `default:"100ms"`
	MaxDelay   time.Duration `default:"3s"`
}

func NewRetryPolicy() RetryPolicy {
	var policy RetryPolicy
	defaults.SetDefaults(&policy)

	return policy
}

// NewHTTPClient returns a client that gives up on a request, retries
// included, after timeout. Every attempt is recorded in the request
// duration metric.
func NewHTTPClient(timeout time.Duration, policy RetryPolicy) *http.Client {
	client := &http.Client{
		Timeout:   timeout,
		Transport: metrics.InstrumentTransport(http.DefaultTransport),
	}

	return httpretry.NewCustomClient(
		client,
		httpretry.WithMaxRetryCount(policy.MaxRetries),
		httpretry.WithBackoffPolicy(httpretry.ExponentialBackoff(policy.MinDelay, policy.MaxDelay, 0)))
}
