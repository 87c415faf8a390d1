package perspective

import (
	"time"

	"github.com/NeuralTrust/perspective/pkg/infra/httpx"
	infraprom "github.com/NeuralTrust/perspective/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets a custom transport
func WithHTTPClient(client httpx.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds each Analyze call. Zero leaves the caller's context alone.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithEndpoint overrides the analyze URL, e.g. for a proxy or a test server.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCircuitBreaker fails calls fast while the service keeps failing.
func WithCircuitBreaker(breaker httpx.CircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = breaker
	}
}

func WithMetrics(metrics *infraprom.Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}
