package dependency_container

import (
	"fmt"
	"net/http"

	"github.com/NeuralTrust/perspective/pkg/config"
	"github.com/NeuralTrust/perspective/pkg/infra/httpx"
	"github.com/NeuralTrust/perspective/pkg/infra/perspective"
	infraprom "github.com/NeuralTrust/perspective/pkg/infra/prometheus"
	"github.com/NeuralTrust/perspective/pkg/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const breakerName = "perspective"

type Container struct {
	Analyzer perspective.Analyzer
	// Registry is nil when metrics are disabled.
	Registry *prometheus.Registry

	metricsTextfile string
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewContainer(di ContainerDI) (*Container, error) {
	if di.Cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := di.Cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := []perspective.Option{
		perspective.WithHTTPClient(newTransport(di.Cfg)),
		perspective.WithTimeout(di.Cfg.Timeout),
		perspective.WithEndpoint(di.Cfg.Endpoint),
		perspective.WithLogger(di.Logger),
	}

	if di.Cfg.Breaker.Enabled {
		breaker := httpx.NewCircuitBreaker(
			breakerName,
			di.Cfg.Breaker.Timeout,
			di.Cfg.Breaker.MaxFailures,
			httpx.WithSuccessPredicate(perspective.IsClientError),
			httpx.WithStateChangeHook(func(name, from, to string) {
				if di.Logger != nil {
					di.Logger.WithFields(logrus.Fields{
						"breaker": name,
						"from":    from,
						"to":      to,
					}).Warn("circuit breaker state changed")
				}
			}),
		)
		opts = append(opts, perspective.WithCircuitBreaker(breaker))
	}

	container := &Container{}
	if di.Cfg.Metrics.Enabled {
		container.Registry = infraprom.NewRegistry()
		container.metricsTextfile = di.Cfg.Metrics.Textfile
		opts = append(opts, perspective.WithMetrics(infraprom.NewMetrics(container.Registry)))
	}

	container.Analyzer = perspective.NewClient(di.Cfg.APIKey, di.Cfg.DoNotStore, opts...)
	return container, nil
}

func newTransport(cfg *config.Config) httpx.Client {
	if cfg.Transport == httpx.TransportFastHTTP {
		fastOpts := []httpx.FastHTTPClientOption{httpx.WithUserAgent(version.UserAgent())}
		if cfg.Timeout > 0 {
			fastOpts = append(fastOpts, httpx.WithTimeout(cfg.Timeout))
		}
		return httpx.NewFastHTTPClient(fastOpts...)
	}
	return &http.Client{}
}

// FlushMetrics writes the registry to the configured textfile. It is a no-op
// when metrics or the textfile are disabled.
func (c *Container) FlushMetrics() error {
	if c.Registry == nil || c.metricsTextfile == "" {
		return nil
	}
	if err := infraprom.WriteTextfile(c.metricsTextfile, c.Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
