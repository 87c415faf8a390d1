package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/perspective/pkg/infra/httpx"
	"github.com/NeuralTrust/perspective/pkg/infra/logger"
	"github.com/NeuralTrust/perspective/pkg/infra/perspective"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	fileName  = "perspective"
	envPrefix = "PERSPECTIVE"

	DefaultTimeout            = 10 * time.Second
	DefaultBreakerTimeout     = 30 * time.Second
	DefaultBreakerMaxFailures = 5
)

type Config struct {
	APIKey     string                      `mapstructure:"api_key"`
	DoNotStore bool                        `mapstructure:"do_not_store"`
	Timeout    time.Duration               `mapstructure:"timeout"`
	Endpoint   string                      `mapstructure:"endpoint"`
	Attributes []perspective.AttributeType `mapstructure:"attributes"`
	Transport  string                      `mapstructure:"transport"`
	Breaker    BreakerConfig               `mapstructure:"breaker"`
	Log        logger.Config               `mapstructure:"log"`
	Metrics    MetricsConfig               `mapstructure:"metrics"`
}

type BreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxFailures uint32        `mapstructure:"max_failures"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Textfile is where the registry is dumped on exit, in the node_exporter
	// textfile collector format. Empty disables the dump.
	Textfile string `mapstructure:"textfile"`
}

// Load reads perspective.yaml from configPath, ./config or the working
// directory, then applies PERSPECTIVE_* environment overrides. A missing file
// is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaultValues(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return &cfg, nil
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("api_key", "")
	v.SetDefault("do_not_store", false)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("endpoint", perspective.DefaultEndpoint)
	v.SetDefault("attributes", []string{perspective.Toxicity.String()})
	v.SetDefault("transport", httpx.TransportNetHTTP)
	v.SetDefault("breaker.enabled", false)
	v.SetDefault("breaker.timeout", DefaultBreakerTimeout)
	v.SetDefault("breaker.max_failures", DefaultBreakerMaxFailures)
	v.SetDefault("log.level", "")
	v.SetDefault("log.format", logger.FormatText)
	v.SetDefault("log.file", "")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.textfile", "")
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.New("api_key is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	switch c.Transport {
	case httpx.TransportNetHTTP, httpx.TransportFastHTTP:
	default:
		return fmt.Errorf("unknown transport %q, expected %q or %q", c.Transport, httpx.TransportNetHTTP, httpx.TransportFastHTTP)
	}
	for _, attr := range c.Attributes {
		if !attr.Valid() {
			return fmt.Errorf("invalid attribute %s", attr)
		}
	}
	if c.Breaker.Enabled {
		if c.Breaker.MaxFailures == 0 {
			return errors.New("breaker.max_failures must be greater than zero")
		}
		if c.Breaker.Timeout <= 0 {
			return errors.New("breaker.timeout must be positive")
		}
	}
	if c.Metrics.Textfile != "" && !c.Metrics.Enabled {
		return errors.New("metrics.textfile requires metrics.enabled")
	}
	return nil
}
