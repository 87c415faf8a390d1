package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NeuralTrust/perspective/pkg/config"
	"github.com/NeuralTrust/perspective/pkg/infra/httpx"
	"github.com/NeuralTrust/perspective/pkg/infra/perspective"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "perspective.yaml"), []byte(content), 0o600))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := config.Load(t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey)
	assert.False(t, cfg.DoNotStore)
	assert.Equal(t, config.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, perspective.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, []perspective.AttributeType{perspective.Toxicity}, cfg.Attributes)
	assert.Equal(t, httpx.TransportNetHTTP, cfg.Transport)
	assert.False(t, cfg.Breaker.Enabled)
	assert.Equal(t, uint32(config.DefaultBreakerMaxFailures), cfg.Breaker.MaxFailures)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_File(t *testing.T) {
	dir := writeConfig(t, `
api_key: file-key
do_not_store: true
timeout: 2s
attributes:
  - TOXICITY
  - SEVERE_TOXICITY
  - SPAM
transport: fasthttp
breaker:
  enabled: true
  timeout: 1m
  max_failures: 3
log:
  level: debug
  format: json
metrics:
  enabled: true
  textfile: /tmp/perspective.prom
`)

	cfg, err := config.Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.True(t, cfg.DoNotStore)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, []perspective.AttributeType{
		perspective.Toxicity,
		perspective.SevereToxicity,
		perspective.Spam,
	}, cfg.Attributes)
	assert.Equal(t, httpx.TransportFastHTTP, cfg.Transport)
	assert.True(t, cfg.Breaker.Enabled)
	assert.Equal(t, time.Minute, cfg.Breaker.Timeout)
	assert.Equal(t, uint32(3), cfg.Breaker.MaxFailures)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/tmp/perspective.prom", cfg.Metrics.Textfile)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, "api_key: file-key\ntimeout: 2s\n")
	t.Setenv("PERSPECTIVE_API_KEY", "env-key")
	t.Setenv("PERSPECTIVE_TIMEOUT", "750ms")
	t.Setenv("PERSPECTIVE_ATTRIBUTES", "SPAM,INCOHERENT")
	t.Setenv("PERSPECTIVE_BREAKER_MAX_FAILURES", "9")

	cfg, err := config.Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 750*time.Millisecond, cfg.Timeout)
	assert.Equal(t, []perspective.AttributeType{perspective.Spam, perspective.Incoherent}, cfg.Attributes)
	assert.Equal(t, uint32(9), cfg.Breaker.MaxFailures)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("Malformed yaml", func(t *testing.T) {
		dir := writeConfig(t, "api_key: [unclosed\n")

		_, err := config.Load(dir)

		assert.Error(t, err)
	})

	t.Run("Unknown attribute", func(t *testing.T) {
		dir := writeConfig(t, "attributes: [TOXICITY, NOT_REAL]\n")

		_, err := config.Load(dir)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "NOT_REAL")
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			APIKey:     "key",
			Timeout:    time.Second,
			Attributes: []perspective.AttributeType{perspective.Toxicity},
			Transport:  httpx.TransportNetHTTP,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "Valid", mutate: func(c *config.Config) {}},
		{name: "Missing api key", mutate: func(c *config.Config) { c.APIKey = "  " }, wantErr: "api_key is required"},
		{name: "Negative timeout", mutate: func(c *config.Config) { c.Timeout = -time.Second }, wantErr: "timeout"},
		{name: "Unknown transport", mutate: func(c *config.Config) { c.Transport = "grpc" }, wantErr: "unknown transport"},
		{name: "Invalid attribute", mutate: func(c *config.Config) {
			c.Attributes = []perspective.AttributeType{perspective.AttributeType(42)}
		}, wantErr: "invalid attribute"},
		{name: "Breaker without failures", mutate: func(c *config.Config) {
			c.Breaker = config.BreakerConfig{Enabled: true, Timeout: time.Second}
		}, wantErr: "max_failures"},
		{name: "Breaker without timeout", mutate: func(c *config.Config) {
			c.Breaker = config.BreakerConfig{Enabled: true, MaxFailures: 1}
		}, wantErr: "breaker.timeout"},
		{name: "Textfile without metrics", mutate: func(c *config.Config) {
			c.Metrics.Textfile = "/tmp/x.prom"
		}, wantErr: "metrics.textfile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
