package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Input.Path)
	assert.Equal(t, 0, cfg.Input.MaxStations)
	assert.Equal(t, "graph_data/data.json", cfg.Output.Path)
	assert.Equal(t, 365, cfg.Window.Days)
	assert.True(t, cfg.Lookup.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, 150, cfg.Lookup.Workers)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "fuel-price-series", cfg.Kafka.Topic)
	assert.Equal(t, "", cfg.HTTP.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	doc := `
input:
  path: /data/PrixCarburants_annuel_2024.xml
  max_stations: 500
output:
  path: /out/data.json
window:
  days: 90
  anchor: "2024-03-01"
lookup:
  enabled: false
  timeout: 3s
  workers: 25
kafka:
  enabled: true
  brokers:
    - broker-1:9092
    - broker-2:9092
  topic: series
http:
  addr: ":8080"
logging:
  level: debug
  format: text
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/PrixCarburants_annuel_2024.xml", cfg.Input.Path)
	assert.Equal(t, 500, cfg.Input.MaxStations)
	assert.Equal(t, "/out/data.json", cfg.Output.Path)
	assert.Equal(t, 90, cfg.Window.Days)
	assert.Equal(t, "2024-03-01", cfg.Window.Anchor)
	assert.False(t, cfg.Lookup.Enabled)
	assert.Equal(t, 3*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, 25, cfg.Lookup.Workers)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "series", cfg.Kafka.Topic)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CARBURA_INPUT_PATH", "/env/dataset.xml")
	t.Setenv("CARBURA_WINDOW_DAYS", "30")
	t.Setenv("CARBURA_LOOKUP_TIMEOUT", "15s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/env/dataset.xml", cfg.Input.Path)
	assert.Equal(t, 30, cfg.Window.Days)
	assert.Equal(t, 15*time.Second, cfg.Lookup.Timeout)
}

func TestAnchorTime(t *testing.T) {
	w := WindowConfig{Anchor: "2024-03-01"}
	anchor, err := w.AnchorTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), anchor)

	w = WindowConfig{}
	anchor, err = w.AnchorTime()
	require.NoError(t, err)
	assert.True(t, anchor.IsZero())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "zero window days",
			mutate:  func(c *Config) { c.Window.Days = 0 },
			wantErr: "window.days",
		},
		{
			name:    "bad anchor",
			mutate:  func(c *Config) { c.Window.Anchor = "01/03/2024" },
			wantErr: "window.anchor",
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Lookup.Workers = 0 },
			wantErr: "lookup.workers",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Lookup.Timeout = 0 },
			wantErr: "lookup.timeout",
		},
		{
			name: "kafka enabled without brokers",
			mutate: func(c *Config) {
				c.Kafka.Enabled = true
				c.Kafka.Brokers = nil
			},
			wantErr: "kafka.brokers",
		},
		{
			name: "kafka enabled without topic",
			mutate: func(c *Config) {
				c.Kafka.Enabled = true
				c.Kafka.Topic = ""
			},
			wantErr: "kafka.topic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
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
