// Package config loads application settings from file, environment, and
// defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/blackdede/carbura/internal/domain"
)

// Config materialises application configuration.
type Config struct {
	Input   InputConfig   `mapstructure:"input"`
	Output  OutputConfig  `mapstructure:"output"`
	Window  WindowConfig  `mapstructure:"window"`
	Lookup  LookupConfig  `mapstructure:"lookup"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// InputConfig locates the annual dataset document.
type InputConfig struct {
	Path        string `mapstructure:"path"`
	MaxStations int    `mapstructure:"max_stations"` // 0 reads everything
}

// OutputConfig sets the artifact destination.
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// WindowConfig shapes the heatmap window. An empty anchor uses today.
type WindowConfig struct {
	Days   int    `mapstructure:"days"`
	Anchor string `mapstructure:"anchor"` // "2006-01-02"
}

// AnchorTime parses the configured anchor date; zero time when unset.
func (w WindowConfig) AnchorTime() (time.Time, error) {
	if w.Anchor == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(domain.DateLayout, w.Anchor)
	if err != nil {
		return time.Time{}, fmt.Errorf("window.anchor: %w", err)
	}
	return t, nil
}

// LookupConfig governs the station-name resolution pool.
type LookupConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Workers int           `mapstructure:"workers"`
}

// KafkaConfig covers the optional station-series sink.
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// HTTPConfig exposes health and metrics while a run is in flight. An empty
// address disables the server.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggingConfig describes logger runtime configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CARBURA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input.path", "")
	v.SetDefault("input.max_stations", 0)

	v.SetDefault("output.path", "graph_data/data.json")

	v.SetDefault("window.days", domain.DefaultWindowDays)
	v.SetDefault("window.anchor", "")

	v.SetDefault("lookup.enabled", true)
	v.SetDefault("lookup.base_url", "")
	v.SetDefault("lookup.timeout", "10s")
	v.SetDefault("lookup.workers", 150)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "fuel-price-series")

	v.SetDefault("http.addr", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Window.Days <= 0 {
		return fmt.Errorf("window.days must be greater than zero")
	}
	if _, err := c.Window.AnchorTime(); err != nil {
		return err
	}
	if c.Lookup.Workers <= 0 {
		return fmt.Errorf("lookup.workers must be greater than zero")
	}
	if c.Lookup.Timeout <= 0 {
		return fmt.Errorf("lookup.timeout must be greater than zero")
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers must be set when kafka.enabled is true")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("kafka.topic must be set when kafka.enabled is true")
		}
	}
	return nil
}
