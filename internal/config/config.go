package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the share tool settings.
type Config struct {
	AppURL    string          `toml:"app_url"`
	StorePath string          `toml:"store_path"`
	Field     FieldConfig     `toml:"field"`
	Handshake HandshakeConfig `toml:"handshake"`
}

// FieldConfig defines the drawing surface geometry.
type FieldConfig struct {
	ScalePx  float64 `toml:"scale_px"` // pixels per yard
	WidthPx  float64 `toml:"width_px"`
	HeightPx float64 `toml:"height_px"`
}

// HandshakeConfig defines cross-context handshake timing in milliseconds.
type HandshakeConfig struct {
	PingIntervalMS int `toml:"ping_interval_ms"`
	TimeoutMS      int `toml:"timeout_ms"`
}

// Default returns the canonical settings: 25px yards on a 625x625 surface,
// 500ms pings with a 10s give-up.
func Default() Config {
	return Config{
		AppURL:    "https://maierhjakob.github.io/PlayMakeFlag/",
		StorePath: "local/playbooks.json",
		Field: FieldConfig{
			ScalePx:  25,
			WidthPx:  625,
			HeightPx: 625,
		},
		Handshake: HandshakeConfig{
			PingIntervalMS: 500,
			TimeoutMS:      10_000,
		},
	}
}

// Load reads path and fills unset values from Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	applyDefaults(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if strings.TrimSpace(cfg.AppURL) == "" {
		cfg.AppURL = def.AppURL
	}
	if strings.TrimSpace(cfg.StorePath) == "" {
		cfg.StorePath = def.StorePath
	}
	if cfg.Field.ScalePx == 0 {
		cfg.Field.ScalePx = def.Field.ScalePx
	}
	if cfg.Field.WidthPx == 0 {
		cfg.Field.WidthPx = def.Field.WidthPx
	}
	if cfg.Field.HeightPx == 0 {
		cfg.Field.HeightPx = def.Field.HeightPx
	}
	if cfg.Handshake.PingIntervalMS == 0 {
		cfg.Handshake.PingIntervalMS = def.Handshake.PingIntervalMS
	}
	if cfg.Handshake.TimeoutMS == 0 {
		cfg.Handshake.TimeoutMS = def.Handshake.TimeoutMS
	}
}

// Validate rejects settings no component could run with.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.AppURL) == "" {
		return fmt.Errorf("config missing app_url")
	}
	if cfg.Field.ScalePx <= 0 {
		return fmt.Errorf("config field.scale_px must be positive")
	}
	if cfg.Field.WidthPx <= 0 || cfg.Field.HeightPx <= 0 {
		return fmt.Errorf("config field dimensions must be positive")
	}
	if cfg.Handshake.PingIntervalMS <= 0 {
		return fmt.Errorf("config handshake.ping_interval_ms must be positive")
	}
	if cfg.Handshake.TimeoutMS < cfg.Handshake.PingIntervalMS {
		return fmt.Errorf("config handshake.timeout_ms must cover at least one ping interval")
	}
	return nil
}

// PingInterval returns the handshake ping period.
func (h HandshakeConfig) PingInterval() time.Duration {
	return time.Duration(h.PingIntervalMS) * time.Millisecond
}

// Timeout returns the handshake give-up bound.
func (h HandshakeConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutMS) * time.Millisecond
}
