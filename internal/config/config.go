// Package config loads dialogo settings from defaults, an optional TOML file
// and DIALOGO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Escape modes for the renderer's Esc key.
const (
	EscapeClose = "close"
	EscapeBack  = "back"
)

// Config holds application configuration.
type Config struct {
	UI    UIConfig
	Trace TraceConfig
	Log   LogConfig
}

// UIConfig holds presentation settings for the terminal renderer.
type UIConfig struct {
	Width       int
	Escape      string
	BorderColor string `mapstructure:"border_color"`
}

// TraceConfig holds span export and snapshot recording settings.
type TraceConfig struct {
	Endpoint    string
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool
	MaxEvents   int `mapstructure:"max_events"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	File string // Empty disables logging in the TUI
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// DefaultPath returns ~/.config/dialogo/config.toml.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "dialogo", "config.toml")
}

// Load reads configuration. path wins over DIALOGO_CONFIG, which wins over
// DefaultPath. A missing default file is not an error; a missing explicit
// file is. Env var overrides use prefix DIALOGO_ (ui.width -> DIALOGO_UI_WIDTH).
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("ui.width", 56)
	v.SetDefault("ui.escape", EscapeClose)
	v.SetDefault("ui.border_color", "205")
	v.SetDefault("trace.endpoint", os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	v.SetDefault("trace.service_name", serviceNameDefault())
	v.SetDefault("trace.insecure", true)
	v.SetDefault("trace.max_events", 100)
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")

	explicit := path
	if explicit == "" {
		explicit = os.Getenv("DIALOGO_CONFIG")
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DIALOGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values viper cannot type-check.
func (c Config) Validate() error {
	if c.UI.Width <= 0 {
		return fmt.Errorf("%w: ui.width must be positive, got %d", ErrInvalid, c.UI.Width)
	}
	switch c.UI.Escape {
	case EscapeClose, EscapeBack:
	default:
		return fmt.Errorf("%w: ui.escape must be %q or %q, got %q", ErrInvalid, EscapeClose, EscapeBack, c.UI.Escape)
	}
	if c.Trace.MaxEvents < 0 {
		return fmt.Errorf("%w: trace.max_events must not be negative, got %d", ErrInvalid, c.Trace.MaxEvents)
	}
	return nil
}

func serviceNameDefault() string {
	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		return name
	}
	return "dialogo"
}
