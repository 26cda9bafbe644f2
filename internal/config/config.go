// Package config loads runtime settings for the web front-end from defaults,
// an optional YAML file, a .env file and DELAVNICE_WEB_* environment
// variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "DELAVNICE_WEB"
	defaultEnvFile = ".env"
	defaultAddr    = ":8080"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Dev       bool            `mapstructure:"dev"`
	Env       string          `mapstructure:"env"`
	LogLevel  string          `mapstructure:"log_level"`
	API       APIConfig       `mapstructure:"api"`
	Session   SessionConfig   `mapstructure:"session"`
	Content   ContentConfig   `mapstructure:"content"`
	Carousel  CarouselConfig  `mapstructure:"carousel"`
	Keywords  KeywordsConfig  `mapstructure:"keywords"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	SiteURL   string          `mapstructure:"site_url"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// APIConfig points at the backend that owns accounts. An empty BaseURL
// enables the built-in fake.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionConfig holds the cookie signing key.
type SessionConfig struct {
	SigningKey string `mapstructure:"signing_key"`
}

// ContentConfig selects an on-disk content directory that overrides the
// embedded pages. Only honoured in dev mode.
type ContentConfig struct {
	Dir      string        `mapstructure:"dir"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// CarouselConfig tunes timing and card geometry.
type CarouselConfig struct {
	Interval      time.Duration `mapstructure:"interval"`
	ResumeDelay   time.Duration `mapstructure:"resume_delay"`
	ItemWidth     float64       `mapstructure:"item_width"`
	Gap           float64       `mapstructure:"gap"`
	ViewportWidth float64       `mapstructure:"viewport_width"`
}

// KeywordsConfig bounds the workshop keyword input.
type KeywordsConfig struct {
	MaxCount    int    `mapstructure:"max_count"`
	MaxLength   int    `mapstructure:"max_length"`
	Placeholder string `mapstructure:"placeholder"`
}

// AnalyticsConfig carries optional tracking ids.
type AnalyticsConfig struct {
	GA4MeasurementID string `mapstructure:"ga4_measurement_id"`
	PlausibleDomain  string `mapstructure:"plausible_domain"`
}

// ValidationError is returned when configuration values are missing or invalid.
type ValidationError struct {
	fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers every known key so that environment overrides are
// picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	// No default for server.addr: Load falls back to PORT, then defaultAddr.
	_ = v.BindEnv("server.addr")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("dev", false)
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "info")
	v.SetDefault("site_url", "https://delavnice.si")
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout", 8*time.Second)
	v.SetDefault("session.signing_key", "")
	v.SetDefault("content.dir", "")
	v.SetDefault("content.cache_ttl", 5*time.Minute)
	v.SetDefault("carousel.interval", 100*time.Second)
	v.SetDefault("carousel.resume_delay", 10*time.Second)
	v.SetDefault("carousel.item_width", 320.0)
	v.SetDefault("carousel.gap", 24.0)
	v.SetDefault("carousel.viewport_width", 1200.0)
	v.SetDefault("keywords.max_count", 10)
	v.SetDefault("keywords.max_length", 40)
	v.SetDefault("keywords.placeholder", "Vpišite ključno besedo in pritisnite Enter")
	v.SetDefault("analytics.ga4_measurement_id", "")
	v.SetDefault("analytics.plausible_domain", "")
}

// LoadDotEnv loads KEY=VALUE pairs from path (default .env) without
// overriding variables already present. A missing file is not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// ReadFile merges a YAML config file into v.
func ReadFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		cfg.Server.Addr = defaultAddr
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			cfg.Server.Addr = ":" + port
		}
	}
	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var invalid []string
	if c.API.BaseURL != "" {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			invalid = append(invalid, "api.base_url")
		}
	}
	if c.API.Timeout <= 0 {
		invalid = append(invalid, "api.timeout")
	}
	if c.Carousel.Interval <= 0 {
		invalid = append(invalid, "carousel.interval")
	}
	if c.Carousel.ResumeDelay <= 0 {
		invalid = append(invalid, "carousel.resume_delay")
	}
	if c.Carousel.ItemWidth <= 0 {
		invalid = append(invalid, "carousel.item_width")
	}
	if c.Keywords.MaxCount <= 0 {
		invalid = append(invalid, "keywords.max_count")
	}
	if c.Keywords.MaxLength <= 0 {
		invalid = append(invalid, "keywords.max_length")
	}
	if !c.Dev && c.Env != "local" && strings.TrimSpace(c.Session.SigningKey) == "" {
		invalid = append(invalid, "session.signing_key")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		invalid = append(invalid, "log_level")
	}
	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}
