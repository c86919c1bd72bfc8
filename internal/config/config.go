// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values and validate

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Ads struct {
	Enabled bool   `yaml:"enabled"`
	Client  string `yaml:"client" validate:"required_if=Enabled true"`
	Slot    string `yaml:"slot"`
}

type Config struct {
	Addr            string        `yaml:"addr" validate:"required"`
	DefaultTemplate string        `yaml:"default_template" validate:"oneof=classic modern"`
	DefaultLanguage string        `yaml:"default_language" validate:"required,bcp47_language_tag"`
	Renderer        string        `yaml:"renderer" validate:"oneof=chromedp playwright"`
	ChromePath      string        `yaml:"chrome_path"`
	RenderTimeout   time.Duration `yaml:"render_timeout" validate:"gt=0"`
	RenderAttempts  int           `yaml:"render_attempts" validate:"min=1,max=10"`
	RenderBackoff   time.Duration `yaml:"render_backoff" validate:"gte=0"`
	MaxPhotoBytes   int64         `yaml:"max_photo_bytes" validate:"gt=0"`
	SessionTTL      time.Duration `yaml:"session_ttl" validate:"gt=0"`
	DatabaseURL     string        `yaml:"database_url" validate:"omitempty,url"`
	LogLevel        string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat       string        `yaml:"log_format" validate:"oneof=text json"`
	Ads             Ads           `yaml:"ads"`
}

// Defaults returns the development configuration.
func Defaults() *Config {
	return &Config{
		Addr:            ":3000",
		DefaultTemplate: "classic",
		DefaultLanguage: "pt-BR",
		Renderer:        "chromedp",
		RenderTimeout:   60 * time.Second,
		RenderAttempts:  3,
		RenderBackoff:   time.Second,
		MaxPhotoBytes:   5 << 20,
		SessionTTL:      2 * time.Hour,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load builds the configuration from defaults, the YAML file at path (missing
// file is fine), a .env file and the process environment, in that order.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("RESUME_TEMPLATE", &cfg.DefaultTemplate)
	str("RESUME_LANGUAGE", &cfg.DefaultLanguage)
	str("RESUME_RENDERER", &cfg.Renderer)
	str("CHROME_PATH", &cfg.ChromePath)
	str("DATABASE_URL", &cfg.DatabaseURL)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("ADS_CLIENT", &cfg.Ads.Client)
	str("ADS_SLOT", &cfg.Ads.Slot)

	if v, ok := lookup("PORT"); ok && v != "" {
		cfg.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	if v, ok := lookup("ADS_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid ADS_ENABLED: %w", err)
		}
		cfg.Ads.Enabled = b
	}

	durations := map[string]*time.Duration{
		"RENDER_TIMEOUT": &cfg.RenderTimeout,
		"RENDER_BACKOFF": &cfg.RenderBackoff,
		"SESSION_TTL":    &cfg.SessionTTL,
	}
	for key, dst := range durations {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = d
		}
	}

	if v, ok := lookup("RENDER_ATTEMPTS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RENDER_ATTEMPTS: %w", err)
		}
		cfg.RenderAttempts = n
	}
	if v, ok := lookup("MAX_PHOTO_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_PHOTO_BYTES: %w", err)
		}
		cfg.MaxPhotoBytes = n
	}
	return nil
}
