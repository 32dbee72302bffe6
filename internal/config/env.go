package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Supported UI languages
var Languages = map[string]string{
	"en": "English",
	"ru": "Русский",
	"pt": "Português",
}

// Env holds process level overrides read from the environment
type Env struct {
	ConfigFile     string        `env:"DMD_CONFIG_FILE"`
	StickerBaseURL string        `env:"DMD_STICKER_BASE_URL"` // empty means the public CDN
	EmojiBaseURL   string        `env:"DMD_EMOJI_BASE_URL"`
	HTTPTimeout    time.Duration `env:"DMD_HTTP_TIMEOUT" envDefault:"0s"`
	Language       string        `env:"DMD_LANGUAGE" envDefault:"en"`
	LogLevel       string        `env:"DMD_LOG_LEVEL" envDefault:"info"`
	LogNoColor     bool          `env:"DMD_LOG_NO_COLOR"`
}

// LoadEnv loads an optional .env file and parses the environment
func LoadEnv(dotenvFiles ...string) (*Env, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Env{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}
	return cfg.normalize(), nil
}

// ParseEnv parses settings from the given variables only
func ParseEnv(vars map[string]string) (*Env, error) {
	cfg := &Env{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}
	return cfg.normalize(), nil
}

// ConfigPath returns the configured config file path or the platform default
func (e *Env) ConfigPath() string {
	if e.ConfigFile != "" {
		return e.ConfigFile
	}
	return DefaultConfigPath()
}

func (e *Env) normalize() *Env {
	if _, ok := Languages[e.Language]; !ok {
		e.Language = "en"
	}
	if e.HTTPTimeout < 0 {
		e.HTTPTimeout = 0
	}
	return e
}
