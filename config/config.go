// Package config loads runtime settings from HYDRATE_* environment variables and an optional .env file
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/lixenwraith/hydrate/hydration"
)

// Prefix is prepended to every variable name
const Prefix = "HYDRATE_"

type Config struct {
	// Tip endpoint
	TipBaseURL string        `env:"TIP_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	TipModel   string        `env:"TIP_MODEL" envDefault:"gemini-2.5-flash"`
	TipAPIKey  string        `env:"TIP_API_KEY"`
	TipTimeout time.Duration `env:"TIP_TIMEOUT" envDefault:"15s"`

	// Widget defaults
	DurationMinutes int    `env:"DURATION_MINUTES" envDefault:"60"`
	BodyVariant     string `env:"BODY_VARIANT" envDefault:"generic"`
	RenderMode      string `env:"RENDER_MODE" envDefault:"outline"`

	// Audio
	AudioEnabled    bool `env:"AUDIO_ENABLED" envDefault:"true"`
	AudioVolume     int  `env:"AUDIO_VOLUME" envDefault:"50"` // percent
	AudioSampleRate int  `env:"AUDIO_SAMPLE_RATE" envDefault:"44100"`

	// Desktop notifications
	AppName string `env:"APP_NAME" envDefault:"Hydrate"`

	// Logging, only used with -debug
	LoggerLevel  string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
}

// Load reads envFile if present, then parses the process environment
// A missing envFile is not an error
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return parse(env.Options{Prefix: Prefix})
}

// FromMap parses a fixed environment; keys carry the HYDRATE_ prefix
func FromMap(environ map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the widget cannot run with
// The duration is normalized in place onto the slider grid
func (c *Config) Validate() error {
	var errs []error

	m, err := hydration.NormalizeDuration(c.DurationMinutes)
	if err != nil {
		errs = append(errs, fmt.Errorf("%sDURATION_MINUTES: %w", Prefix, err))
	} else {
		c.DurationMinutes = m
	}
	if _, err := hydration.ParseBodyVariant(c.BodyVariant); err != nil {
		errs = append(errs, fmt.Errorf("%sBODY_VARIANT: %w", Prefix, err))
	}
	if c.RenderMode != "outline" && c.RenderMode != "volume" && c.RenderMode != "2d" && c.RenderMode != "3d" {
		errs = append(errs, fmt.Errorf("%sRENDER_MODE: unknown mode %q", Prefix, c.RenderMode))
	}
	if c.AudioVolume < 0 || c.AudioVolume > 100 {
		errs = append(errs, fmt.Errorf("%sAUDIO_VOLUME: %d out of range 0-100", Prefix, c.AudioVolume))
	}
	if c.TipTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%sTIP_TIMEOUT: must be positive", Prefix))
	}

	return errors.Join(errs...)
}

// TipConfigured reports whether an API key was provided
func (c *Config) TipConfigured() bool {
	return c.TipAPIKey != ""
}
