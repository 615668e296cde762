package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/i474232898/weather-report/internal/common"
)

// EnvPrefix is prepended to every environment variable, e.g. WEATHER_PORT.
const EnvPrefix = "WEATHER"

var validate = validator.New()

// SourceConfig names one delimited input, a file path or an http(s) URL.
type SourceConfig struct {
	Name     string `yaml:"name" validate:"required,alphanum"`
	Location string `yaml:"location" validate:"required"`
}

type AppConfig struct {
	Port string `envconfig:"PORT" default:"8080" validate:"required,numeric"`

	// RefreshInterval controls how often every source is reloaded.
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"15m" validate:"gte=0"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`

	// In-memory store retention.
	StoreMaxHistory int           `envconfig:"STORE_MAX_HISTORY" default:"10" validate:"gte=0"` // 0 = unlimited
	StoreMaxAge     time.Duration `envconfig:"STORE_MAX_AGE" default:"0s" validate:"gte=0"`     // 0 = unlimited

	// Comma is the field delimiter; "tab" is accepted for '\t'.
	Comma string `envconfig:"COMMA" default:","`

	// Client-side limits for remote sources.
	RemoteRPS   float64 `envconfig:"REMOTE_RPS" default:"1" validate:"gte=0"`
	RemoteBurst int     `envconfig:"REMOTE_BURST" default:"1" validate:"gte=0"`

	// RawSources is "name=location,name=location" from the environment.
	RawSources []string `envconfig:"SOURCES"`
	ConfigFile string   `envconfig:"CONFIG_FILE" default:"weather.yaml"`

	Sources []SourceConfig `ignored:"true" validate:"dive"`
}

// fileConfig is the shape of the optional YAML file.
type fileConfig struct {
	Sources []SourceConfig `yaml:"sources"`
}

// Load reads configuration from .env, the environment and the optional YAML
// file. Environment sources override file sources with the same name.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	var fileSources []SourceConfig
	if _, err := os.Stat(cfg.ConfigFile); err == nil {
		fc, err := loadFromFile(cfg.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", cfg.ConfigFile, err)
		}
		fileSources = fc.Sources
	}

	envSources, err := parseSources(cfg.RawSources)
	if err != nil {
		return nil, err
	}
	cfg.Sources = mergeSources(fileSources, envSources)

	if cfg.Comma == "tab" {
		cfg.Comma = "\t"
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Delimiter returns the configured field delimiter as a rune.
func (c *AppConfig) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.Comma)
	return r
}

func (c *AppConfig) validate() error {
	if utf8.RuneCountInString(c.Comma) != 1 {
		return fmt.Errorf("invalid %s_COMMA %q: must be a single character", EnvPrefix, c.Comma)
	}
	switch c.Delimiter() {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("invalid %s_COMMA %q", EnvPrefix, c.Comma)
	}
	return validate.Struct(c)
}

func loadFromFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, err
	}
	return &fc, nil
}

func parseSources(raw []string) ([]SourceConfig, error) {
	var out []SourceConfig
	for _, item := range raw {
		name, location, ok := common.SplitPair(item)
		if !ok {
			return nil, errors.New("sources must be name=location pairs")
		}
		out = append(out, SourceConfig{Name: name, Location: location})
	}
	return out, nil
}

// mergeSources keeps file order, replaces locations overridden by env and
// appends env-only sources.
func mergeSources(fileSources, envSources []SourceConfig) []SourceConfig {
	merged := make([]SourceConfig, 0, len(fileSources)+len(envSources))
	index := make(map[string]int)
	all := append(append([]SourceConfig{}, fileSources...), envSources...)
	for _, s := range all {
		if i, ok := index[s.Name]; ok {
			merged[i] = s
			continue
		}
		index[s.Name] = len(merged)
		merged = append(merged, s)
	}
	return merged
}
