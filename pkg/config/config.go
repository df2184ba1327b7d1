package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TINYWEB_"

var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrParse         = errors.New("config: parse failed")
)

// Config holds the server settings.
// Values come from defaults, then the YAML file, then TINYWEB_* variables.
type Config struct {
	// HTTP listen address.
	Address string `yaml:"address" env:"ADDRESS"`

	// Time allowed for in-flight requests and shutdown hooks.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`

	Log    Log    `yaml:"log" envPrefix:"LOG_"`
	Sentry Sentry `yaml:"sentry" envPrefix:"SENTRY_"`

	// Directories served by HTML and File results. Empty means the embedded
	// defaults of the binary.
	ViewsDir string `yaml:"views_dir" env:"VIEWS_DIR"`
	FilesDir string `yaml:"files_dir" env:"FILES_DIR"`

	// Token required by the demo admin page. Empty locks the page.
	AdminToken string `yaml:"admin_token" env:"ADMIN_TOKEN"`
}

// Log configures the application logger.
type Log struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// Sentry configures error reporting. An empty DSN disables it.
type Sentry struct {
	DSN         string `yaml:"dsn" env:"DSN"`
	Environment string `yaml:"environment" env:"ENVIRONMENT"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Address:         ":8080",
		ShutdownTimeout: 30 * time.Second,
		Log:             Log{Level: "info", Format: "json"},
		Sentry:          Sentry{Environment: "development"},
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrParse, err)
		}
		defer f.Close()

		if err := decode(f, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decode rejects unknown keys so typos do not silently fall back to defaults.
func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	return nil
}

// Validate checks the settings that cannot be defaulted.
func (c Config) Validate() error {
	var errs []error
	if c.Address == "" {
		errs = append(errs, errors.New("address is required"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown_timeout must be positive"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not json or text", c.Log.Format))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is unknown", c.Log.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
