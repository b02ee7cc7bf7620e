package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration defaults applied by New.
const (
	DefaultBaseURL        = "http://localhost:8000"
	DefaultTimeoutSeconds = 15
	DefaultRetryMax       = 3
	DefaultFromMonth      = 1
	DefaultToMonth        = 12
	DefaultMaxSelection   = 8
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
)

// Validation limits.
const (
	MinYear = 2000 // Proforma archive starts in 2000.
	MaxYear = 2100

	MinMonth = 1
	MaxMonth = 12

	MinMaxSelection = 1
)

// Log output formats accepted by the logging section.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Validation errors.
var (
	ErrBaseURLRequired      = errors.New("api base_url is required")
	ErrBaseURLScheme        = errors.New("api base_url must use http or https")
	ErrYearOutOfRange       = errors.New("defaults year must be between 2000 and 2100")
	ErrMonthOutOfRange      = errors.New("months must be between 1 and 12")
	ErrMonthRangeInverted   = errors.New("from_month must not be after to_month")
	ErrMaxSelectionTooSmall = errors.New("ui max_selection must be at least 1")
	ErrLogFormatInvalid     = errors.New("logging format must be 'console' or 'json'")
)

// APIConfig is the connection section of the config file.
type APIConfig struct {
	// BaseURL is the backend root, e.g. "http://localhost:8000".
	BaseURL string `yaml:"base_url"        json:"base_url"`
	// Token is the bearer token attached to every request. Empty disables
	// the Authorization header.
	Token string `yaml:"token,omitempty" json:"token,omitempty"`
	// TimeoutSeconds bounds each HTTP attempt.
	TimeoutSeconds int `yaml:"timeout_seconds" json:"timeout_seconds"`
	// RetryMax is the retry budget per request.
	RetryMax int `yaml:"retry_max"       json:"retry_max"`
}

// Timeout returns the configured timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// DefaultsConfig is the session defaults section: the filters explore
// commands start with when no flags are given.
type DefaultsConfig struct {
	// Year is the calendar year sessions open on.
	Year int `yaml:"year"       json:"year"`
	// FromMonth and ToMonth bound month rows client-side.
	FromMonth int `yaml:"from_month" json:"from_month"`
	ToMonth   int `yaml:"to_month"   json:"to_month"`
}

// UIConfig is the explorer tuning section.
type UIConfig struct {
	// MaxSelection bounds the product comparison multi-selection.
	MaxSelection int `yaml:"max_selection" json:"max_selection"`
}

// LoggingConfig is the logging section of the config file.
type LoggingConfig struct {
	// Level is the zerolog level name ("debug", "info", ...).
	Level string `yaml:"level"          json:"level"`
	// Format selects console (human) or json (machine) output.
	Format string `yaml:"format"         json:"format"`
	// File appends logs to the given path when set.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
}

// Config is the full caterview configuration.
type Config struct {
	API      APIConfig      `yaml:"api"      json:"api"`
	Defaults DefaultsConfig `yaml:"defaults" json:"defaults"`
	UI       UIConfig       `yaml:"ui"       json:"ui"`
	Logging  LoggingConfig  `yaml:"logging"  json:"logging"`
}

// New returns the default configuration: local backend, current year,
// full month range.
func New() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
			RetryMax:       DefaultRetryMax,
		},
		Defaults: DefaultsConfig{
			Year:      time.Now().Year(),
			FromMonth: DefaultFromMonth,
			ToMonth:   DefaultToMonth,
		},
		UI: UIConfig{
			MaxSelection: DefaultMaxSelection,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load builds the effective configuration: defaults, then the config file
// at path, then a .caterview.yaml overlay from the working directory, then
// environment overrides. An empty path means the default location, where a
// missing file is not an error; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, unmarshalErr)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// Defaults only.
	default:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if overlayErr := mergeWorkspaceOverlay(cfg); overlayErr != nil {
		return nil, overlayErr
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// mergeWorkspaceOverlay merges OverlayFileName from the working directory
// over cfg. A directory without one changes nothing.
func mergeWorkspaceOverlay(cfg *Config) error {
	wd, err := os.Getwd()
	if err != nil {
		return nil
	}
	overlayPath := filepath.Join(wd, OverlayFileName)
	if _, statErr := os.Stat(overlayPath); statErr != nil {
		return nil
	}
	if mergeErr := ShallowMergeYAML(cfg, overlayPath); mergeErr != nil {
		return fmt.Errorf("workspace overlay: %w", mergeErr)
	}
	return nil
}

// Environment variables overriding the config file.
const (
	EnvConfigPath = "CATERVIEW_CONFIG"
	EnvAPIURL     = "CATERVIEW_API_URL"
	EnvAPIToken   = "CATERVIEW_API_TOKEN"
	EnvLogLevel   = "CATERVIEW_LOG_LEVEL"
	EnvHome       = "CATERVIEW_HOME"
)

// applyEnv overlays environment variables onto the loaded file values.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration for values no session could run with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return ErrBaseURLRequired
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api base_url %q: %w", c.API.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: got %q", ErrBaseURLScheme, c.API.BaseURL)
	}

	if c.Defaults.Year < MinYear || c.Defaults.Year > MaxYear {
		return fmt.Errorf("%w: got %d", ErrYearOutOfRange, c.Defaults.Year)
	}
	for _, m := range []int{c.Defaults.FromMonth, c.Defaults.ToMonth} {
		if m < MinMonth || m > MaxMonth {
			return fmt.Errorf("%w: got %d", ErrMonthOutOfRange, m)
		}
	}
	if c.Defaults.FromMonth > c.Defaults.ToMonth {
		return fmt.Errorf("%w: got %d..%d", ErrMonthRangeInverted, c.Defaults.FromMonth, c.Defaults.ToMonth)
	}

	if c.UI.MaxSelection < MinMaxSelection {
		return fmt.Errorf("%w: got %d", ErrMaxSelectionTooSmall, c.UI.MaxSelection)
	}

	if c.Logging.Format != LogFormatConsole && c.Logging.Format != LogFormatJSON {
		return fmt.Errorf("%w: got %q", ErrLogFormatInvalid, c.Logging.Format)
	}
	return nil
}

// GetConfigDir returns the caterview configuration directory,
// ~/.caterview by default or $CATERVIEW_HOME when set.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".caterview"), nil
}

// DefaultPath returns the default config file location, honoring the
// CATERVIEW_CONFIG override.
func DefaultPath() (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// EnsureConfigDir creates the configuration directory if needed.
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// EnsureLogDir creates the parent directory of the configured log file.
// A config without a log file needs no directory.
func (lc LoggingConfig) EnsureLogDir() error {
	if lc.File == "" {
		return nil
	}
	logDir := filepath.Dir(lc.File)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}

// WriteDefault writes a starter config file to path, creating parent
// directories. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config file %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(New())
	if err != nil {
		return fmt.Errorf("marshalling default config: %w", err)
	}
	header := []byte("# caterview configuration\n# Values here are defaults; flags and CATERVIEW_* env vars override them.\n")
	return os.WriteFile(path, append(header, data...), 0600)
}
