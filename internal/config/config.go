package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingCredential means no Gemini API key was found. The application
// cannot start without one.
var ErrMissingCredential = errors.New("gemini API key not configured (set GEMINI_API_KEY, GOOGLE_API_KEY or API_KEY)")

// Config holds all lamina configuration.
type Config struct {
	Gemini  GeminiConfig  `yaml:"gemini"`
	Storage StorageConfig `yaml:"storage"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	UI      UIConfig      `yaml:"ui"`
	Publish PublishConfig `yaml:"publish"`
}

// GeminiConfig configures the remote image service.
type GeminiConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	ImageModel string `yaml:"image_model"` // text-to-image
	EditModel  string `yaml:"edit_model"`  // image + directive -> image
	TextModel  string `yaml:"text_model"`  // improvement directives
	Timeout    string `yaml:"timeout"`
}

// StorageConfig configures the saved-image gallery database.
type StorageConfig struct {
	Driver       string `yaml:"driver"` // sqlite (pure Go) or sqlite3 (cgo)
	DatabasePath string `yaml:"database_path"`
	Key          string `yaml:"key"`
}

// OutputConfig configures where downloads are written.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	GeneratedAs  string `yaml:"generated_as"`
	ImprovedAs   string `yaml:"improved_as"`
	ResizeCanvas bool   `yaml:"resize_canvas"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	JSONFormat bool            `yaml:"json_format"`
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// UIConfig configures the interactive studio.
type UIConfig struct {
	Theme string `yaml:"theme"` // light, dark, auto
}

// PublishConfig configures optional upload of saved images to an
// S3-compatible bucket. Publishing is off unless Endpoint and Bucket are set.
type PublishConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home := DefaultHome()
	return &Config{
		Gemini: GeminiConfig{
			ImageModel: "imagen-4.0-generate-001",
			EditModel:  "gemini-2.5-flash-image",
			TextModel:  "gemini-2.5-pro",
			Timeout:    "180s",
		},
		Storage: StorageConfig{
			Driver:       "sqlite",
			DatabasePath: filepath.Join(home, "lamina.db"),
			Key:          "savedLamina",
		},
		Output: OutputConfig{
			Dir:         ".",
			GeneratedAs: "lamina-generada.jpg",
			ImprovedAs:  "lamina-mejorada-ia.jpg",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

// DefaultHome returns the per-user data directory (~/.lamina).
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lamina"
	}
	return filepath.Join(home, ".lamina")
}

// DefaultConfigPath returns ~/.lamina/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(DefaultHome(), "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
// Later keys in the chain win: API_KEY < GOOGLE_API_KEY < GEMINI_API_KEY.
func (c *Config) applyEnvOverrides() {
	for _, name := range []string{"API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY"} {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			c.Gemini.APIKey = key
		}
	}

	if path := os.Getenv("LAMINA_DB"); path != "" {
		c.Storage.DatabasePath = path
	}
	if dir := os.Getenv("LAMINA_OUTPUT_DIR"); dir != "" {
		c.Output.Dir = dir
	}
	if v := os.Getenv("LAMINA_DEBUG"); v == "1" || strings.EqualFold(v, "true") {
		c.Logging.DebugMode = true
	}
}

// GetGeminiTimeout returns the remote call timeout as a duration.
func (c *Config) GetGeminiTimeout() time.Duration {
	d, err := time.ParseDuration(c.Gemini.Timeout)
	if err != nil || d <= 0 {
		return 180 * time.Second
	}
	return d
}

// ValidDrivers lists the supported SQLite drivers.
var ValidDrivers = []string{"sqlite", "sqlite3"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return ErrMissingCredential
	}

	validDriver := false
	for _, d := range ValidDrivers {
		if c.Storage.Driver == d {
			validDriver = true
			break
		}
	}
	if !validDriver {
		return fmt.Errorf("invalid storage driver: %s (valid: %v)", c.Storage.Driver, ValidDrivers)
	}

	if c.Storage.Key == "" {
		return fmt.Errorf("storage key must not be empty")
	}

	return nil
}

// PublishEnabled reports whether bucket publishing is configured.
func (c *Config) PublishEnabled() bool {
	return c.Publish.Endpoint != "" && c.Publish.Bucket != ""
}

// DataDir returns the directory holding the database and logs.
func (c *Config) DataDir() string {
	return filepath.Dir(c.Storage.DatabasePath)
}
