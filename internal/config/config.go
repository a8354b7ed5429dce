package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir  = ".shopbuild"
	DefaultConfigFile = "config.yaml"
)

// Config represents the application configuration.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Output    OutputConfig    `yaml:"output,omitempty"`
	Session   SessionConfig   `yaml:"session,omitempty"`
}

// GeneratorConfig holds text-generation collaborator settings.
type GeneratorConfig struct {
	APIKeyEnv      string `yaml:"api_key_env"`     // Environment variable for the API key
	Model          string `yaml:"model"`           // Model identifier
	BaseURL        string `yaml:"base_url"`        // API base URL override (empty = service default)
	TimeoutSeconds int    `yaml:"timeout_seconds"` // Per-call timeout
}

// DefaultsConfig holds default build settings.
type DefaultsConfig struct {
	Mode       string `yaml:"mode"`        // template, simple or full
	Vendor     string `yaml:"vendor"`      // Vendor name on every output row
	DefaultQty int    `yaml:"default_qty"` // Default quantity per variant
	BulkQty    int    `yaml:"bulk_qty"`    // Bulk quantity (0 = bulk mode off)
}

// OutputConfig holds file output settings.
type OutputConfig struct {
	OutputDir string `yaml:"output_dir"`
	Pretty    bool   `yaml:"pretty"`
}

// SessionConfig holds session state settings.
type SessionConfig struct {
	StateFile string `yaml:"state_file"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{
			APIKeyEnv:      "GEMINI_API_KEY",
			Model:          "gemini-2.5-flash",
			TimeoutSeconds: 30,
		},
		Defaults: DefaultsConfig{
			Mode:       "template",
			Vendor:     "YourBrandName",
			DefaultQty: 10,
		},
		Output: OutputConfig{
			OutputDir: "./output",
			Pretty:    true,
		},
		Session: SessionConfig{
			StateFile: "output/.shopbuild-session.json",
		},
	}
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

// Load reads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadFrom(configPath)
}

// LoadFrom reads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	return &config, nil
}

// Save writes the configuration to the config file.
func Save(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return SaveTo(config, configPath)
}

// SaveTo writes the configuration to a specific path.
func SaveTo(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Init creates a new config file with defaults.
func Init() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	return Save(DefaultConfig())
}

// Exists checks if the config file exists.
func Exists() bool {
	configPath, err := GetConfigPath()
	if err != nil {
		return false
	}

	_, err = os.Stat(configPath)
	return err == nil
}

// applyDefaults fills in missing values with defaults.
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Generator.APIKeyEnv == "" {
		config.Generator.APIKeyEnv = defaults.Generator.APIKeyEnv
	}
	if config.Generator.Model == "" {
		config.Generator.Model = defaults.Generator.Model
	}
	if config.Generator.TimeoutSeconds <= 0 {
		config.Generator.TimeoutSeconds = defaults.Generator.TimeoutSeconds
	}
	if config.Defaults.Mode == "" {
		config.Defaults.Mode = defaults.Defaults.Mode
	}
	if config.Defaults.Vendor == "" {
		config.Defaults.Vendor = defaults.Defaults.Vendor
	}
	if config.Defaults.DefaultQty < 0 {
		config.Defaults.DefaultQty = defaults.Defaults.DefaultQty
	}
	if config.Output.OutputDir == "" {
		config.Output.OutputDir = defaults.Output.OutputDir
	}
	if config.Session.StateFile == "" {
		config.Session.StateFile = defaults.Session.StateFile
	}
}

// Set updates a specific config value.
func Set(key, value string) error {
	config, err := Load()
	if err != nil {
		return err
	}

	switch key {
	case "generator.api_key_env":
		config.Generator.APIKeyEnv = value
	case "generator.model":
		config.Generator.Model = value
	case "generator.base_url":
		config.Generator.BaseURL = value
	case "generator.timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid timeout: %q", value)
		}
		config.Generator.TimeoutSeconds = n
	case "defaults.mode":
		config.Defaults.Mode = value
	case "defaults.vendor":
		config.Defaults.Vendor = value
	case "defaults.default_qty":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid quantity: %q", value)
		}
		config.Defaults.DefaultQty = n
	case "defaults.bulk_qty":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid quantity: %q", value)
		}
		config.Defaults.BulkQty = n
	case "output.output_dir":
		config.Output.OutputDir = value
	case "session.state_file":
		config.Session.StateFile = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	return Save(config)
}

// Get retrieves a specific config value.
func Get(key string) (string, error) {
	config, err := Load()
	if err != nil {
		return "", err
	}

	switch key {
	case "generator.api_key_env":
		return config.Generator.APIKeyEnv, nil
	case "generator.model":
		return config.Generator.Model, nil
	case "generator.base_url":
		return config.Generator.BaseURL, nil
	case "generator.timeout_seconds":
		return strconv.Itoa(config.Generator.TimeoutSeconds), nil
	case "defaults.mode":
		return config.Defaults.Mode, nil
	case "defaults.vendor":
		return config.Defaults.Vendor, nil
	case "defaults.default_qty":
		return strconv.Itoa(config.Defaults.DefaultQty), nil
	case "defaults.bulk_qty":
		return strconv.Itoa(config.Defaults.BulkQty), nil
	case "output.output_dir":
		return config.Output.OutputDir, nil
	case "session.state_file":
		return config.Session.StateFile, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}
