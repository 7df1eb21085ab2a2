/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Backend names accepted in the configuration
const (
	BackendS3    = "s3"
	BackendLocal = "local"
)

// Config represents the gulog configuration
type Config struct {
	Backend  string   `yaml:"backend"`  // "s3" or "local"
	DataDir  string   `yaml:"data_dir"` // Local backend storage path
	Port     int      `yaml:"port"`
	Bind     string   `yaml:"bind"`
	S3       S3       `yaml:"s3"`
	WAL      WAL      `yaml:"wal"`
	Security Security `yaml:"security"`
	Logging  Logging  `yaml:"logging"`
}

// S3 contains object-store connection configuration
type S3 struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// WAL contains log-level configuration
type WAL struct {
	Prefix string `yaml:"prefix"` // Key namespace records are written under
}

// Security contains security-related configuration
type Security struct {
	APIKey string `yaml:"api_key"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendLocal,
		DataDir: "./data",
		Port:    8080,
		Bind:    "127.0.0.1",
		S3: S3{
			Endpoint: "127.0.0.1:9000",
			Bucket:   "gulog-dev",
			Region:   "us-east-1",
			UseSSL:   false,
		},
		WAL: WAL{
			Prefix: "wal",
		},
		Security: Security{
			APIKey: "auto",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is internally consistent
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendS3:
		if c.S3.Endpoint == "" {
			return fmt.Errorf("s3 backend requires an endpoint")
		}
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3 backend requires a bucket")
		}
	case BackendLocal:
		if c.DataDir == "" {
			return fmt.Errorf("local backend requires a data_dir")
		}
	default:
		return fmt.Errorf("unknown backend %q (expected %q or %q)", c.Backend, BackendS3, BackendLocal)
	}
	return nil
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600), credentials live in here
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig creates a new configuration with a generated API key and
// saves it to configPath
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	apiKey, err := GenerateSecureKey(32) // 256 bits
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.Security.APIKey = apiKey

	// Save the configuration
	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	// Use OS-specific default locations
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./gulog.yaml"
	}

	// For Linux/macOS, use ~/.config/gulog/config.yaml
	configDir := filepath.Join(homeDir, ".config", "gulog")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
