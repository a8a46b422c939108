package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nzaccagnino/notely/internal/api"
)

const (
	EnvAPIURL      = "NOTELY_API_URL"
	EnvStoragePath = "NOTELY_STORAGE_PATH"
	EnvLogLevel    = "NOTELY_LOG_LEVEL"
	EnvLanguage    = "NOTELY_LANGUAGE"
)

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type Config struct {
	API         APIConfig `yaml:"api"`
	StoragePath string    `yaml:"storage_path"`
	LogFile     string    `yaml:"log_file"`
	LogLevel    string    `yaml:"log_level"`
	Language    string    `yaml:"language"`
	Theme       string    `yaml:"theme"`
}

func DefaultConfigPath() string {
	return besideExecutable("config.yml")
}

func DefaultStoragePath() string {
	return besideExecutable("notely.db")
}

func DefaultLogFile() string {
	return besideExecutable("notely.log")
}

func besideExecutable(name string) string {
	exe, err := os.Executable()
	if err != nil {
		return name
	}
	return filepath.Join(filepath.Dir(exe), name)
}

func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: api.DefaultBaseURL,
			Timeout: 30 * time.Second,
		},
		StoragePath: DefaultStoragePath(),
		LogFile:     DefaultLogFile(),
		LogLevel:    "info",
		Language:    "en",
		Theme:       "dark",
	}
}

func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// Load reads the YAML file at path on top of the defaults, then applies a
// .env file found beside it and the NOTELY_* environment variables. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Variables already set take precedence over .env values.
	_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))
	cfg.applyEnv()

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = api.DefaultBaseURL
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.StoragePath == "" {
		cfg.StoragePath = DefaultStoragePath()
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile()
	}

	cfg.StoragePath = expandHome(cfg.StoragePath)
	cfg.LogFile = expandHome(cfg.LogFile)

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.API.BaseURL = getEnv(EnvAPIURL, c.API.BaseURL)
	c.StoragePath = getEnv(EnvStoragePath, c.StoragePath)
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)
	c.Language = getEnv(EnvLanguage, c.Language)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
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
