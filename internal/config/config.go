package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is where the rental API listens in a local setup.
	DefaultBaseURL = "http://127.0.0.1:5000"

	dirName        = ".bikerental"
	configFileName = "config.yaml"
	envPrefix      = "BIKERENTAL_"
)

// Config is everything the dashboard reads at startup.
type Config struct {
	API   API    `yaml:"api"`
	Log   Log    `yaml:"log"`
	Theme string `yaml:"theme"`
}

// API configures the gateway.
type API struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
	// Timeout of zero leaves requests unbounded.
	Timeout time.Duration `yaml:"timeout"`
	Retries int           `yaml:"retries"`
}

// Log configures the debug log. No file means no logging.
type Log struct {
	File  string `yaml:"file"`
	Level int    `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API:   API{BaseURL: DefaultBaseURL},
		Theme: "classic",
	}
}

// Dir returns ~/.bikerental.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Load builds the configuration: defaults, then the YAML file, then .env,
// then BIKERENTAL_* variables. An empty path means ~/.bikerental/config.yaml;
// a missing file is fine, a broken one is not.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		dir, err := Dir()
		if err == nil {
			path = filepath.Join(dir, configFileName)
		}
	}
	if path != "" {
		if err := readFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := env("API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := env("API_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := env("TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", envPrefix, err)
		}
		cfg.API.Timeout = d
	}
	if v := env("RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sRETRIES: %w", envPrefix, err)
		}
		cfg.API.Retries = n
	}
	if v := env("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := env("LOG_LEVEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sLOG_LEVEL: %w", envPrefix, err)
		}
		cfg.Log.Level = n
	}
	if v := env("THEME"); v != "" {
		cfg.Theme = v
	}
	return nil
}

func env(key string) string { return strings.TrimSpace(os.Getenv(envPrefix + key)) }

// Validate rejects values the gateway cannot work with.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api base url must be an absolute http(s) url, got %q", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api timeout must not be negative")
	}
	if c.API.Retries < 0 {
		return fmt.Errorf("api retries must not be negative")
	}
	return nil
}
