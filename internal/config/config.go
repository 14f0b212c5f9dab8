package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		Debug     bool   `yaml:"debug"`
		LogFormat string `yaml:"log_format"` // 'text' or 'json'
	} `yaml:"app"`

	OMDb struct {
		URL     string        `yaml:"url"`
		APIKey  string        `yaml:"api_key"`
		Timeout time.Duration `yaml:"timeout"`
		// Version is sent as the 'v' parameter; 0 leaves it out of the query.
		Version int `yaml:"version"`
	} `yaml:"omdb"`

	Search struct {
		DefaultType string `yaml:"default_type"`
	} `yaml:"search"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.App.Host = "127.0.0.1"
	cfg.App.Port = 3005
	cfg.App.Debug = false
	cfg.App.LogFormat = "text"

	cfg.OMDb.URL = "https://www.omdbapi.com/"
	cfg.OMDb.Timeout = 10 * time.Second

	cfg.Search.DefaultType = "movie"
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("WATCHWISE_HOST"); v != "" {
		cfg.App.Host = v
	}
	if v := os.Getenv("WATCHWISE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = port
		}
	}
	if v := os.Getenv("WATCHWISE_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			cfg.App.Debug = debug
		}
	}
	if v := os.Getenv("WATCHWISE_LOG_FORMAT"); v != "" {
		cfg.App.LogFormat = v
	}
	if v := os.Getenv("WATCHWISE_DEFAULT_TYPE"); v != "" {
		cfg.Search.DefaultType = v
	}

	if v := os.Getenv("OMDB_URL"); v != "" {
		cfg.OMDb.URL = v
	}
	if v := os.Getenv("OMDB_API_KEY"); v != "" {
		cfg.OMDb.APIKey = v
	}
	if v := os.Getenv("OMDB_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.OMDb.Timeout = d
		}
	}
	if v := os.Getenv("OMDB_VERSION"); v != "" {
		if version, err := strconv.Atoi(v); err == nil {
			cfg.OMDb.Version = version
		}
	}
}

// Validate reports the first setting that would keep the server from starting.
func (c *Config) Validate() error {
	if c.App.Port < 1 || c.App.Port > 65535 {
		return fmt.Errorf("app.port out of range: %d", c.App.Port)
	}
	switch strings.ToLower(c.App.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("app.log_format: unsupported value %q", c.App.LogFormat)
	}

	u, err := url.Parse(c.OMDb.URL)
	if err != nil {
		return fmt.Errorf("omdb.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("omdb.url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("omdb.url: missing host")
	}
	if c.OMDb.Timeout <= 0 {
		return fmt.Errorf("omdb.timeout must be positive, got %s", c.OMDb.Timeout)
	}
	if c.OMDb.Version < 0 {
		return fmt.Errorf("omdb.version must not be negative, got %d", c.OMDb.Version)
	}

	switch c.Search.DefaultType {
	case "movie", "series", "episode":
	default:
		return fmt.Errorf("search.default_type: unsupported value %q", c.Search.DefaultType)
	}
	return nil
}

// Address returns the host:port the HTTP server binds to.
func (c *Config) Address() string {
	return net.JoinHostPort(c.App.Host, strconv.Itoa(c.App.Port))
}
