// Package config loads autogql settings from a YAML file, .env files and
// the process environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	EnvEndpoint = "AUTOGQL_ENDPOINT"
	EnvOutput   = "AUTOGQL_OUTPUT"
	EnvToken    = "AUTOGQL_TOKEN"
)

// DefaultTimeout bounds the introspection request when nothing else is set.
const DefaultTimeout = 30 * time.Second

type Config struct {
	Endpoint string            `yaml:"endpoint"`
	Output   string            `yaml:"output"`
	Name     string            `yaml:"name"`
	Headers  map[string]string `yaml:"headers"`
	Timeout  time.Duration     `yaml:"timeout"`
}

// Load reads the YAML file at path. An empty path yields an empty config.
// Environment overrides are applied on top either way.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		c.SetHeader("Authorization", "Bearer "+v)
	}
}

func (c *Config) SetHeader(key, value string) {
	if c.Headers == nil {
		c.Headers = make(map[string]string)
	}
	c.Headers[key] = value
}

// ParseHeader splits a "Key: Value" flag value.
func ParseHeader(raw string) (string, string, error) {
	key, value, found := strings.Cut(raw, ":")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", "", fmt.Errorf("invalid header %q, expected \"Key: Value\"", raw)
	}
	return key, strings.TrimSpace(value), nil
}

// LoadEnv loads variables from .env files in the working directory.
func LoadEnv(logger logrus.FieldLogger) {
	files := []string{".env", ".env.local"}
	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			logger.WithError(err).Warnf("Failed to load %s", file)
			continue
		}
		loaded = append(loaded, file)
	}
	if len(loaded) == 0 {
		logger.Debug("No local env files loaded; relying on process environment")
	} else {
		logger.Debugf("Loaded env files: %s", strings.Join(loaded, ", "))
	}
}
