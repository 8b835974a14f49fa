// Package config loads the itinerary server settings from a JSON or YAML
// file and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	defaultAddr     = "127.0.0.1"
	defaultPort     = ":8880"
	defaultDataPath = "data/activities.json"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
	Port string `json:"port" yaml:"port"`
}

// FormConfig configures the activity form and the records it produces.
type FormConfig struct {
	// BaseURL is injected into the page and prefixes the form's POST. Empty
	// keeps requests same-origin.
	BaseURL string `json:"base_url" yaml:"base_url"`
	// AllowedOrigins may call the submission endpoint cross-origin.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
	// DataPath is the JSON file the activity store writes to.
	DataPath string `json:"data_path" yaml:"data_path"`
	// MapsAPIKey is handed to the place picker's API loader.
	MapsAPIKey string `json:"maps_api_key" yaml:"maps_api_key"`
}

// Config represents the combined runtime settings.
type Config struct {
	Server ServerConfig
	Form   FormConfig
}

type fileConfig struct {
	ServerBlock *ServerConfig `json:"server" yaml:"server"`
	FormBlock   *FormConfig   `json:"form" yaml:"form"`
	Addr        string        `json:"addr" yaml:"addr"`
	Port        string        `json:"port" yaml:"port"`
}

// envConfig lists the supported environment overrides. Unset variables keep
// the file value.
type envConfig struct {
	Addr           string   `env:"ITINERARY_ADDR"`
	Port           string   `env:"ITINERARY_PORT"`
	BaseURL        string   `env:"ITINERARY_BASE_URL"`
	AllowedOrigins []string `env:"ITINERARY_ALLOWED_ORIGINS" envSeparator:","`
	DataPath       string   `env:"ITINERARY_DATA_PATH"`
	MapsAPIKey     string   `env:"GOOGLE_MAPS_API_KEY"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: defaultAddr, Port: defaultPort},
		Form:   FormConfig{DataPath: defaultDataPath},
	}
}

// Load reads the config at path and fills in defaults. Files ending in
// .yaml or .yml are decoded as YAML, anything else as JSON. Top-level
// "addr"/"port" keys are accepted when the "server" block omits them.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var raw fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}

	server := ServerConfig{Addr: raw.Addr, Port: raw.Port}
	if raw.ServerBlock != nil {
		server = *raw.ServerBlock
		if server.Addr == "" {
			server.Addr = raw.Addr
		}
		if server.Port == "" {
			server.Port = raw.Port
		}
	}

	var form FormConfig
	if raw.FormBlock != nil {
		form = *raw.FormBlock
	}

	return Config{Server: server, Form: form}.withDefaults(), nil
}

// ApplyEnv overrides settings from ITINERARY_* environment variables.
func (c Config) ApplyEnv() (Config, error) {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	c.Server.Addr = firstNonEmpty(e.Addr, c.Server.Addr)
	c.Server.Port = firstNonEmpty(e.Port, c.Server.Port)
	c.Form.BaseURL = firstNonEmpty(e.BaseURL, c.Form.BaseURL)
	c.Form.DataPath = firstNonEmpty(e.DataPath, c.Form.DataPath)
	c.Form.MapsAPIKey = firstNonEmpty(e.MapsAPIKey, c.Form.MapsAPIKey)
	if len(e.AllowedOrigins) > 0 {
		c.Form.AllowedOrigins = e.AllowedOrigins
	}
	return c.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Server.Port == "" {
		c.Server.Port = defaultPort
	}
	if c.Form.DataPath == "" {
		c.Form.DataPath = defaultDataPath
	}
	c.Form.BaseURL = strings.TrimRight(strings.TrimSpace(c.Form.BaseURL), "/")

	origins := c.Form.AllowedOrigins[:0:0]
	for _, o := range c.Form.AllowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	c.Form.AllowedOrigins = origins
	return c
}

func firstNonEmpty(val, fallback string) string {
	if val = strings.TrimSpace(val); val != "" {
		return val
	}
	return fallback
}
