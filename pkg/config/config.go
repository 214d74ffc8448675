// Package config loads sheetplot settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every setting of the CLI and server.
type Config struct {
	Server   ServerConfig `yaml:"server"`
	Render   RenderConfig `yaml:"render"`
	Load     LoadConfig   `yaml:"load"`
	LogLevel string       `yaml:"log_level"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
}

// RenderConfig configures the output image.
type RenderConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	DPI    float64 `yaml:"dpi"`
	Format string  `yaml:"format"`
}

// LoadConfig configures how workbooks are read.
type LoadConfig struct {
	UsePrintArea bool `yaml:"use_print_area"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			MaxUploadBytes: 32 << 20,
			SessionTTL:     30 * time.Minute,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   60 * time.Second,
		},
		Render: RenderConfig{
			Width:  640,
			Height: 480,
			DPI:    100,
			Format: "png",
		},
		LogLevel: "info",
	}
}

// Load reads configuration from path. A missing file yields the defaults,
// and settings left empty in the file keep their default value.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.MaxUploadBytes <= 0 {
		c.Server.MaxUploadBytes = def.Server.MaxUploadBytes
	}
	if c.Server.SessionTTL <= 0 {
		c.Server.SessionTTL = def.Server.SessionTTL
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = def.Server.ReadTimeout
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = def.Server.WriteTimeout
	}
	if c.Render.Width <= 0 {
		c.Render.Width = def.Render.Width
	}
	if c.Render.Height <= 0 {
		c.Render.Height = def.Render.Height
	}
	if c.Render.DPI <= 0 {
		c.Render.DPI = def.Render.DPI
	}
	if c.Render.Format == "" {
		c.Render.Format = def.Render.Format
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
