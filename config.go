package cascade

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the service configuration. It
// can be populated from YAML, environment variables, etc. The zero-value is
// useful – all nested fields inherit their package defaults.

type Config struct {
	Storage Endpoint `json:"storage" yaml:"storage" envPrefix:"CASCADE_STORAGE_"`
	Node    Endpoint `json:"node" yaml:"node" envPrefix:"CASCADE_NODE_"`
}

// Endpoint locates one remote collaborator service.
type Endpoint struct {
	Host string `json:"host" yaml:"host" env:"HOST"`
	Port int    `json:"port" yaml:"port" env:"PORT"`
}

// Address renders the endpoint as host:port.
func (e *Endpoint) Address() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// DefaultConfig returns a Config populated with the conventional locator
// endpoint of the app platform. Callers may modify the returned struct
// before passing it to New.
func DefaultConfig() *Config {
	return &Config{
		Storage: Endpoint{Host: "localhost", Port: 10053},
		Node:    Endpoint{Host: "localhost", Port: 10053},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Storage.Port <= 0 || c.Storage.Port > 65535 {
		return fmt.Errorf("storage.port must be in range 1..65535, had: %d", c.Storage.Port)
	}
	if c.Node.Port <= 0 || c.Node.Port > 65535 {
		return fmt.Errorf("node.port must be in range 1..65535, had: %d", c.Node.Port)
	}
	return nil
}

// ConfigFromEnv builds a configuration from defaults overlaid with
// CASCADE_* environment variables.
func ConfigFromEnv() (*Config, error) {
	config := DefaultConfig()
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadConfig reads a YAML configuration from URL (file path, mem:// etc)
// and overlays CASCADE_* environment variables on top.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %s %w", URL, err)
	}
	config := DefaultConfig()
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %s %w", URL, err)
	}
	if err = env.Parse(config); err != nil {
		return nil, err
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
