package echo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the echoserver YAML configuration file structure.
type Config struct {
	// Listen is the host:port address the server binds to.
	Listen string `yaml:"listen"`
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}
