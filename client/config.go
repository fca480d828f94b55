package client

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config is the client-side environment configuration.
type Config struct {
	BaseURL  string        `env:"NOTESHARE_API_URL" envDefault:"http://127.0.0.1:8080/api"`
	Timeout  time.Duration `env:"NOTESHARE_TIMEOUT" envDefault:"30s"`
	StateDir string        `env:"NOTESHARE_STATE_DIR"`
}

// LoadConfig reads configuration from the environment. StateDir
// defaults to the user's config directory.
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("read config error: %w", err)
	}

	if config.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve state dir: %w", err)
		}
		config.StateDir = filepath.Join(base, "noteshare")
	}

	return config, nil
}
