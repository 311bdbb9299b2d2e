package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Optivest"`
	}

	API struct {
		BaseURL string        `envconfig:"API_BASE_URL" default:"https://api.optivest.app"`
		Timeout time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
	}

	Session struct {
		// Path to the saved session file. Empty means the default
		// location under the user config dir.
		Path string `envconfig:"SESSION_PATH"`
	}
}

func (c *Config) SessionPath() (string, error) {
	if c.Session.Path != "" {
		return c.Session.Path, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}

	return filepath.Join(dir, "optivest", "session.json"), nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
