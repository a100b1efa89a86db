package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"FieldForms"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Data struct {
		// Root directory for the JSON collections
		// (userinfo/, expenses/, timesheet/ live underneath).
		Root string `envconfig:"DATA_ROOT" default:"data"`
	}

	Currency struct {
		Home string `envconfig:"HOME_CURRENCY" default:"THB"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"JWT_SECRET" default:"change-me"`
		TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"12h"`
		// The original desktop tool shipped with a reserved recovery
		// account that bypasses the password hash. Kept behind a flag
		// so deployments can turn it off.
		EnableBootstrapAccount bool `envconfig:"ENABLE_BOOTSTRAP_ACCOUNT" default:"true"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
