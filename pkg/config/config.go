package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "SIMCART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App AppConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SIMCART_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"SIMCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SIMCART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}
