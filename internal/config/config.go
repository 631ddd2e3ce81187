package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Environment string `toml:"-"`

	// env vars carry the overwrite option so they take precedence
	// over values already decoded from the TOML file

	Host string `toml:"host" env:"VITALIS_HOST, overwrite"`
	Port int    `toml:"port" env:"VITALIS_PORT, overwrite"`

	// logging
	LogLevel    string `toml:"log_level" env:"VITALIS_LOG_LEVEL, overwrite"`
	LogsPath    string `toml:"logs_path" env:"VITALIS_LOGS_PATH, overwrite"`
	LogToStdout bool   `toml:"log_to_stdout" env:"VITALIS_LOG_TO_STDOUT, overwrite"`

	SentryEnabled bool `toml:"sentry_enabled" env:"VITALIS_SENTRY_ENABLED, overwrite"`

	// postgres
	PostgresHost   string `toml:"postgres_host" env:"VITALIS_POSTGRES_HOST, overwrite"`
	PostgresPort   string `toml:"postgres_port" env:"VITALIS_POSTGRES_PORT, overwrite"`
	PostgresDBName string `toml:"postgres_db_name" env:"VITALIS_POSTGRES_DB_NAME, overwrite"`

	// redis
	RedisHost string `toml:"redis_host" env:"VITALIS_REDIS_HOST, overwrite"`
	RedisPort string `toml:"redis_port" env:"VITALIS_REDIS_PORT, overwrite"`

	// prometheus metrics listener
	PrometheusMetricsHost string `toml:"prometheus_metrics_host" env:"VITALIS_PROM_METRICS_HOST, overwrite"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port" env:"VITALIS_PROM_METRICS_PORT, overwrite"`

	// rate limiting for mutation endpoints (add/update/delete/duplicate)
	MutationsRateLimitAllowedPerMin int `toml:"mutations_rate_limit_allowed_per_min" env:"VITALIS_MUTATIONS_RATE_LIMIT_PER_MIN, overwrite"`

	// SeedOnEmpty makes the server insert the embedded plan datasets
	// into the database when the tables are empty
	SeedOnEmpty bool `toml:"seed_on_empty" env:"VITALIS_SEED_ON_EMPTY, overwrite"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML config for the given environment,
// then applies environment variable overrides on top of it.
func Load(env, configPath string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(configPath, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode toml config: %w", err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section missing for env: %s", env)
	}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("process env overrides: %w", err)
	}

	cfg.Environment = env
	return cfg, nil
}
