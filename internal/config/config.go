package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTPAddr        string        `yaml:"http-addr" env:"ARCADE_HTTP_ADDR" env-default:":8080" env-description:"address the HTTP server listens on"`
	LogLevel        string        `yaml:"log-level" env:"ARCADE_LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"ARCADE_SHUTDOWN_TIMEOUT" env-default:"5s" env-description:"time allowed for in-flight requests on shutdown"`
	Router          Router        `yaml:"router"`
	Redis           Redis         `yaml:"redis"`
}

type Router struct {
	Base          string `yaml:"base" env:"ARCADE_BASE" env-default:"/" env-description:"path prefix the games are served under"`
	Host          string `yaml:"host" env:"ARCADE_HOST" env-default:"app" env-description:"id of the page element views render into"`
	CaseSensitive bool   `yaml:"case-sensitive" env:"ARCADE_CASE_SENSITIVE" env-default:"false" env-description:"match path literals case-sensitively"`
	Strict        bool   `yaml:"strict" env:"ARCADE_STRICT" env-default:"false" env-description:"do not ignore a trailing slash"`
}

// Redis is optional. Visit counts are kept in memory when Addr is empty.
type Redis struct {
	Addr     string `yaml:"addr" env:"ARCADE_REDIS_ADDR" env-description:"redis address for visit counts, empty keeps them in memory"`
	Password string `yaml:"password" env:"ARCADE_REDIS_PASSWORD" env-description:"redis password"`
	DB       int    `yaml:"db" env:"ARCADE_REDIS_DB" env-default:"0" env-description:"redis database number"`
}

// Load reads the YAML file at path and applies ARCADE_* environment
// variables on top. With an empty path only the environment is read.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("read config from env: %w", err)
		}
	} else {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// MustLoad - load the configuration or panic.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}
	return cfg
}

func (c *Config) validate() error {
	var errs []error
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http-addr is empty"))
	}
	if c.Router.Host == "" {
		errs = append(errs, errors.New("router.host is empty"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown-timeout must be positive, got %s", c.ShutdownTimeout))
	}
	return errors.Join(errs...)
}

// Usage describes the environment variables understood by Load.
func Usage() string {
	header := "Environment variables:"
	text, err := cleanenv.GetDescription(&Config{}, &header)
	if err != nil {
		return ""
	}
	return text
}
