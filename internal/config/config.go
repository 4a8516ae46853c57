package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/json_types"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Europe/Paris"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Storage struct {
		// memory — локальный вариант, postgres — внешняя БД
		Backend     string `env:"STORAGE_BACKEND" envDefault:"memory"`
		PostgresDSN string `env:"POSTGRES_DSN"`
	}

	Calendar struct {
		Path string `env:"CALENDAR_CONFIG_PATH" envDefault:"configs/calendar.json"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"cabinet_admin:cabinet_admin"`
		BasicClients       []ConfigBasicClient
	}

	Notifier struct {
		Enabled bool   `env:"NOTIFIER_ENABLED"`
		AmqpURI string `env:"NOTIFIER_AMQP_URI"`
		Queue   string `env:"NOTIFIER_QUEUE" envDefault:"appointment.notifications"`
	}

	Cache struct {
		Enabled  bool `env:"CACHE_ENABLED"`
		DaysSize int  `env:"CACHE_DAYS_SIZE" envDefault:"366"`
	}

	// Location — загруженная таймзона кабинета
	Location *time.Location
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.App.Timezone, err)
	}
	cfg.Location = loc
	// Таймзона кабинета используется всеми JSON-датами
	json_types.Location = loc

	// Разбор клиентов basic-авторизации админских маршрутов
	if cfg.Auth.BasicClients == nil {
		cfg.Auth.BasicClients = []ConfigBasicClient{}
	}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	if cfg.Storage.Backend == "postgres" && cfg.Storage.PostgresDSN == "" {
		return nil, fmt.Errorf("postgres backend selected but POSTGRES_DSN is empty")
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
