package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

// TimeZone - гражданская таймзона учебного заведения
// Все "наивные" даты и времена интерпретируются в ней
var TimeZone *time.Location

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"America/New_York"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"vtcalapp:vtcalapp"`
		BasicClients       []ConfigBasicClient
	}

	Timetable struct {
		URL  string `env:"TIMETABLE_URL"`
		Term string `env:"TIMETABLE_TERM" envDefault:"202509"`
	}

	Calendar struct {
		URL             string `env:"CALDAV_URL"`
		Username        string `env:"CALDAV_USERNAME"`
		Password        string `env:"CALDAV_PASSWORD"`
		Path            string `env:"CALDAV_CALENDAR_PATH"`
		ReminderMinutes int    `env:"REMINDER_MINUTES" envDefault:"15"`
	}

	Ocr struct {
		TesseractBin string `env:"TESSERACT_BIN" envDefault:"tesseract"`
		Psm          string `env:"TESSERACT_PSM" envDefault:"6"`
		Languages    string `env:"TESSERACT_LANGUAGES" envDefault:"eng"`
	}

	Semester struct {
		EndString string `env:"SEMESTER_END" envDefault:"2025-12-14T23:59:59Z"`
		End       time.Time
	}

	Resolver struct {
		Workers int `env:"RESOLVER_WORKERS" envDefault:"4"`
	}

	RabbitMq struct {
		Enabled     bool   `env:"RABBITMQ_ENABLED"`
		AmqpUri     string `env:"RABBITMQ_URL"`
		QueueConfig struct {
			EventsQueueName     string `env:"RABBITMQ_EVENTS_QUEUE" envDefault:"vtcalapp.events"`
			EventsQueueBind     string `env:"RABBITMQ_EVENTS_QUEUE_BIND" envDefault:"vtcalapp.events.submit"`
			EventsQueueExchange string `env:"RABBITMQ_EVENTS_QUEUE_EXCHANGE" envDefault:"amq.topic"`
		}
	}

	Cache struct {
		Enabled      bool `env:"CACHE_ENABLED"`
		SectionsSize int  `env:"CACHE_SECTIONS_SIZE" envDefault:"1000"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	// Загрузка таймзоны учебного заведения
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.App.Timezone, err)
	}
	TimeZone = loc

	// Конец семестра задается конфигурацией, а не константой в коде
	semesterEnd, err := time.Parse(time.RFC3339, cfg.Semester.EndString)
	if err != nil {
		return nil, fmt.Errorf("invalid SEMESTER_END %q: %w", cfg.Semester.EndString, err)
	}
	cfg.Semester.End = semesterEnd.UTC()

	// Разделение клиентов basic-авторизации
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

	if cfg.Resolver.Workers < 1 {
		cfg.Resolver.Workers = 1
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
