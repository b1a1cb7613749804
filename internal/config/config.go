// Package config предоставляет структуры и функции для загрузки конфига
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Драйверы хранилища.
const (
	DriverPostgres = "postgres"
	DriverMongoDB  = "mongodb"
	DriverMemory   = "memory"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	Storage         `yaml:"storage"`
	RedisConnection `yaml:"redis_connection"`
	RabbitMQ        `yaml:"rabbitmq"`
	JWTToken        `yaml:"jwttoken"`
	RateLimit       `yaml:"rate_limit"`
	Maintenance     `yaml:"maintenance"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Storage структура для выбора и настройки хранилища
type Storage struct {
	Driver         string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
	PostgresDSN    string `yaml:"postgres_dsn" env:"POSTGRES_DSN"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	MongoURI       string `yaml:"mongo_uri" env:"MONGODB_URI"`
	MongoDatabase  string `yaml:"mongo_database" env:"MONGODB_DB_NAME" env-default:"asset_maintenance"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кеш.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// RabbitMQ структура для настройки публикации событий.
// Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env-default:"equipment"`
	Retries    int           `yaml:"retries" env-default:"3"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// JWTToken структура для работы с jwt-токеном.
// Пустой ключ отключает проверку токена.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// RateLimit структура для ограничения частоты запросов
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"10"`
	Burst int     `yaml:"burst" env-default:"20"`
}

// Maintenance структура для настроек расчёта обслуживания
type Maintenance struct {
	AtRiskLimit int           `yaml:"at_risk_limit" env-default:"6"`
	Timezone    string        `yaml:"timezone" env:"TIMEZONE" env-default:"UTC"`
	CacheTTL    time.Duration `yaml:"cache_ttl" env-default:"5m"`
}

// Load читает .env (если он есть) и конфиг по пути path.
func Load(envFile, path string) (*Config, error) {
	const op = "config.Load"
	if err := loadDotEnv(envFile); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		return nil, fmt.Errorf("%s: CONFIG_PATH is not set", op)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file: %s - does not exist", op, path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: cannot read config: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига; путь берётся из CONFIG_PATH,
// который может быть задан в .env.
func MustLoad() *Config {
	cfg, err := Load(".env", "")
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func loadDotEnv(envFile string) error {
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed loading env file %s: %w", envFile, err)
	}
	return nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("storage.postgres_dsn must be provided for postgres driver")
		}
	case DriverMongoDB:
		if c.MongoURI == "" {
			return errors.New("storage.mongo_uri must be provided for mongodb driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Driver)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location возвращает часовой пояс для определения текущей даты.
func (m Maintenance) Location() *time.Location {
	loc, err := time.LoadLocation(m.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
