package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	API        API
	Storage    Storage
	Redis      Redis
	HTTPServer HTTPServer
}

type API struct {
	URL     string        `env:"API_URL" env-default:"https://api.freecurrencyapi.com/v1"`
	Key     string        `env:"API_KEY" env-required:"true"`
	Base    string        `env:"API_BASE_CURRENCY" env-default:"USD"`
	Timeout time.Duration `env:"API_TIMEOUT" env-default:"10s"`
}

type Storage struct {
	Timeout  time.Duration `env:"BD_TIMEOUT" env-default:"10s"`
	Host     string        `env:"BD_HOST" env-required:"true"`
	Port     int           `env:"BD_PORT" env-required:"true"`
	User     string        `env:"BD_USER" env-required:"true"`
	Password string        `env:"BD_PASSWORD" env-required:"true"`
	DBName   string        `env:"BD_DBNAME" env-required:"true"`
	SSLMode  string        `env:"BD_SSL_MODE" env-default:"disable"`
	Schema   string        `env:"BD_SCHEMA" env-default:"dev"`
}

type Redis struct {
	Host     string        `env:"REDIS_HOST" env-default:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD" env-default:""`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	RatesTTL time.Duration `env:"REDIS_RATES_TTL" env-default:"60s"`
}

type HTTPServer struct {
	Port        string        `env:"HTTP_PORT" env-default:"8082"`
	Timeout     time.Duration `env:"HTTP_TIMEOUT" env-default:"2m"`
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

func NewConfig() *Config {
	cfg := &Config{}

	_ = godotenv.Load(".env")

	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		log.Fatal("Error reading env")
	}

	return cfg
}

// NewAPIConfig reads only the rate source settings. Binaries that never touch
// postgres or redis use it, so they start with nothing but an API key set.
func NewAPIConfig() *Config {
	cfg := &Config{}

	_ = godotenv.Load(".env")

	err := cleanenv.ReadEnv(&cfg.API)
	if err != nil {
		log.Fatal("Error reading env")
	}

	return cfg
}
