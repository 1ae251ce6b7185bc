package config

import "time"

type App struct {
	Port            string        `env:"APP_PORT" default:"8080"`
	LibraryAPIURL   string        `env:"LIBRARY_API_URL" default:"http://localhost:8000/api"`
	SessionSecret   string        `env:"SESSION_SECRET" default:"local_dev_secret"`
	SessionTTLHours int           `env:"SESSION_TTL_HOURS" default:"0"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT_SECONDS" default:"10"`
	RateLimitRPS    float64       `env:"RATE_LIMIT_RPS" default:"20"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST" default:"40"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS"`
	Env             string        `env:"APP_ENV" default:"dev"`
}
