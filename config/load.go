package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the environment, after merging an optional .env file. Variables
// already set in the process environment win over the file.
func Load() App {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("dotenv load failed", "err", err)
	}

	cfg := App{
		Port:            getenv("APP_PORT", "8080"),
		LibraryAPIURL:   strings.TrimRight(getenv("LIBRARY_API_URL", "http://localhost:8000/api"), "/"),
		SessionSecret:   getenv("SESSION_SECRET", "local_dev_secret"),
		SessionTTLHours: getint("SESSION_TTL_HOURS", 0),
		HTTPTimeout:     time.Duration(getint("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		RateLimitRPS:    getfloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:  getint("RATE_LIMIT_BURST", 40),
		AllowedOrigins:  getlist("ALLOWED_ORIGINS"),
		Env:             getenv("APP_ENV", "dev"),
	}
	if cfg.Env == "production" && cfg.SessionSecret == "local_dev_secret" {
		must("SESSION_SECRET")
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid int env, using default", "key", k, "value", v, "default", def)
		return def
	}
	return n
}

func getfloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("invalid float env, using default", "key", k, "value", v, "default", def)
		return def
	}
	return f
}

func getlist(k string) []string {
	var out []string
	for _, p := range strings.Split(os.Getenv(k), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
