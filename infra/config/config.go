package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type App struct {
	Port          string
	RedisAddr     string
	KafkaBrokers  []string
	KafkaTopic    string
	LokiURL       string
	LogLevel      string
	JWTSecret     string
	TokenTTLHours int
	Env           string
}

// Load reads an optional .env file and then the process environment.
func Load() App {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}
	return App{
		Port:          getenv("PORT", "3134"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:    getenv("KAFKA_TOPIC", "reservations"),
		LokiURL:       os.Getenv("LOKI_URL"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		JWTSecret:     getenv("JWT_SECRET", "local_dev_secret"),
		TokenTTLHours: getint("TOKEN_TTL_HOURS", 24),
		Env:           getenv("APP_ENV", "dev"),
	}
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if s := os.Getenv(k); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
		slog.Warn("ignoring invalid integer env", "key", k, "value", s)
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
