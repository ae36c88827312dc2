package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	DEFAULT_HTTP_ADDR        = ":8080"
	DEFAULT_SESSION_TTL      = 30 * time.Minute
	DEFAULT_MAX_UPLOAD_BYTES = 32 << 20
	DEFAULT_HF_TIMEOUT       = 60 * time.Second
	DEFAULT_HF_RPM           = 60
)

// Config is the process configuration read from the environment.
type Config struct {
	Env                 string
	HTTPAddr            string
	LogLevel            string
	SessionTTL          time.Duration
	MaxUploadBytes      int64
	ProfilePath         string
	HFSentimentEndpoint string
	HFHealthEndpoint    string
	HFRequestsPerMinute int
	HFTimeout           time.Duration
	ValkeyAddress       string
}

func Load() Config {
	return Config{
		Env:                 getEnv("APP_ENV", "dev"),
		HTTPAddr:            getEnv("HTTP_ADDR", DEFAULT_HTTP_ADDR),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		SessionTTL:          getDuration("SESSION_TTL", DEFAULT_SESSION_TTL),
		MaxUploadBytes:      int64(getInt("MAX_UPLOAD_BYTES", DEFAULT_MAX_UPLOAD_BYTES)),
		ProfilePath:         os.Getenv("PROFILE_PATH"),
		HFSentimentEndpoint: os.Getenv("HF_SENTIMENT_ENDPOINT"),
		HFHealthEndpoint:    os.Getenv("HF_HEALTH_ENDPOINT"),
		HFRequestsPerMinute: getInt("HF_REQUESTS_PER_MINUTE", DEFAULT_HF_RPM),
		HFTimeout:           getDuration("HF_TIMEOUT", DEFAULT_HF_TIMEOUT),
		ValkeyAddress:       os.Getenv("VALKEY_INIT_ADDRESS"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("[Config] Invalid integer, using default",
			slog.String("key", key),
			slog.String("value", raw))
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("[Config] Invalid duration, using default",
			slog.String("key", key),
			slog.String("value", raw))
		return fallback
	}
	return v
}
