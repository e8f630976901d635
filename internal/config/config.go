package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"movielists/pkg/session"
)

const (
	StoreMySQL = "mysql"
	StoreRedis = "redis"
)

type Config struct {
	HTTPAddr      string
	LogLevel      string
	JWTSecret     string
	MongoURI      string
	MongoDB       string
	SessionStore  string
	SessionTTL    time.Duration
	MySQLDSN      string
	RedisAddr     string
	RedisPassword string
}

// Load reads the env file named by START (default .env) and validates the
// result. A missing file is fine when the variables are already exported.
func Load() (*Config, error) {
	envFile := os.Getenv("START")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDB:       os.Getenv("MONGO_DB_NAME"),
		SessionStore:  getEnv("SESSION_STORE", StoreMySQL),
		SessionTTL:    session.DefaultTTL,
		MySQLDSN:      os.Getenv("MYSQL_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("SESSION_TTL %q is not a positive duration", raw)
		}
		cfg.SessionTTL = ttl
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set in environment")
	}
	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI is not set in environment")
	}
	if cfg.MongoDB == "" {
		return nil, errors.New("MONGO_DB_NAME is not set in environment")
	}

	switch cfg.SessionStore {
	case StoreMySQL:
		if cfg.MySQLDSN == "" {
			return nil, errors.New("MYSQL_DSN is not set in environment")
		}
	case StoreRedis:
		if cfg.RedisAddr == "" {
			return nil, errors.New("REDIS_ADDR is not set in environment")
		}
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
