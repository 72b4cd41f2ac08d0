package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	Port        string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	IdentityAPIKey         string
	IdentityBaseURL        string
	IdentityTokenURL       string
	IdentityTimeoutSeconds int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Env:         getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		IdentityAPIKey:         os.Getenv("IDENTITY_API_KEY"),
		IdentityBaseURL:        os.Getenv("IDENTITY_BASE_URL"),
		IdentityTokenURL:       os.Getenv("IDENTITY_TOKEN_URL"),
		IdentityTimeoutSeconds: getEnvInt("IDENTITY_TIMEOUT_SECONDS", 15),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
