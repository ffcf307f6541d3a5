package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	RedisHost       string
	RedisPort       string
	SessionSecret   string
	GinMode         string
	OpenAIAPIKey    string
	CalendarBaseURL string
	CalendarAPIKey  string
}

func Load() *Config {
	// Optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	return &Config{
		DBDriver:        getEnv("DB_DRIVER", "mysql"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnv("DB_USER", "hearth"),
		DBPassword:      getEnv("DB_PASSWORD", "hearthpassword"),
		DBName:          getEnv("DB_NAME", "hearth"),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		SessionSecret:   getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		CalendarBaseURL: getEnv("CALENDAR_BASE_URL", ""),
		CalendarAPIKey:  getEnv("CALENDAR_API_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
