package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the optional collaborator settings loaded from the
// environment. Empty values disable the matching integration.
type Config struct {
	BotToken string
	ChatID   int64

	DatabaseDSN string
	RedisAddr   string
	KafkaBroker string
	KafkaTopic  string

	DefaultCurrency string
}

// Load reads the .env file (if present) and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Env file is not found")
	}

	return &Config{
		BotToken:        getEnv("BOT_TOKEN", ""),
		ChatID:          getEnvInt64("CHAT_ID", 0),
		DatabaseDSN:     getEnv("DATABASE_DSN", ""),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:     getEnv("KAFKA_BROKER", ""),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "zonaprop-events"),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "ARS"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.ParseInt(val, 10, 64)
		if err == nil {
			return n
		}
		log.Printf("Invalid value for %s: %q, using default", key, val)
	}
	return fallback
}
