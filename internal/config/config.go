package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	AuthURL      string
	CORSOrigins  []string
	KafkaBrokers []string
	SwaggerHost  string
}

// Load builds Config from environment with sensible defaults. A .env
// file in the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		MySQLDSN:     getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/storefront?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		AuthURL:      getEnv("AUTH_PROVIDER_URL", "https://demobackend.emergentagent.com/auth/v1/env/oauth/session-data"),
		CORSOrigins:  getEnvList("CORS_ORIGINS", "*"),
		KafkaBrokers: getEnvList("KAFKA_BROKERS", ""),
		SwaggerHost:  os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key, def string) []string {
	raw := getEnv(key, def)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
