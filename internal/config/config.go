package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Parse modes for the response interpreter
const (
	ParseLenient = "lenient"
	ParseStrict  = "strict"
)

// Config is the full runtime configuration of the server
type Config struct {
	HTTPPort      string
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	CacheTTL      time.Duration
	ParseMode     string
	AdminUsername string
	AdminPassword string
	JWTSecret     string

	AI    *AIConfig
	Retry *RetryConfig
}

// Load reads configuration from the environment, after loading a .env file if present
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	parseMode := strings.ToLower(getEnvOrDefault("PARSE_MODE", ParseLenient))
	if parseMode != ParseStrict {
		parseMode = ParseLenient
	}

	return &Config{
		HTTPPort:      getEnvOrDefault("PORT", "8080"),
		MongoURI:      getEnvOrDefault("MONGO_URI", ""),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "peacemaker"),
		RedisAddr:     normalizeRedisAddr(getEnvOrDefault("REDIS_URI", "")),
		CacheTTL:      time.Duration(getEnvInt("CACHE_TTL_MINUTES", 60)) * time.Minute,
		ParseMode:     parseMode,
		AdminUsername: getEnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnvOrDefault("ADMIN_PASSWORD", "password123"),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", "super-secret-key-change-in-production"),
		AI:            DefaultAIConfig(),
		Retry:         DefaultRetryConfig(),
	}
}

// HistoryEnabled reports whether analyses are persisted to MongoDB
func (c *Config) HistoryEnabled() bool {
	return c.MongoURI != ""
}

// CacheEnabled reports whether results are cached in Redis
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// Remove redis:// prefix if present
func normalizeRedisAddr(addr string) string {
	return strings.TrimPrefix(strings.TrimSpace(addr), "redis://")
}
