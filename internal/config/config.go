package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	SessionSecret string
	GinMode       string
	ServerPort    string
	LogLevel      string
	OpenAIAPIKey  string

	// Allocation run settings. AllocationLockTTL bounds how long a crashed
	// holder blocks runs; a live holder renews it every third of the TTL.
	AllocationLock           string
	AllocationLockTTL        time.Duration
	AllocationDeductCapacity bool
}

// Load reads configuration from the environment. In debug mode a local .env
// file is read first so developers don't have to export every variable.
func Load() *Config {
	if getEnv("GIN_MODE", "debug") == "debug" {
		_ = godotenv.Load()
	}

	return &Config{
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "allocuser"),
		DBPassword:    getEnv("DB_PASSWORD", "allocpassword"),
		DBName:        getEnv("DB_NAME", "intern_allocation"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", ""),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),

		AllocationLock:           getEnv("ALLOCATION_LOCK", "local"),
		AllocationLockTTL:        getDuration("ALLOCATION_LOCK_TTL", 2*time.Minute),
		AllocationDeductCapacity: getBool("ALLOCATION_DEDUCT_CAPACITY", false),
	}
}

// RedisAddr returns host:port of the Redis server
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
