package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvTest        = "test"
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type DatabaseConfig struct {
	Driver string
	DSN    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CacheTTL holds the four expiry tiers used by the read-through caches.
type CacheTTL struct {
	Short    time.Duration
	Default  time.Duration
	Long     time.Duration
	VeryLong time.Duration
}

type Config struct {
	Env           string
	Port          string
	Database      DatabaseConfig
	Redis         RedisConfig
	JWTSecret     string
	JWTExpiry     time.Duration
	CacheTTL      CacheTTL
	RateLimits    map[string]RateRule
	MapboxKey     string
	CloudinaryURL string
}

// LoadEnv reads a .env file when one is present. A missing file is not an error,
// the process environment is used as is.
func LoadEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load()
}

// Load builds the application configuration from the environment.
func Load() Config {
	env := getEnv("APP_ENV", EnvDevelopment)

	cfg := Config{
		Env:  env,
		Port: getEnv("PORT", "8083"),
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", "postgres"),
			DSN:    getEnv("DB_DSN", "host=localhost user=postgres password=postgres dbname=restaurants port=5432 sslmode=disable"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWTSecret: getEnv("JWT_SECRET", "change-me"),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRES_MINUTES", 60*24)) * time.Minute,
		CacheTTL: CacheTTL{
			Short:    time.Duration(getEnvInt("CACHE_TTL_SHORT", 60)) * time.Second,
			Default:  time.Duration(getEnvInt("CACHE_TTL_DEFAULT", 300)) * time.Second,
			Long:     time.Duration(getEnvInt("CACHE_TTL_LONG", 600)) * time.Second,
			VeryLong: time.Duration(getEnvInt("CACHE_TTL_VERY_LONG", 3600)) * time.Second,
		},
		RateLimits:    RateLimitsFor(env),
		MapboxKey:     os.Getenv("MAPBOX_KEY"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
	}

	if cfg.JWTSecret == "change-me" && env == EnvProduction {
		log.Println("[CONFIG] JWT_SECRET is not set, using the built-in default")
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[CONFIG] invalid integer for %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return parsed
}
