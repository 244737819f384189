package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Location is the calendar used for day boundaries in statistics and filters.
	Location *time.Location

	PurchaseDelay time.Duration

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	LogDebug bool
	LogFile  string
}

// Load reads the environment, after merging an optional .env file found at path
// (ignored when missing).
func Load(path string) (*Config, error) {
	_ = godotenv.Load(path)

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         os.Getenv("DB_NAME"),
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3BaseEndpoint: os.Getenv("S3_BASE_ENDPOINT"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		LogFile:        os.Getenv("LOG_FILE"),
	}

	var err error

	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("config: invalid REDIS_DB: %w", err)
	}

	if cfg.LogDebug, err = strconv.ParseBool(getEnv("LOG_DEBUG", "false")); err != nil {
		return nil, fmt.Errorf("config: invalid LOG_DEBUG: %w", err)
	}

	if cfg.PurchaseDelay, err = time.ParseDuration(getEnv("PURCHASE_DELAY", "1500ms")); err != nil {
		return nil, fmt.Errorf("config: invalid PURCHASE_DELAY: %w", err)
	}

	if cfg.Location, err = time.LoadLocation(getEnv("TZ_NAME", "Local")); err != nil {
		return nil, fmt.Errorf("config: invalid TZ_NAME: %w", err)
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
