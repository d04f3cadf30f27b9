package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Telemetry TelemetryConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	Enabled bool
	Secret  string
}

type StorageConfig struct {
	Enabled       bool
	Bucket        string
	Region        string
	Endpoint      string // optional, for S3-compatible stores
	PresignExpiry int    // in seconds
}

type TelemetryConfig struct {
	Enabled   bool
	KeyPrefix string
	MaxRecent int // size cap of the recent-requests list
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerWindow int
	WindowSeconds     int
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("AUTH_ENABLED", false)
	viper.SetDefault("STORAGE_ENABLED", false)
	viper.SetDefault("STORAGE_REGION", "us-east-1")
	viper.SetDefault("STORAGE_PRESIGN_EXPIRY", 3600)
	viper.SetDefault("TELEMETRY_ENABLED", false)
	viper.SetDefault("TELEMETRY_KEY_PREFIX", "telemetry")
	viper.SetDefault("TELEMETRY_MAX_RECENT", 1000)
	viper.SetDefault("RATELIMIT_ENABLED", false)
	viper.SetDefault("RATELIMIT_REQUESTS", 100)
	viper.SetDefault("RATELIMIT_WINDOW_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Auth: AuthConfig{
			Enabled: viper.GetBool("AUTH_ENABLED"),
			Secret:  viper.GetString("AUTH_SECRET"),
		},
		Storage: StorageConfig{
			Enabled:       viper.GetBool("STORAGE_ENABLED"),
			Bucket:        viper.GetString("STORAGE_BUCKET"),
			Region:        viper.GetString("STORAGE_REGION"),
			Endpoint:      viper.GetString("STORAGE_ENDPOINT"),
			PresignExpiry: viper.GetInt("STORAGE_PRESIGN_EXPIRY"),
		},
		Telemetry: TelemetryConfig{
			Enabled:   viper.GetBool("TELEMETRY_ENABLED"),
			KeyPrefix: viper.GetString("TELEMETRY_KEY_PREFIX"),
			MaxRecent: viper.GetInt("TELEMETRY_MAX_RECENT"),
		},
		RateLimit: RateLimitConfig{
			Enabled:           viper.GetBool("RATELIMIT_ENABLED"),
			RequestsPerWindow: viper.GetInt("RATELIMIT_REQUESTS"),
			WindowSeconds:     viper.GetInt("RATELIMIT_WINDOW_SECONDS"),
		},
	}
}
