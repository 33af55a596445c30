package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Server struct {
		Port    string
		GinMode string
	}

	Storage struct {
		Type string
	}

	Auth struct {
		JWTSecret string
		TokenTTL  time.Duration
		// BootstrapAdmin is an email granted admin on every project.
		// Deployment configuration, not part of the role model.
		BootstrapAdmin string
	}

	Minio MinioConfig

	Gemini struct {
		APIKey string
	}

	Import struct {
		// SheetBaseURL is the CSV export endpoint of the spreadsheet
		// integration. Empty disables the import feature.
		SheetBaseURL string
		Timeout      time.Duration
	}

	CORS struct {
		AllowOrigins string
		AllowMethods string
		AllowHeaders string
	}
}

// MinioConfig holds the object storage connection settings
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Load loads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.DB.Host = getEnv("DB_HOST", "localhost")
	config.DB.Port = getEnv("DB_PORT", "5432")
	config.DB.User = getEnv("DB_USER", "roots")
	config.DB.Password = getEnv("DB_PASSWORD", "roots_password")
	config.DB.Name = getEnv("DB_NAME", "roots_db")
	config.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	config.Server.Port = getEnv("PORT", "8080")
	config.Server.GinMode = getEnv("GIN_MODE", "debug")

	config.Storage.Type = getEnv("STORAGE_TYPE", "postgres")

	config.Auth.JWTSecret = getEnv("JWT_SECRET", "")
	config.Auth.TokenTTL = getEnvAsDuration("JWT_TOKEN_TTL", 24*time.Hour)
	config.Auth.BootstrapAdmin = getEnv("BOOTSTRAP_ADMIN_EMAIL", "")

	config.Minio.Endpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	config.Minio.AccessKey = getEnv("MINIO_ACCESS_KEY", "")
	config.Minio.SecretKey = getEnv("MINIO_SECRET_KEY", "")
	config.Minio.Bucket = getEnv("MINIO_BUCKET", "roots-receipts")
	config.Minio.UseSSL = getEnvAsBool("MINIO_USE_SSL", false)

	config.Gemini.APIKey = getEnv("GEMINI_API_KEY", "")

	config.Import.SheetBaseURL = getEnv("IMPORT_SHEET_BASE_URL", "")
	config.Import.Timeout = getEnvAsDuration("IMPORT_HTTP_TIMEOUT", 30*time.Second)

	config.CORS.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", "*")
	config.CORS.AllowMethods = getEnv("CORS_ALLOW_METHODS", "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS")
	config.CORS.AllowHeaders = getEnv("CORS_ALLOW_HEADERS", "Origin,Content-Length,Content-Type,Authorization")

	return config
}

// GetDatabaseURL returns the database connection URL
func (c *Config) GetDatabaseURL() string {
	return "postgres://" + c.DB.User + ":" + c.DB.Password + "@" + c.DB.Host + ":" + c.DB.Port + "/" + c.DB.Name + "?sslmode=" + c.DB.SSLMode
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
