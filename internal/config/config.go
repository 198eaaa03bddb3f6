package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Port int    `json:"port"`
	Host string `json:"host"`

	// Database configuration
	DBDriver  string `json:"db_driver"`
	DBHost    string `json:"db_host"`
	DBPort    string `json:"db_port"`
	DBName    string `json:"db_name"`
	DBSSLMode string `json:"db_ssl_mode"`
	DBPath    string `json:"db_path"`

	// Separate read/write role credentials. The writer role is required,
	// the reader role is optional and only used on postgres.
	DBWriterUser     string `json:"db_writer_user"`
	DBWriterPassword string `json:"db_writer_password"`
	DBReaderUser     string `json:"db_reader_user"`
	DBReaderPassword string `json:"db_reader_password"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security Configuration
	SessionSecret string `json:"session_secret"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, DBDriver: %s, DBHost: %s, DBPort: %s, DBName: %s, DBPath: %s, DBWriterUser: %s, DBWriterPassword: [REDACTED], DBReaderUser: %s, DBReaderPassword: [REDACTED], LogLevel: %s, SessionSecret: [REDACTED]}",
		c.Port, c.Host, c.DBDriver, c.DBHost, c.DBPort, c.DBName, c.DBPath, c.DBWriterUser, c.DBReaderUser, c.LogLevel)
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// Returns an error if any required environment variable is missing or invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, err
	}

	sessionSecret := GetEnvWithDefault("SESSION_SECRET", "")
	if sessionSecret == "" {
		return nil, errors.New("SESSION_SECRET environment variable is required")
	}

	config := &Config{
		Port:             port,
		Host:             GetEnvWithDefault("APP_HOST", "localhost"),
		DBDriver:         GetEnvWithDefault("DB_DRIVER", "sqlite"),
		DBHost:           GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:           GetEnvWithDefault("DB_PORT", "5432"),
		DBName:           GetEnvWithDefault("DB_NAME", "pizzeria"),
		DBSSLMode:        GetEnvWithDefault("DB_SSLMODE", "disable"),
		DBPath:           GetEnvWithDefault("DB_PATH", "pizzeria.sqlite"),
		DBWriterUser:     GetEnvWithDefault("DB_WRITER_USER", "writer"),
		DBWriterPassword: GetEnvWithDefault("DB_WRITER_PASSWORD", ""),
		DBReaderUser:     GetEnvWithDefault("DB_READER_USER", ""),
		DBReaderPassword: GetEnvWithDefault("DB_READER_PASSWORD", ""),
		LogLevel:         GetEnvWithDefault("LOG_LEVEL", "info"),
		SessionSecret:    sessionSecret,
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Warnf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
