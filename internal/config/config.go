// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Project ProjectConfig
}

type ServerConfig struct {
	Port int
}

type StorageConfig struct {
	// DSN is the SQLite data source. Empty selects the in-memory store.
	DSN string
}

type ProjectConfig struct {
	// Name is used when the store holds no project yet.
	Name string
	// BusBuffer sizes the event bus channel.
	BusBuffer int
}

// Load reads configuration from the environment. A .env file is honored
// when present and silently skipped otherwise.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvAsInt("PORT", 8080),
		},
		Storage: StorageConfig{
			DSN: getEnv("DATABASE_URL", "file:modelsync.db"),
		},
		Project: ProjectConfig{
			Name:      getEnv("PROJECT_NAME", "Untitled Project"),
			BusBuffer: getEnvAsInt("BUS_BUFFER", 256),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Project.BusBuffer < 1 {
		return fmt.Errorf("BUS_BUFFER must be positive, got %d", c.Project.BusBuffer)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}
