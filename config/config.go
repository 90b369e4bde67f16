// Package config reads process settings from the environment, after loading
// an optional .env file.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-default-secret-key-change-in-production"

type Config struct {
	Port           string
	DBPath         string
	JWTSecret      string
	APIBaseURL     string
	RequestTimeout time.Duration

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	CORSAllowedOrigins []string
}

// Load reads envFile into the environment (a missing file is fine, and
// variables already set win) and then builds the Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("load %s: %w", envFile, err)
			}
			log.Printf("No %s file found, using environment variables", envFile)
		}
	}
	return FromEnv()
}

// FromEnv builds the Config from the current environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:          getenv("PORT", "3001"),
		DBPath:        getenv("DB_PATH", "./godolist.db"),
		JWTSecret:     getenv("JWT_SECRET", defaultJWTSecret),
		APIBaseURL:    getenv("API_BASE_URL", "http://localhost:3001"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getenv("OPENAI_MODEL", "gpt-4o-mini"),
	}

	timeout, err := time.ParseDuration(getenv("REQUEST_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("parse REQUEST_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = timeout

	for _, origin := range strings.Split(getenv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.JWTSecret == defaultJWTSecret {
		log.Println("Warning: JWT_SECRET is not set, using the development default")
	}
	return cfg, nil
}

// AssistantEnabled reports whether chat messages get an assistant reply.
func (c *Config) AssistantEnabled() bool {
	return c.OpenAIAPIKey != ""
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
