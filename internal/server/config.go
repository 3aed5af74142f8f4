// Package server implements the calendar REST API: a thin validation and
// pass-through layer over a single assessments table.
package server

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the server's environment-derived settings.
type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

// LoadDotEnv loads .env files with priority: .env.local > .env.
// godotenv.Load does NOT overwrite already-set env vars, so OS env vars
// always win. Returns the list of files actually loaded.
func LoadDotEnv() []string {
	candidates := []string{".env.local", ".env"}
	var loaded []string
	for _, f := range candidates {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}

// LoadConfig reads the configuration from environment variables, applying
// the defaults the original deployment used.
func LoadConfig() Config {
	return Config{
		Port:       getenv("PORT", "3000"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "3306"),
		DBUser:     getenv("DB_USER", "root"),
		DBPassword: getenv("DB_PASSWORD", ""),
		DBName:     getenv("DB_NAME", "calendarapp"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
