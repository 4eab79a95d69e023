// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	// DatabaseURL selects postgres when set.
	DatabaseURL string
	// DBPath is the sqlite file used when DatabaseURL is empty.
	DBPath string

	Port            string
	GinMode         string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// Load reads the environment. Call godotenv.Load first to pick up a .env file.
func Load() (*Config, error) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "ctm.db"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	origins := []string{"*"}
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	timeout := 10 * time.Second
	if raw := os.Getenv("SHUTDOWN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", raw, err)
		}
		timeout = d
	}

	return &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DBPath:          dbPath,
		Port:            port,
		GinMode:         os.Getenv("GIN_MODE"),
		AllowedOrigins:  origins,
		ShutdownTimeout: timeout,
	}, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
