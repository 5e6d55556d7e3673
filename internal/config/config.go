// Package config loads service settings from the environment and an
// optional .env file.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Env is "production" or anything else; production enables secure cookies.
	Env         string
	Port        string
	DatabaseURL string
	JWTSecret   string
	CookieName  string
	ClientURL   string
	// ATSServiceURL is the base URL of the resume parsing/scoring service.
	ATSServiceURL string
	// PrintBaseURL is how the headless browser reaches this server's
	// print view.
	PrintBaseURL  string
	ChromePath    string
	ExportTimeout time.Duration
	// SkillsTaxonomyFile overrides the embedded skill categories.
	SkillsTaxonomyFile string
	LogLevel           string
	LogFormat          string
}

func Load() *Config {
	// .env is optional outside local development
	_ = godotenv.Load()

	port := getEnv("PORT", "5000")
	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		Port:               port,
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		CookieName:         getEnv("COOKIE_NAME", "token"),
		ClientURL:          strings.TrimRight(getEnv("CLIENT_URL", "http://localhost:5173"), "/"),
		ATSServiceURL:      strings.TrimRight(getEnv("ATS_SERVICE_URL", "http://localhost:8000"), "/"),
		PrintBaseURL:       strings.TrimRight(getEnv("PRINT_BASE_URL", "http://localhost:"+port), "/"),
		ChromePath:         getEnv("CHROME_PATH", ""),
		ExportTimeout:      getEnvDuration("EXPORT_TIMEOUT", 60*time.Second),
		SkillsTaxonomyFile: getEnv("SKILLS_TAXONOMY_FILE", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("config: DATABASE_URL is missing, drafts and accounts are disabled")
	}
	if cfg.JWTSecret == "" {
		slog.Warn("config: JWT_SECRET is missing, sessions will not survive a restart")
	}
	return cfg
}

func (c *Config) Production() bool { return c.Env == "production" }

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n := getEnvInt(key, 0); n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}
