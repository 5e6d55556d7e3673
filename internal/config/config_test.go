package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "COOKIE_NAME", "EXPORT_TIMEOUT", "PRINT_BASE_URL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg := Load()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "token", cfg.CookieName)
	assert.Equal(t, "http://localhost:5000", cfg.PrintBaseURL)
	assert.Equal(t, 60*time.Second, cfg.ExportTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EXPORT_TIMEOUT", "15s")
	t.Setenv("ATS_SERVICE_URL", "http://ats:8000/")
	t.Setenv("PRINT_BASE_URL", "http://app:9090/")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.ExportTimeout)
	assert.Equal(t, "http://ats:8000", cfg.ATSServiceURL)
	assert.Equal(t, "http://app:9090", cfg.PrintBaseURL)
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("X_TIMEOUT", "90")
	assert.Equal(t, 90*time.Second, getEnvDuration("X_TIMEOUT", time.Second))

	t.Setenv("X_TIMEOUT", "soon")
	assert.Equal(t, time.Second, getEnvDuration("X_TIMEOUT", time.Second))
}

func TestLoad_Production(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	assert.True(t, Load().Production())

	t.Setenv("APP_ENV", "staging")
	assert.False(t, Load().Production())
}
