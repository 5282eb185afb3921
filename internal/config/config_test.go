package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/cleanup-weather/internal/weather"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.data.gov.sg/v1/environment", cfg.BaseURL)
	assert.Equal(t, weather.PreferredStations{"S50", "S43", "S109", "S24", "S116"}, cfg.PreferredStations)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 0, cfg.FetchMaxRetries)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, weather.DefaultThresholds(), cfg.Thresholds)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("PREFERRED_STATIONS", " S24 , ,S50")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("SUIT_MAX_TEMPERATURE", "33.5")
	t.Setenv("LOG_FORMAT", "TEXT")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, weather.PreferredStations{"S24", "S50"}, cfg.PreferredStations)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 33.5, cfg.Thresholds.MaxTemperature)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string][2]string{
		"bad url":         {"WEATHER_BASE_URL", "not a url"},
		"bad duration":    {"FETCH_TIMEOUT", "soon"},
		"bad threshold":   {"SUIT_MAX_UV", "high"},
		"inverted bounds": {"SUIT_MIN_TEMPERATURE", "40"},
		"bad log level":   {"LOG_LEVEL", "loud"},
		"bad timezone":    {"TIMEZONE", "Mars/Olympus"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("TIMEZONE", "UTC")
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	// Registers restore-on-cleanup, then leaves the variable unset for godotenv.
	t.Setenv("LOCATION_LABEL", "")
	require.NoError(t, os.Unsetenv("LOCATION_LABEL"))
	t.Setenv("PORT", "9090")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOCATION_LABEL=Pasir Ris\nPORT=7070\n"), 0o600))

	require.NoError(t, LoadDotEnv(path))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Pasir Ris", cfg.LocationLabel)
	assert.Equal(t, "9090", cfg.Port, "process environment wins over .env")
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)

	t.Setenv("TIMEZONE", "UTC")
	_, err = Load()
	assert.NoError(t, err)
}
