package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/cleanup-weather/internal/weather"
)

type AppConfig struct {
	// BaseURL is the root of the upstream environment API.
	BaseURL string `validate:"required,url"`

	// Preferred stations, highest priority first.
	PreferredStations weather.PreferredStations `validate:"min=1,dive,required"`

	LocationLabel string         `validate:"required"`
	Location      *time.Location `validate:"required"`

	// FetchTimeout bounds each upstream request.
	FetchTimeout time.Duration `validate:"gt=0"`
	// FetchMaxRetries of 0 means each cycle attempts once and falls back.
	FetchMaxRetries int `validate:"gte=0,lte=5"`

	// RefreshInterval controls how often the scheduler reloads weather.
	RefreshInterval time.Duration `validate:"gt=0"`

	Thresholds weather.Thresholds

	LogLevel  string `validate:"oneof=trace debug info warn warning error"`
	LogFormat string `validate:"oneof=json text"`

	Port string `validate:"required,numeric"`
}

var validate = validator.New()

// LoadDotEnv copies variables from .env files (default ".env") into the
// environment without overriding ones already set. A missing file is an error
// the caller may choose to ignore.
func LoadDotEnv(filenames ...string) error {
	return godotenv.Load(filenames...)
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.BaseURL = getenvDefault("WEATHER_BASE_URL", "https://api.data.gov.sg/v1/environment")
	cfg.PreferredStations = getenvList("PREFERRED_STATIONS", []string{"S50", "S43", "S109", "S24", "S116"})
	cfg.LocationLabel = getenvDefault("LOCATION_LABEL", "Singapore")

	tz := getenvDefault("TIMEZONE", "Asia/Singapore")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	if cfg.FetchTimeout, err = getenvDuration("FETCH_TIMEOUT", weather.DefaultFetchTimeout); err != nil {
		return nil, err
	}
	cfg.FetchMaxRetries = getenvInt("FETCH_MAX_RETRIES", 0)

	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}

	if cfg.Thresholds, err = loadThresholds(); err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))
	cfg.LogFormat = strings.ToLower(getenvDefault("LOG_FORMAT", "json"))
	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadThresholds() (weather.Thresholds, error) {
	th := weather.DefaultThresholds()

	fields := []struct {
		key string
		dst *float64
	}{
		{"SUIT_MAX_TEMPERATURE", &th.MaxTemperature},
		{"SUIT_MAX_UV", &th.MaxUV},
		{"SUIT_MAX_WIND", &th.MaxWind},
		{"SUIT_MIN_TEMPERATURE", &th.MinTemperature},
		{"SUIT_MAX_HUMIDITY", &th.MaxHumidity},
		{"SUIT_PERFECT_TEMP_LOW", &th.PerfectTempLow},
		{"SUIT_PERFECT_TEMP_HIGH", &th.PerfectTempHigh},
		{"SUIT_PERFECT_WIND_BELOW", &th.PerfectWindBelow},
		{"SUIT_PERFECT_HUMIDITY_BELOW", &th.PerfectHumidityBelow},
	}
	for _, f := range fields {
		v, err := getenvFloat(f.key, *f.dst)
		if err != nil {
			return th, err
		}
		*f.dst = v
	}
	return th, nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
