package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/i474232898/plant-weather/internal/weather"
)

type AppConfig struct {
	// OpenWeatherAPIKey is passed to the provider as-is; an empty key surfaces
	// as an authentication failure from OpenWeatherMap.
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	HTTPTimeout        time.Duration

	// FetchInterval controls how often watched locations are refreshed.
	FetchInterval time.Duration

	// Locations to watch.
	Locations []weather.Location

	// In-memory store retention.
	StoreMaxHistory int           // max number of snapshots per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	Port string

	// Agent runtime.
	GoogleAPIKey string
	GeminiModel  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("OPENWEATHERMAP_BASE_URL", "http://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("FETCH_INTERVAL", "15m")
	v.SetDefault("STORE_MAX_HISTORY", 96) // roughly 24h at 15-minute intervals
	v.SetDefault("STORE_MAX_AGE", "24h")
	v.SetDefault("PORT", "8080")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
}

// Load reads a .env file when present and then resolves configuration from
// the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}
	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds the configuration from an already populated viper instance.
func FromViper(v *viper.Viper) (*AppConfig, error) {
	setDefaults(v)

	cfg := &AppConfig{
		OpenWeatherAPIKey:  v.GetString("OPENWEATHERMAP_API_KEY"),
		OpenWeatherBaseURL: v.GetString("OPENWEATHERMAP_BASE_URL"),
		StoreMaxHistory:    v.GetInt("STORE_MAX_HISTORY"),
		Port:               v.GetString("PORT"),
		GoogleAPIKey:       v.GetString("GOOGLE_API_KEY"),
		GeminiModel:        v.GetString("GEMINI_MODEL"),
	}

	var err error
	if cfg.HTTPTimeout, err = parseDuration(v, "HTTP_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: must be positive")
	}
	if cfg.FetchInterval, err = parseDuration(v, "FETCH_INTERVAL"); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = parseDuration(v, "STORE_MAX_AGE"); err != nil {
		return nil, err
	}

	locs, err := parseLocations(v.GetString("WEATHER_LOCATION_CITY"), v.GetString("WEATHER_LOCATION_COUNTRY"))
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// parseLocations pairs comma-separated city and country lists. An empty
// country entry means "no country code".
func parseLocations(city, country string) ([]weather.Location, error) {
	if strings.TrimSpace(city) == "" {
		return nil, nil
	}
	cities := strings.Split(city, ",")
	countries := make([]string, len(cities))
	if strings.TrimSpace(country) != "" {
		countries = strings.Split(country, ",")
	}
	if len(cities) != len(countries) {
		return nil, fmt.Errorf("number of cities and countries must be the same")
	}

	var locs []weather.Location
	for i := range cities {
		c := strings.TrimSpace(cities[i])
		if c == "" {
			return nil, fmt.Errorf("empty city at position %d in WEATHER_LOCATION_CITY", i)
		}
		locs = append(locs, weather.Location{
			City:    c,
			Country: strings.TrimSpace(countries[i]),
		})
	}

	return locs, nil
}
