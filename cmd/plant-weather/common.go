package main

import (
	"net/http"

	"github.com/i474232898/plant-weather/internal/config"
	"github.com/i474232898/plant-weather/internal/logging"
	"github.com/i474232898/plant-weather/internal/weather"
	"github.com/i474232898/plant-weather/internal/weather/providers"
)

// newProvider builds the OpenWeatherMap provider shared by all commands.
func newProvider(cfg *config.AppConfig) *providers.OpenWeatherProvider {
	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	return providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL)
}

// newService builds a weather service without history for one-shot commands.
func newService(cfg *config.AppConfig) *weather.Service {
	return weather.NewService(newProvider(cfg), nil,
		weather.WithTimeout(cfg.HTTPTimeout),
		weather.WithLogger(logging.Component("cli")),
	)
}

func locationArgs(args []string) (city, country string) {
	city = args[0]
	if len(args) > 1 {
		country = args[1]
	}
	return city, country
}
