package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/plant-weather/internal/weather"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
)

// DefaultOpenWeatherURL is the current-conditions endpoint.
const DefaultOpenWeatherURL = "http://api.openweathermap.org/data/2.5/weather"

// OpenWeatherProvider implements weather.PayloadProvider for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	latency prometheus.Observer
}

// WithLatency records the duration of every provider call on obs.
func (p *OpenWeatherProvider) WithLatency(obs prometheus.Observer) *OpenWeatherProvider {
	p.latency = obs
	return p
}

// NewOpenWeatherProvider creates a provider. An empty apiKey is sent as-is;
// the provider rejects it with 401 which surfaces as *weather.APIRequestError.
// An empty baseURL selects DefaultOpenWeatherURL.
func NewOpenWeatherProvider(client *http.Client, apiKey, baseURL string) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: newCircuitBreaker("openweather", DefaultBreakerConfig),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// FetchCurrent returns the raw JSON body for loc.
func (p *OpenWeatherProvider) FetchCurrent(ctx context.Context, loc weather.Location) ([]byte, error) {
	values := url.Values{}
	values.Set("q", loc.Query())
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &weather.APIRequestError{Err: fmt.Errorf("build request: %w", redactURL(err))}
	}
	req.Header.Set("Accept", "application/json")

	if p.latency != nil {
		start := time.Now()
		defer func() { p.latency.Observe(time.Since(start).Seconds()) }()
	}
	return doRequest(p.client, p.circuit, req)
}
