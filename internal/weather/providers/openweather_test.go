package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/plant-weather/internal/weather"
)

const testKey = "test-key"

const limaBody = `{"coord":{"lon":-77.03,"lat":-12.04},"weather":[{"main":"Clouds","description":"scattered clouds","icon":"03d"}],` +
	`"main":{"temp":22,"feels_like":22,"temp_min":20,"temp_max":24,"pressure":1012,"humidity":60},` +
	`"wind":{"speed":3.5},"clouds":{"all":40},"sys":{"country":"PE"},"name":"Lima"}`

func newTestProvider(srv *httptest.Server) *OpenWeatherProvider {
	return NewOpenWeatherProvider(&http.Client{Timeout: 5 * time.Second}, testKey, srv.URL+"/data/2.5/weather")
}

func TestOpenWeather_FetchCurrent_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "Lima,PE", r.URL.Query().Get("q"))
		assert.Equal(t, testKey, r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(limaBody))
	}))
	defer srv.Close()

	body, err := newTestProvider(srv).FetchCurrent(context.Background(), weather.Location{City: "Lima", Country: "PE"})
	require.NoError(t, err)
	assert.JSONEq(t, limaBody, string(body))
}

func TestOpenWeather_QueryWithoutCountry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Lima", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(limaBody))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv).FetchCurrent(context.Background(), weather.Location{City: "Lima"})
	require.NoError(t, err)
}

func TestOpenWeather_StatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   int
		wantString string
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"cod":"404","message":"city not found"}`, wantCode: 404, wantString: "404 Not Found: city not found"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"cod":401,"message":"Invalid API key."}`, wantCode: 401, wantString: "401 Unauthorized: Invalid API key."},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, wantCode: 500, wantString: "500 Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestProvider(srv).FetchCurrent(context.Background(), weather.Location{City: "Atlantis"})

			var apiErr *weather.APIRequestError
			require.True(t, errors.As(err, &apiErr), "got %v", err)
			assert.Equal(t, tt.wantCode, apiErr.StatusCode)
			assert.Equal(t, tt.wantString, apiErr.Error())
		})
	}
}

func TestOpenWeather_EndToEndResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	svc := weather.NewService(newTestProvider(srv), nil)
	res := svc.GetWeatherForPlants(context.Background(), "Atlantis", "")

	assert.Equal(t, weather.StatusError, res.Status)
	assert.Equal(t, "API request failed: 404 Not Found: city not found", res.ErrorMessage)
}

func TestOpenWeather_TransportErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewOpenWeatherProvider(&http.Client{Timeout: time.Second}, "secret-key", url)
	_, err := p.FetchCurrent(context.Background(), weather.Location{City: "Lima"})

	var apiErr *weather.APIRequestError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Zero(t, apiErr.StatusCode)
	assert.NotContains(t, err.Error(), "secret-key")
}

func TestOpenWeather_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestProvider(srv).FetchCurrent(ctx, weather.Location{City: "Lima"})

	var apiErr *weather.APIRequestError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestOpenWeather_CircuitOpensOnServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := newTestProvider(srv)
	loc := weather.Location{City: "Lima"}
	for i := 0; i < int(DefaultBreakerConfig.ConsecutiveFailures); i++ {
		_, err := p.FetchCurrent(context.Background(), loc)
		require.Error(t, err)
	}

	_, err := p.FetchCurrent(context.Background(), loc)
	var apiErr *weather.APIRequestError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, errors.Is(err, errCircuitOpen), "got %v", err)
	assert.Equal(t, int32(DefaultBreakerConfig.ConsecutiveFailures), hits.Load())
}

func TestOpenWeather_ClientErrorsKeepCircuitClosed(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := newTestProvider(srv)
	for i := 0; i < 10; i++ {
		_, err := p.FetchCurrent(context.Background(), weather.Location{City: "Atlantis"})
		require.Error(t, err)
		assert.False(t, errors.Is(err, errCircuitOpen))
	}
	assert.Equal(t, int32(10), hits.Load())
}

func TestOpenWeather_RecordsLatency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(limaBody))
	}))
	defer srv.Close()

	hist := prometheus.NewHistogram(prometheus.HistogramOpts{Name: "test_latency_seconds"})
	p := newTestProvider(srv).WithLatency(hist)

	_, err := p.FetchCurrent(context.Background(), weather.Location{City: "Lima"})
	require.NoError(t, err)
	assert.Equal(t, 1, testutil.CollectAndCount(hist))
	assert.True(t, strings.HasPrefix(p.Name(), "openweather"))
}
