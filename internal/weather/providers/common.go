package providers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/plant-weather/internal/weather"
	"github.com/sony/gobreaker"
)

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 1 << 20

var errCircuitOpen = errors.New("circuit breaker open")

// BreakerConfig controls when a provider's circuit trips.
type BreakerConfig struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

// DefaultBreakerConfig matches the settings used for every provider.
var DefaultBreakerConfig = BreakerConfig{
	MaxRequests:         5,
	Interval:            1 * time.Minute,
	Timeout:             2 * time.Minute,
	ConsecutiveFailures: 5,
}

func newCircuitBreaker(name string, cfg BreakerConfig) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
	})
}

// doRequest executes req once through the circuit breaker and returns the body
// of a 2xx response. Transport errors and 5xx responses count against the
// breaker; 4xx responses (unknown city, bad key) do not. Every failure is an
// *weather.APIRequestError.
func doRequest(client *http.Client, cb *gobreaker.CircuitBreaker, req *http.Request) ([]byte, error) {
	if client == nil {
		return nil, &weather.APIRequestError{Err: errors.New("http client not configured")}
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, &weather.APIRequestError{Err: redactURL(execErr)}
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if readErr != nil {
			return nil, &weather.APIRequestError{StatusCode: resp.StatusCode, Status: resp.Status, Err: readErr}
		}

		if resp.StatusCode >= 500 {
			return nil, statusError(resp, body)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// Client errors are returned as a value so the breaker stays closed.
			return statusError(resp, body), nil
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &weather.APIRequestError{Err: fmt.Errorf("%w: %v", errCircuitOpen, err)}
		}
		return nil, err
	}

	switch v := result.(type) {
	case []byte:
		return v, nil
	case *weather.APIRequestError:
		return nil, v
	default:
		return nil, &weather.APIRequestError{Err: fmt.Errorf("unexpected result type %T from circuit breaker", result)}
	}
}

func statusError(resp *http.Response, body []byte) *weather.APIRequestError {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)
	return &weather.APIRequestError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Message:    payload.Message,
	}
}

// redactURL drops the request URL (it carries the API key) from transport errors.
func redactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
