package weather

import (
	"errors"
	"fmt"
)

// APIRequestError is a network or HTTP-layer failure talking to the provider.
type APIRequestError struct {
	StatusCode int    // 0 when no response was received
	Status     string // HTTP status text, e.g. "404 Not Found"
	Message    string // provider supplied message, if any
	Err        error
}

func (e *APIRequestError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: %s", e.Status, e.Message)
	case e.StatusCode != 0:
		return e.Status
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "request failed"
	}
}

func (e *APIRequestError) Unwrap() error { return e.Err }

// MissingDataError reports a required key absent from the provider payload.
type MissingDataError struct {
	Key string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("'%s'", e.Key)
}

// UnexpectedError wraps any failure outside the other two categories.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// ErrorMessage renders err the way it is reported in a Result.
func ErrorMessage(err error) string {
	var apiErr *APIRequestError
	var missing *MissingDataError
	switch {
	case errors.As(err, &apiErr):
		return "API request failed: " + apiErr.Error()
	case errors.As(err, &missing):
		return "Missing data in API response: " + missing.Error()
	default:
		return "Unexpected error: " + err.Error()
	}
}

// Outcome classifies err for metrics labels.
func Outcome(err error) string {
	var apiErr *APIRequestError
	var missing *MissingDataError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &apiErr):
		return "api_error"
	case errors.As(err, &missing):
		return "missing_data"
	default:
		return "unexpected"
	}
}
