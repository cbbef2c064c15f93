package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// DefaultRequestTimeout bounds a single provider call.
const DefaultRequestTimeout = 10 * time.Second

var errNoProvider = errors.New("no weather provider configured")

// Service turns location queries into plant-oriented weather reports
// and keeps a history of reports for watched locations.
type Service struct {
	provider PayloadProvider
	store    Store
	timeout  time.Duration
	clock    clockwork.Clock
	observer ReportObserver
	logger   zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout overrides the per-request provider timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithClock(c clockwork.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithObserver(o ReportObserver) Option {
	return func(s *Service) { s.observer = o }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l.With().Str("component", "weather").Logger() }
}

// NewService creates a new Service. store may be nil when history is not needed.
func NewService(provider PayloadProvider, store Store, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		store:    store,
		timeout:  DefaultRequestTimeout,
		clock:    clockwork.NewRealClock(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetWeatherForPlants fetches current conditions for city (and optional
// country code) and returns a one-sentence report. Every failure is reported
// in-band; the call never panics and never returns a Go error.
func (s *Service) GetWeatherForPlants(ctx context.Context, city, countryCode string) Result {
	_, res := s.Report(ctx, Location{City: city, Country: countryCode})
	return res
}

// Report is GetWeatherForPlants that also hands back the normalized record
// when the request succeeded.
func (s *Service) Report(ctx context.Context, loc Location) (w *NormalizedWeather, res Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Str("query", loc.Query()).Msg("report panicked")
			s.observe("unexpected")
			w, res = nil, errorResult(fmt.Sprintf("Unexpected error: %v", r))
		}
	}()

	normalized, err := s.fetch(ctx, loc)
	s.observe(Outcome(err))
	if err != nil {
		s.logger.Warn().Err(err).Str("query", loc.Query()).Str("outcome", Outcome(err)).Msg("weather report failed")
		return nil, errorResult(ErrorMessage(err))
	}
	return &normalized, successResult(Summarize(normalized))
}

func (s *Service) fetch(ctx context.Context, loc Location) (NormalizedWeather, error) {
	if s.provider == nil {
		return NormalizedWeather{}, &UnexpectedError{Err: errNoProvider}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.logger.Debug().Str("provider", s.provider.Name()).Str("query", loc.Query()).Msg("fetching current conditions")

	body, err := s.provider.FetchCurrent(ctx, loc)
	if err != nil {
		return NormalizedWeather{}, err
	}
	return Normalize(body)
}

// FetchAndStore requests a report for loc and stores it when it succeeded.
// A failed report leaves the last good snapshot in place.
func (s *Service) FetchAndStore(ctx context.Context, loc Location) error {
	if s.store == nil {
		return fmt.Errorf("no store configured")
	}
	w, res := s.Report(ctx, loc)
	if !res.OK() {
		return errors.New(res.ErrorMessage)
	}
	s.store.SaveSnapshot(loc, Snapshot{
		ID:        uuid.NewString(),
		Location:  loc,
		Timestamp: s.clock.Now().UTC(),
		Weather:   w,
		Result:    res,
	})
	return nil
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(loc Location) (Snapshot, error) {
	if s.store == nil {
		return Snapshot{}, fmt.Errorf("no store configured")
	}
	return s.store.GetLatest(loc)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(loc Location, from, to time.Time) ([]Snapshot, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no store configured")
	}
	return s.store.GetRange(loc, from, to)
}

func (s *Service) observe(outcome string) {
	if s.observer != nil {
		s.observer.ObserveReport(outcome)
	}
}
