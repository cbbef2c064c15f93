package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/i474232898/plant-weather/internal/weather"
)

const (
	defaultInterval = 15 * time.Minute
	jobTimeout      = 30 * time.Second
)

// Refresher stores a fresh report for a location.
type Refresher interface {
	FetchAndStore(ctx context.Context, loc weather.Location) error
}

// Scheduler periodically refreshes reports for the watched locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	locations []weather.Location
	interval  time.Duration
	logger    zerolog.Logger
	onRun     func()
}

// New creates a new Scheduler. onRun, when set, is called after every completed run.
func New(locations []weather.Location, interval time.Duration, service Refresher, logger zerolog.Logger, onRun func()) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		locations: locations,
		interval:  interval,
		logger:    logger.With().Str("component", "scheduler").Logger(),
		onRun:     onRun,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		s.logger.Info().Msg("no locations configured; nothing to schedule")
		return nil
	}

	if _, err := s.scheduler.Every(s.interval).Do(s.RunOnce); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes every watched location concurrently and waits for all of them.
func (s *Scheduler) RunOnce() {
	s.logger.Debug().Int("locations", len(s.locations)).Msg("running refresh job")

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()

			if err := s.service.FetchAndStore(ctx, loc); err != nil {
				s.logger.Warn().Err(err).Str("location", loc.Key()).Msg("refresh failed")
			}
		}()
	}
	wg.Wait()

	if s.onRun != nil {
		s.onRun()
	}
	s.logger.Debug().Msg("refresh job completed")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
