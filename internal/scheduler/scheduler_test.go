package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/plant-weather/internal/weather"
)

type fakeRefresher struct {
	mu      sync.Mutex
	fetched []string
	failFor string
}

func (f *fakeRefresher) FetchAndStore(_ context.Context, loc weather.Location) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, loc.Key())
	if loc.City == f.failFor {
		return errors.New("provider down")
	}
	return nil
}

func (f *fakeRefresher) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.fetched...)
	sort.Strings(out)
	return out
}

func TestRunOnce_FetchesEveryLocation(t *testing.T) {
	ref := &fakeRefresher{failFor: "Paris"}
	var runs atomic.Int32
	locs := []weather.Location{{City: "Lima", Country: "PE"}, {City: "Paris", Country: "FR"}}

	s := New(locs, time.Minute, ref, zerolog.Nop(), func() { runs.Add(1) })
	s.RunOnce()

	assert.Equal(t, []string{"lima:PE", "paris:FR"}, ref.keys())
	assert.Equal(t, int32(1), runs.Load())
}

func TestStart_NoLocations(t *testing.T) {
	ref := &fakeRefresher{}
	s := New(nil, time.Minute, ref, zerolog.Nop(), nil)

	require.NoError(t, s.Start())
	s.Stop()
	assert.Empty(t, ref.keys())
}

func TestStart_RunsImmediately(t *testing.T) {
	ref := &fakeRefresher{}
	s := New([]weather.Location{{City: "Lima"}}, time.Hour, ref, zerolog.Nop(), nil)

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return len(ref.keys()) == 1 }, 2*time.Second, 10*time.Millisecond)
}
