package weather

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	body    []byte
	err     error
	panicky bool

	mu      sync.Mutex
	queries []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) FetchCurrent(_ context.Context, loc Location) ([]byte, error) {
	f.mu.Lock()
	f.queries = append(f.queries, loc.Query())
	f.mu.Unlock()
	if f.panicky {
		panic("boom")
	}
	return f.body, f.err
}

type recordingStore struct {
	saved []Snapshot
}

func (s *recordingStore) SaveSnapshot(_ Location, snap Snapshot) { s.saved = append(s.saved, snap) }
func (s *recordingStore) GetLatest(Location) (Snapshot, error) {
	if len(s.saved) == 0 {
		return Snapshot{}, errors.New("empty")
	}
	return s.saved[len(s.saved)-1], nil
}
func (s *recordingStore) GetRange(Location, time.Time, time.Time) ([]Snapshot, error) {
	return s.saved, nil
}

type countingObserver struct {
	outcomes []string
}

func (c *countingObserver) ObserveReport(outcome string) { c.outcomes = append(c.outcomes, outcome) }

func TestGetWeatherForPlants_Success(t *testing.T) {
	prov := &fakeProvider{body: []byte(limaPayload)}
	obs := &countingObserver{}
	svc := NewService(prov, nil, WithObserver(obs))

	res := svc.GetWeatherForPlants(context.Background(), "Lima", "PE")

	assert.Equal(t, Result{Status: StatusSuccess, Report: limaReport}, res)
	assert.Equal(t, []string{"Lima,PE"}, prov.queries)
	assert.Equal(t, []string{"success"}, obs.outcomes)
}

func TestGetWeatherForPlants_NoCountryCode(t *testing.T) {
	prov := &fakeProvider{body: []byte(limaPayload)}
	svc := NewService(prov, nil)

	svc.GetWeatherForPlants(context.Background(), "Lima", "")

	assert.Equal(t, []string{"Lima"}, prov.queries)
}

func TestGetWeatherForPlants_Errors(t *testing.T) {
	tests := []struct {
		name        string
		provider    PayloadProvider
		wantMessage string
		wantOutcome string
	}{
		{
			name:        "http 404",
			provider:    &fakeProvider{err: &APIRequestError{StatusCode: 404, Status: "404 Not Found", Message: "city not found"}},
			wantMessage: "API request failed: 404 Not Found: city not found",
			wantOutcome: "api_error",
		},
		{
			name:        "http 500",
			provider:    &fakeProvider{err: &APIRequestError{StatusCode: 500, Status: "500 Internal Server Error"}},
			wantMessage: "API request failed: 500 Internal Server Error",
			wantOutcome: "api_error",
		},
		{
			name:        "transport",
			provider:    &fakeProvider{err: &APIRequestError{Err: context.DeadlineExceeded}},
			wantMessage: "API request failed: context deadline exceeded",
			wantOutcome: "api_error",
		},
		{
			name:        "missing key",
			provider:    &fakeProvider{body: []byte(`{"name":"Lima"}`)},
			wantMessage: "Missing data in API response: 'sys.country'",
			wantOutcome: "missing_data",
		},
		{
			name:        "plain error",
			provider:    &fakeProvider{err: errors.New("disk on fire")},
			wantMessage: "Unexpected error: disk on fire",
			wantOutcome: "unexpected",
		},
		{
			name:        "panic",
			provider:    &fakeProvider{panicky: true},
			wantMessage: "Unexpected error: boom",
			wantOutcome: "unexpected",
		},
		{
			name:        "no provider",
			provider:    nil,
			wantMessage: "Unexpected error: no weather provider configured",
			wantOutcome: "unexpected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &countingObserver{}
			svc := NewService(tt.provider, nil, WithObserver(obs))

			var res Result
			require.NotPanics(t, func() {
				res = svc.GetWeatherForPlants(context.Background(), "Lima", "PE")
			})

			assert.Equal(t, StatusError, res.Status)
			assert.Equal(t, tt.wantMessage, res.ErrorMessage)
			assert.Empty(t, res.Report)
			assert.Equal(t, []string{tt.wantOutcome}, obs.outcomes)
		})
	}
}

func TestFetchAndStore(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))
	st := &recordingStore{}
	svc := NewService(&fakeProvider{body: []byte(limaPayload)}, st, WithClock(clock))
	loc := Location{City: "Lima", Country: "PE"}

	require.NoError(t, svc.FetchAndStore(context.Background(), loc))
	require.Len(t, st.saved, 1)

	snap := st.saved[0]
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, loc, snap.Location)
	assert.Equal(t, clock.Now(), snap.Timestamp)
	require.NotNil(t, snap.Weather)
	assert.Equal(t, "Lima", snap.Weather.Location.City)
	assert.Equal(t, limaReport, snap.Result.Report)

	latest, err := svc.GetLatest(loc)
	require.NoError(t, err)
	assert.Equal(t, snap, latest)
}

func TestFetchAndStore_KeepsLastGoodSnapshot(t *testing.T) {
	st := &recordingStore{}
	prov := &fakeProvider{body: []byte(limaPayload)}
	svc := NewService(prov, st)
	loc := Location{City: "Lima", Country: "PE"}

	require.NoError(t, svc.FetchAndStore(context.Background(), loc))

	prov.body, prov.err = nil, &APIRequestError{StatusCode: 503, Status: "503 Service Unavailable"}
	err := svc.FetchAndStore(context.Background(), loc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Len(t, st.saved, 1)
}

func TestService_NoStore(t *testing.T) {
	svc := NewService(&fakeProvider{body: []byte(limaPayload)}, nil)

	assert.Error(t, svc.FetchAndStore(context.Background(), Location{City: "Lima"}))
	_, err := svc.GetLatest(Location{City: "Lima"})
	assert.Error(t, err)
}
