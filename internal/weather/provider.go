package weather

import (
	"context"
	"time"
)

// PayloadProvider fetches the raw current-conditions payload for a location
// (e.g. OpenWeatherMap). Transport and HTTP failures are returned as *APIRequestError.
type PayloadProvider interface {
	Name() string
	FetchCurrent(ctx context.Context, loc Location) ([]byte, error)
}

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	SaveSnapshot(loc Location, snapshot Snapshot)
	GetLatest(loc Location) (Snapshot, error)
	GetRange(loc Location, from, to time.Time) ([]Snapshot, error)
}

// ReportObserver receives the outcome label of every report request.
type ReportObserver interface {
	ObserveReport(outcome string)
}
