package weather

import "context"

// ForecastClient fetches the raw forecast payload for a coordinate.
// Failure here is fatal for aggregation: current, daily and hourly all
// derive from this payload.
type ForecastClient interface {
	Forecast(ctx context.Context, lat, lon float64) (ForecastPayload, error)
}

// AirQualityClient fetches current particulate readings for a coordinate.
// It is a soft dependency: failures degrade to zero-filled air quality.
type AirQualityClient interface {
	AirQuality(ctx context.Context, lat, lon float64) (*AirQualityPayload, error)
}

// Cache is the contract the in-memory snapshot cache must satisfy.
// Get reports no snapshot both when the location was never fetched and
// when the cached snapshot has gone stale.
type Cache interface {
	Get(id string) (Snapshot, error)
	Put(id string, snap Snapshot)
}
