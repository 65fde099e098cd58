package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/weatherpocket/weatherpocket/internal/geo"
)

// ErrWeatherUnavailable is returned when the mandatory forecast dependency
// fails. The caller presents a retry/empty state; there is no partial
// snapshot without forecast data.
var ErrWeatherUnavailable = errors.New("weather data unavailable for location")

// Service orchestrates the two upstream fetches and the snapshot cache.
type Service struct {
	forecast ForecastClient
	air      AirQualityClient
	cache    Cache
	now      func() time.Time
}

// NewService creates a Service. cache may be nil to disable caching.
func NewService(forecast ForecastClient, air AirQualityClient, cache Cache) *Service {
	return &Service{
		forecast: forecast,
		air:      air,
		cache:    cache,
		now:      time.Now,
	}
}

// GetWeather returns the snapshot for a coordinate, serving a fresh cached
// one when available and fetching otherwise.
func (s *Service) GetWeather(ctx context.Context, lat, lon float64) (Snapshot, error) {
	id := geo.LocationID(lat, lon)

	if s.cache != nil {
		if snap, err := s.cache.Get(id); err == nil {
			return snap, nil
		}
	}
	return s.Refresh(ctx, lat, lon)
}

// Refresh fetches both upstream payloads concurrently, builds a snapshot
// and stores it in the cache. The forecast and air-quality calls run in
// parallel with no ordering guarantee; results combine only after both
// settle. An air-quality failure is logged and zero-filled, never fatal.
func (s *Service) Refresh(ctx context.Context, lat, lon float64) (Snapshot, error) {
	var (
		wg    sync.WaitGroup
		fc    ForecastPayload
		fcErr error
		aq    *AirQualityPayload
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		fc, fcErr = s.forecast.Forecast(ctx, lat, lon)
	}()
	go func() {
		defer wg.Done()
		var err error
		aq, err = s.air.AirQuality(ctx, lat, lon)
		if err != nil {
			log.Printf("weather: air quality fetch failed for %s: %v", geo.LocationID(lat, lon), err)
			aq = nil
		}
	}()
	wg.Wait()

	if fcErr != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrWeatherUnavailable, fcErr)
	}

	snap, err := BuildSnapshot(fc, aq, lat, lon, s.now())
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}

	if s.cache != nil {
		s.cache.Put(snap.Current.ID, snap)
	}
	return snap, nil
}
