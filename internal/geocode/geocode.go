package geocode

import (
	"context"
	"errors"
	"log"
)

// Placeholder is the final fallback display name when every reverse
// geocoding provider fails.
const Placeholder = "현재 위치"

var (
	// ErrNoMatch is returned by forward geocoding when the query resolves
	// to nothing.
	ErrNoMatch = errors.New("no location found for query")

	// ErrNoAPIKey is returned by providers that need a key but have none
	// configured. In the reverse chain it just advances to the next tier.
	ErrNoAPIKey = errors.New("api key is not configured")
)

// Result is a forward geocoding match: the best-match coordinate and its
// localized display name.
type Result struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

// ReverseResolver turns a coordinate into a display name or fails.
type ReverseResolver interface {
	Name() string
	Resolve(ctx context.Context, lat, lon float64) (string, error)
}

// Chain tries reverse resolvers in order and falls back to Placeholder.
// The fallback order is an explicit, named policy: Kakao first, then
// OpenWeatherMap, then the static placeholder.
type Chain struct {
	resolvers []ReverseResolver
}

func NewChain(resolvers ...ReverseResolver) *Chain {
	return &Chain{resolvers: resolvers}
}

// Resolve returns the first resolver's non-empty result, degrading through
// the chain on any error. It never fails: the worst case is Placeholder.
func (c *Chain) Resolve(ctx context.Context, lat, lon float64) string {
	for _, r := range c.resolvers {
		name, err := r.Resolve(ctx, lat, lon)
		if err != nil {
			if !errors.Is(err, ErrNoAPIKey) {
				log.Printf("geocode: %s reverse lookup failed: %v", r.Name(), err)
			}
			continue
		}
		if name != "" {
			return name
		}
	}
	return Placeholder
}
