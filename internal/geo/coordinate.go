package geo

import (
	"math"
	"strconv"
)

// Coordinate is a latitude/longitude pair in signed decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Normalize rounds both components to 4 decimal places (~11 m precision).
// Coordinates that round to the same pair identify the same location
// everywhere in the system.
func Normalize(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: round4(lat),
		Lon: round4(lon),
	}
}

// ID returns the canonical location key "{lat}-{lon}" for a normalized
// coordinate. Trailing zeros are trimmed, so 37.5000 renders as "37.5".
func (c Coordinate) ID() string {
	return formatDegree(c.Lat) + "-" + formatDegree(c.Lon)
}

// LocationID normalizes the pair and returns its canonical key.
func LocationID(lat, lon float64) string {
	return Normalize(lat, lon).ID()
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func formatDegree(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
