package weather

import (
	"fmt"
	"time"

	"github.com/weatherpocket/weatherpocket/internal/geo"
)

// Raw array lengths expected from a forecast requested with past_days=1
// and forecast_days=7. Index 0 of the daily arrays is yesterday; hourly
// indexes 0-23 are yesterday's hours and 24-47 today's.
const (
	rawDays  = 8
	rawHours = 48

	// Fixed output lengths, independent of upstream payload size.
	SnapshotDays  = 7
	SnapshotHours = 24
)

// BuildSnapshot assembles the unified snapshot from the two raw upstream
// payloads. It is a pure function of its inputs: identical payloads and
// the same now always produce an identical snapshot.
//
// The forecast payload is mandatory and validated up front; the
// air-quality payload is optional and zero-filled when nil or missing its
// current section. The snapshot ID comes from the normalized request
// coordinate, never from anything the forecast service returns.
func BuildSnapshot(fc ForecastPayload, air *AirQualityPayload, lat, lon float64, now time.Time) (Snapshot, error) {
	if err := validateForecast(fc); err != nil {
		return Snapshot{}, err
	}

	coord := geo.Normalize(lat, lon)
	hour := now.Hour()
	todayHour := hour + SnapshotHours

	cur := Current{
		ID:            coord.ID(),
		Lat:           coord.Lat,
		Lon:           coord.Lon,
		Temp:          fc.Current.Temperature2m,
		YesterdayTemp: fc.Hourly.Temperature2m[hour],
		FeelsLike:     fc.Current.ApparentTemperature,
		TempMin:       fc.Daily.Temperature2mMin[1], // index 1 = today
		TempMax:       fc.Daily.Temperature2mMax[1],
		Humidity:      fc.Current.RelativeHumidity2m,
		WindSpeed:     fc.Current.WindSpeed10m,
		CloudCover:    fc.Current.CloudCover,
		UVIndex:       hourlyAt(fc.Hourly.UVIndex, todayHour),
		PrecipProb:    hourlyAt(fc.Hourly.PrecipitationProbability, todayHour),
		Sunrise:       fc.Daily.Sunrise[1],
		Sunset:        fc.Daily.Sunset[1],
		IconCode:      fc.Current.WeatherCode,
		Description:   Describe(fc.Current.WeatherCode),
	}

	if air != nil && air.Current != nil {
		cur.AirQuality = AirQuality{PM10: air.Current.PM10, PM25: air.Current.PM25}
	}

	daily := make([]DailyEntry, 0, SnapshotDays)
	for i := 1; i <= SnapshotDays; i++ {
		daily = append(daily, DailyEntry{
			Date:        fc.Daily.Time[i],
			TempMax:     fc.Daily.Temperature2mMax[i],
			TempMin:     fc.Daily.Temperature2mMin[i],
			IconCode:    fc.Daily.WeatherCode[i],
			Description: Describe(fc.Daily.WeatherCode[i]),
		})
	}

	hourly := make([]HourlyEntry, 0, SnapshotHours)
	for i := SnapshotHours; i < rawHours; i++ {
		hourly = append(hourly, HourlyEntry{
			Time:        fc.Hourly.Time[i],
			Temp:        fc.Hourly.Temperature2m[i],
			IconCode:    fc.Hourly.WeatherCode[i],
			Description: Describe(fc.Hourly.WeatherCode[i]),
		})
	}

	return Snapshot{Current: cur, Daily: daily, Hourly: hourly}, nil
}

// validateForecast is the single place raw array lengths are trusted from.
// Everything after it may index freely.
func validateForecast(fc ForecastPayload) error {
	if fc.Current == nil {
		return fmt.Errorf("forecast payload missing current section")
	}
	for name, n := range map[string]int{
		"daily.time":               len(fc.Daily.Time),
		"daily.weather_code":       len(fc.Daily.WeatherCode),
		"daily.temperature_2m_max": len(fc.Daily.Temperature2mMax),
		"daily.temperature_2m_min": len(fc.Daily.Temperature2mMin),
		"daily.sunrise":            len(fc.Daily.Sunrise),
		"daily.sunset":             len(fc.Daily.Sunset),
	} {
		if n < rawDays {
			return fmt.Errorf("forecast payload %s has %d entries, want %d", name, n, rawDays)
		}
	}
	for name, n := range map[string]int{
		"hourly.time":           len(fc.Hourly.Time),
		"hourly.temperature_2m": len(fc.Hourly.Temperature2m),
		"hourly.weather_code":   len(fc.Hourly.WeatherCode),
	} {
		if n < rawHours {
			return fmt.Errorf("forecast payload %s has %d entries, want %d", name, n, rawHours)
		}
	}
	return nil
}

// hourlyAt reads vals[i], defaulting to 0 when the array is short or was
// not requested. UV index and precipitation probability are optional
// upstream fields.
func hourlyAt(vals []float64, i int) float64 {
	if i < 0 || i >= len(vals) {
		return 0
	}
	return vals[i]
}
