package weather

// ForecastPayload is the raw Open-Meteo forecast response, requested with
// past_days=1 and forecast_days=7 so the daily arrays carry 8 entries
// (index 0 = yesterday) and the hourly arrays 48 (0-23 yesterday, 24-47
// today).
type ForecastPayload struct {
	Current *ForecastCurrent `json:"current"`
	Hourly  ForecastHourly   `json:"hourly"`
	Daily   ForecastDaily    `json:"daily"`
}

// ForecastCurrent is the instantaneous reading block of the forecast payload.
type ForecastCurrent struct {
	Temperature2m       float64 `json:"temperature_2m"`
	RelativeHumidity2m  float64 `json:"relative_humidity_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	WeatherCode         int     `json:"weather_code"`
	WindSpeed10m        float64 `json:"wind_speed_10m"`
	CloudCover          float64 `json:"cloud_cover"`
}

// ForecastHourly holds parallel per-hour arrays.
type ForecastHourly struct {
	Time                     []string  `json:"time"`
	Temperature2m            []float64 `json:"temperature_2m"`
	WeatherCode              []int     `json:"weather_code"`
	PrecipitationProbability []float64 `json:"precipitation_probability"`
	UVIndex                  []float64 `json:"uv_index"`
}

// ForecastDaily holds parallel per-day arrays.
type ForecastDaily struct {
	Time             []string  `json:"time"`
	WeatherCode      []int     `json:"weather_code"`
	Temperature2mMax []float64 `json:"temperature_2m_max"`
	Temperature2mMin []float64 `json:"temperature_2m_min"`
	Sunrise          []string  `json:"sunrise"`
	Sunset           []string  `json:"sunset"`
}

// AirQualityPayload is the raw Open-Meteo air-quality response. A missing
// current section means the service had no data for the coordinate.
type AirQualityPayload struct {
	Current *AirQualityCurrent `json:"current"`
}

type AirQualityCurrent struct {
	PM10 float64 `json:"pm10"`
	PM25 float64 `json:"pm2_5"`
}

// Snapshot is the unified view the dashboard renders: current conditions
// plus fixed-length daily (7) and hourly (24) forecasts.
type Snapshot struct {
	Current Current       `json:"current"`
	Daily   []DailyEntry  `json:"daily"`
	Hourly  []HourlyEntry `json:"hourly"`
}

// Current is a single point-in-time reading. Temperatures pass through
// from upstream unrounded; unit conversion is a presentation concern.
type Current struct {
	ID            string     `json:"id"` // canonical location key from the request coordinate
	Lat           float64    `json:"lat"`
	Lon           float64    `json:"lon"`
	Temp          float64    `json:"temp"`
	YesterdayTemp float64    `json:"yesterday_temp"` // same wall-clock hour one day prior
	FeelsLike     float64    `json:"feels_like"`
	TempMin       float64    `json:"temp_min"`
	TempMax       float64    `json:"temp_max"`
	Humidity      float64    `json:"humidity"`
	WindSpeed     float64    `json:"wind_speed"`
	CloudCover    float64    `json:"cloud_cover"`
	UVIndex       float64    `json:"uv_index"`
	PrecipProb    float64    `json:"precip_prob"`
	Sunrise       string     `json:"sunrise"`
	Sunset        string     `json:"sunset"`
	IconCode      int        `json:"icon_code"` // WMO weather code
	Description   string     `json:"description"`
	AirQuality    AirQuality `json:"air_quality"`
}

type AirQuality struct {
	PM10 float64 `json:"pm10"`
	PM25 float64 `json:"pm2_5"`
}

type DailyEntry struct {
	Date        string  `json:"date"`
	TempMax     float64 `json:"temp_max"`
	TempMin     float64 `json:"temp_min"`
	IconCode    int     `json:"icon_code"`
	Description string  `json:"description"`
}

type HourlyEntry struct {
	Time        string  `json:"time"`
	Temp        float64 `json:"temp"`
	IconCode    int     `json:"icon_code"`
	Description string  `json:"description"`
}
