package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
	"github.com/weatherpocket/weatherpocket/internal/weather"
)

// OpenMeteoClient implements weather.ForecastClient against the Open-Meteo
// forecast API. No API key is required.
type OpenMeteoClient struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoClient(client *http.Client) *OpenMeteoClient {
	return &OpenMeteoClient{
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newBreaker("openmeteo-forecast"),
	}
}

// Forecast requests current conditions plus hourly and daily arrays with
// one past day prepended, so the aggregation's yesterday/today index
// arithmetic holds (8 daily rows, 48 hourly rows).
func (c *OpenMeteoClient) Forecast(ctx context.Context, lat, lon float64) (weather.ForecastPayload, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m,cloud_cover")
	values.Set("hourly", "temperature_2m,weather_code,precipitation_probability,uv_index")
	values.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min,sunrise,sunset")
	values.Set("timezone", "auto")
	values.Set("forecast_days", "7")
	values.Set("past_days", "1")

	resp, err := getWithResilience(ctx, c.httpCfg, c.circuit, c.baseURL+"?"+values.Encode())
	if err != nil {
		return weather.ForecastPayload{}, err
	}
	defer resp.Body.Close()

	var payload weather.ForecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ForecastPayload{}, fmt.Errorf("decode forecast response: %w", err)
	}
	return payload, nil
}
