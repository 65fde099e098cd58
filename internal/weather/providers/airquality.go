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

// AirQualityClient implements weather.AirQualityClient against the
// Open-Meteo air-quality API.
type AirQualityClient struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewAirQualityClient(client *http.Client) *AirQualityClient {
	return &AirQualityClient{
		baseURL: "https://air-quality-api.open-meteo.com/v1/air-quality",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newBreaker("openmeteo-airquality"),
	}
}

// AirQuality requests current PM10/PM2.5. The payload may come back
// without a current section; the aggregation zero-fills in that case.
func (c *AirQualityClient) AirQuality(ctx context.Context, lat, lon float64) (*weather.AirQualityPayload, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("current", "pm10,pm2_5")

	resp, err := getWithResilience(ctx, c.httpCfg, c.circuit, c.baseURL+"?"+values.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload weather.AirQualityPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode air quality response: %w", err)
	}
	return &payload, nil
}
