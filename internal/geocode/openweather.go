package geocode

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// OpenWeatherClient talks to the OpenWeatherMap geocoding API. It serves
// both forward geocoding (district search results to coordinates) and the
// second tier of the reverse chain.
type OpenWeatherClient struct {
	apiKey string
	client *resty.Client
}

func NewOpenWeatherClient(apiKey string) *OpenWeatherClient {
	return &OpenWeatherClient{
		apiKey: apiKey,
		client: resty.New().SetBaseURL("https://api.openweathermap.org/geo/1.0"),
	}
}

// SetBaseURL overrides the API host, for tests.
func (c *OpenWeatherClient) SetBaseURL(u string) {
	c.client.SetBaseURL(u)
}

type owmPlace struct {
	Name       string            `json:"name"`
	LocalNames map[string]string `json:"local_names"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
}

// Forward resolves a free-text Korean district/place query to its best
// match. The query is scoped to KR; an empty result set is ErrNoMatch.
func (c *OpenWeatherClient) Forward(ctx context.Context, query string) (Result, error) {
	if c.apiKey == "" {
		return Result{}, ErrNoAPIKey
	}

	var places []owmPlace
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     query + ",KR",
			"limit": "1",
			"appid": c.apiKey,
		}).
		SetResult(&places).
		Get("/direct")
	if err != nil {
		return Result{}, err
	}
	if resp.StatusCode() != 200 {
		return Result{}, fmt.Errorf("geocoding status code: %d", resp.StatusCode())
	}
	if len(places) == 0 {
		return Result{}, ErrNoMatch
	}

	return Result{
		Lat:  places[0].Lat,
		Lon:  places[0].Lon,
		Name: localizedName(places[0]),
	}, nil
}

func (c *OpenWeatherClient) Name() string { return "openweathermap" }

// Resolve implements ReverseResolver, preferring the Korean localized name.
func (c *OpenWeatherClient) Resolve(ctx context.Context, lat, lon float64) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	var places []owmPlace
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":   strconv.FormatFloat(lat, 'f', -1, 64),
			"lon":   strconv.FormatFloat(lon, 'f', -1, 64),
			"limit": "1",
			"appid": c.apiKey,
		}).
		SetResult(&places).
		Get("/reverse")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("reverse geocoding status code: %d", resp.StatusCode())
	}
	if len(places) == 0 {
		return "", nil
	}
	return localizedName(places[0]), nil
}

func localizedName(p owmPlace) string {
	if ko := p.LocalNames["ko"]; ko != "" {
		return ko
	}
	return p.Name
}
