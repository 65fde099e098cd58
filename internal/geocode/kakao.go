package geocode

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// KakaoClient is the primary reverse geocoding tier, using the Kakao Local
// coord2address API. It returns the most specific available administrative
// region name, preferring neighborhood over district over province.
type KakaoClient struct {
	apiKey string
	client *resty.Client
}

func NewKakaoClient(apiKey string) *KakaoClient {
	return &KakaoClient{
		apiKey: apiKey,
		client: resty.New().SetBaseURL("https://dapi.kakao.com"),
	}
}

// SetBaseURL overrides the API host, for tests.
func (c *KakaoClient) SetBaseURL(u string) {
	c.client.SetBaseURL(u)
}

func (c *KakaoClient) Name() string { return "kakao" }

type kakaoResponse struct {
	Documents []struct {
		Address *struct {
			Region1 string `json:"region_1depth_name"` // province
			Region2 string `json:"region_2depth_name"` // district
			Region3 string `json:"region_3depth_name"` // neighborhood
		} `json:"address"`
	} `json:"documents"`
}

func (c *KakaoClient) Resolve(ctx context.Context, lat, lon float64) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	var payload kakaoResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "KakaoAK "+c.apiKey).
		SetQueryParams(map[string]string{
			"x": strconv.FormatFloat(lon, 'f', -1, 64),
			"y": strconv.FormatFloat(lat, 'f', -1, 64),
		}).
		SetResult(&payload).
		Get("/v2/local/geo/coord2address.json")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("kakao status code: %d", resp.StatusCode())
	}

	if len(payload.Documents) == 0 || payload.Documents[0].Address == nil {
		return "", nil
	}

	addr := payload.Documents[0].Address
	switch {
	case addr.Region3 != "":
		if addr.Region2 != "" {
			return addr.Region2 + " " + addr.Region3, nil
		}
		return addr.Region3, nil
	case addr.Region2 != "":
		return addr.Region2, nil
	case addr.Region1 != "":
		return addr.Region1, nil
	}
	return "", nil
}
