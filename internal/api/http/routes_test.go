package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/weatherpocket/weatherpocket/internal/district"
	"github.com/weatherpocket/weatherpocket/internal/favorites"
	"github.com/weatherpocket/weatherpocket/internal/geocode"
	"github.com/weatherpocket/weatherpocket/internal/settings"
	"github.com/weatherpocket/weatherpocket/internal/storage"
	"github.com/weatherpocket/weatherpocket/internal/weather"
)

type stubForecast struct {
	err error
}

func (s stubForecast) Forecast(ctx context.Context, lat, lon float64) (weather.ForecastPayload, error) {
	if s.err != nil {
		return weather.ForecastPayload{}, s.err
	}
	return wellFormedForecast(), nil
}

type stubAir struct{}

func (stubAir) AirQuality(ctx context.Context, lat, lon float64) (*weather.AirQualityPayload, error) {
	return &weather.AirQualityPayload{}, nil
}

func wellFormedForecast() weather.ForecastPayload {
	fc := weather.ForecastPayload{Current: &weather.ForecastCurrent{Temperature2m: 21.4}}
	for i := 0; i < 8; i++ {
		day := fmt.Sprintf("2026-08-%02d", 28+i)
		fc.Daily.Time = append(fc.Daily.Time, day)
		fc.Daily.WeatherCode = append(fc.Daily.WeatherCode, 0)
		fc.Daily.Temperature2mMax = append(fc.Daily.Temperature2mMax, 24)
		fc.Daily.Temperature2mMin = append(fc.Daily.Temperature2mMin, 15)
		fc.Daily.Sunrise = append(fc.Daily.Sunrise, day+"T06:01")
		fc.Daily.Sunset = append(fc.Daily.Sunset, day+"T19:12")
	}
	for i := 0; i < 48; i++ {
		fc.Hourly.Time = append(fc.Hourly.Time, fmt.Sprintf("hour-%02d", i))
		fc.Hourly.Temperature2m = append(fc.Hourly.Temperature2m, 20)
		fc.Hourly.WeatherCode = append(fc.Hourly.WeatherCode, 0)
	}
	return fc
}

func newTestApp(t *testing.T, forecastErr error) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": true, "message": err.Error()})
		},
	})

	districts, err := district.Load()
	if err != nil {
		t.Fatalf("failed to load districts: %v", err)
	}

	kv := storage.NewMemoryStore()
	RegisterRoutes(app, Deps{
		Weather:   weather.NewService(stubForecast{err: forecastErr}, stubAir{}, nil),
		Favorites: favorites.NewStore(kv),
		Settings:  settings.NewStore(kv),
		Districts: districts,
		Geocoder:  geocode.NewOpenWeatherClient(""),
		Reverse:   geocode.NewChain(),
	})
	return app
}

func TestWeatherQueryValidation(t *testing.T) {
	app := newTestApp(t, nil)

	// Missing coordinates should return 400.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Out-of-range latitude should also return 400.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/weather?lat=91&lon=126.978", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestWeatherSuccess(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather?lat=37.5665&lon=126.978", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var snap weather.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if snap.Current.ID != "37.5665-126.978" {
		t.Errorf("unexpected snapshot id %s", snap.Current.ID)
	}
	if len(snap.Daily) != 7 || len(snap.Hourly) != 24 {
		t.Errorf("unexpected forecast lengths %d/%d", len(snap.Daily), len(snap.Hourly))
	}
}

func TestWeatherUnavailable(t *testing.T) {
	app := newTestApp(t, errors.New("upstream down"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather?lat=37.5665&lon=126.978", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func TestFavoritesFlow(t *testing.T) {
	app := newTestApp(t, nil)

	resp := postJSON(t, app, "/api/v1/favorites", `{"lat": 37.5665, "lon": 126.978, "nickname": "서울"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.StatusCode)
	}

	var fav favorites.Location
	if err := json.NewDecoder(resp.Body).Decode(&fav); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if fav.ID != "37.5665-126.978" {
		t.Errorf("unexpected favorite id %s", fav.ID)
	}

	// The same location again is a domain error, not a validation error.
	resp = postJSON(t, app, "/api/v1/favorites", `{"lat": 37.5665, "lon": 126.978, "nickname": "서울 2"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422 for duplicate, got %d", resp.StatusCode)
	}

	// Membership via coordinates.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/favorites/contains?lat=37.56650001&lon=126.97799999", nil)
	cresp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var contains struct {
		IsFavorite bool `json:"isFavorite"`
	}
	if err := json.NewDecoder(cresp.Body).Decode(&contains); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !contains.IsFavorite {
		t.Error("expected equivalent coordinate to be reported as favorite")
	}

	// Rename, then delete.
	preq := httptest.NewRequest(http.MethodPatch, "/api/v1/favorites/"+fav.ID, strings.NewReader(`{"nickname": "본가"}`))
	preq.Header.Set("Content-Type", "application/json")
	presp, err := app.Test(preq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if presp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", presp.StatusCode)
	}

	dreq := httptest.NewRequest(http.MethodDelete, "/api/v1/favorites/"+fav.ID, nil)
	dresp, err := app.Test(dreq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dresp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", dresp.StatusCode)
	}
}

func TestFavoritesCapacityOverHTTP(t *testing.T) {
	app := newTestApp(t, nil)

	for i := 0; i < favorites.MaxFavorites; i++ {
		body := fmt.Sprintf(`{"lat": %d, "lon": 127, "nickname": "지역 %d"}`, 30+i, i)
		if resp := postJSON(t, app, "/api/v1/favorites", body); resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected status 201 on add %d, got %d", i, resp.StatusCode)
		}
	}

	resp := postJSON(t, app, "/api/v1/favorites", `{"lat": 50, "lon": 127, "nickname": "초과"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422 at capacity, got %d", resp.StatusCode)
	}
}

func TestFavoritesNicknameValidation(t *testing.T) {
	app := newTestApp(t, nil)

	// Whitespace-only nickname trims to empty and fails validation.
	resp := postJSON(t, app, "/api/v1/favorites", `{"lat": 37.5665, "lon": 126.978, "nickname": "   "}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for blank nickname, got %d", resp.StatusCode)
	}

	long := strings.Repeat("가", 31)
	resp = postJSON(t, app, "/api/v1/favorites", `{"lat": 37.5665, "lon": 126.978, "nickname": "`+long+`"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for over-long nickname, got %d", resp.StatusCode)
	}
}

func TestDistrictSearchEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/districts?q="+url.QueryEscape("종로"), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body struct {
		Districts []string `json:"districts"`
		Total     int      `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Total == 0 {
		t.Error("expected matches for 종로")
	}
}

func TestReverseGeocodeNeverErrors(t *testing.T) {
	// The test chain has no resolvers, so this exercises the deepest
	// fallback tier.
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/geocode/reverse?lat=37.5665&lon=126.978", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Name != geocode.Placeholder {
		t.Errorf("expected placeholder name, got %s", body.Name)
	}
}

func TestSettingsEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	preq := httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(`{"unit": "F", "timeFormat": "12h"}`))
	preq.Header.Set("Content-Type", "application/json")
	presp, err := app.Test(preq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if presp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", presp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body struct {
		Unit       string `json:"unit"`
		TimeFormat string `json:"timeFormat"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Unit != "F" || body.TimeFormat != "12h" {
		t.Errorf("unexpected settings %+v", body)
	}

	// Invalid unit is rejected.
	preq = httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(`{"unit": "K"}`))
	preq.Header.Set("Content-Type", "application/json")
	presp, err = app.Test(preq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if presp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for invalid unit, got %d", presp.StatusCode)
	}
}
