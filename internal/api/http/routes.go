package httpapi

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/weatherpocket/weatherpocket/internal/district"
	"github.com/weatherpocket/weatherpocket/internal/favorites"
	"github.com/weatherpocket/weatherpocket/internal/geocode"
	"github.com/weatherpocket/weatherpocket/internal/settings"
	"github.com/weatherpocket/weatherpocket/internal/weather"
)

var validate = validator.New()

// Deps bundles everything the HTTP handlers touch.
type Deps struct {
	Weather   *weather.Service
	Favorites *favorites.Store
	Settings  *settings.Store
	Districts *district.Index
	Geocoder  *geocode.OpenWeatherClient
	Reverse   *geocode.Chain
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		coord, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshot, err := deps.Weather.GetWeather(c.UserContext(), coord.Lat, coord.Lon)
		if err != nil {
			if errors.Is(err, weather.ErrWeatherUnavailable) {
				return fiber.NewError(fiber.StatusBadGateway, "weather data unavailable, try another location")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}

		return c.JSON(snapshot)
	})

	v1.Get("/districts", func(c *fiber.Ctx) error {
		matches := deps.Districts.Search(c.Query("q"))
		return c.JSON(fiber.Map{
			"districts": matches,
			"total":     len(matches),
		})
	})

	v1.Get("/geocode", func(c *fiber.Ctx) error {
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			return fiber.NewError(fiber.StatusBadRequest, "q query parameter is required")
		}

		result, err := deps.Geocoder.Forward(c.UserContext(), query)
		if err != nil {
			if errors.Is(err, geocode.ErrNoMatch) {
				return fiber.NewError(fiber.StatusNotFound, "no location found for query")
			}
			return fiber.NewError(fiber.StatusBadGateway, "geocoding failed")
		}
		return c.JSON(result)
	})

	// Reverse geocoding never errors: it degrades through the provider
	// chain down to a static placeholder.
	v1.Get("/geocode/reverse", func(c *fiber.Ctx) error {
		coord, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		name := deps.Reverse.Resolve(c.UserContext(), coord.Lat, coord.Lon)
		return c.JSON(fiber.Map{"name": name})
	})

	registerFavoriteRoutes(v1, deps)
	registerSettingsRoutes(v1, deps)
}

func registerFavoriteRoutes(v1 fiber.Router, deps Deps) {
	v1.Get("/favorites", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"favorites": deps.Favorites.List(),
			"isFull":    deps.Favorites.IsFull(),
		})
	})

	v1.Get("/favorites/contains", func(c *fiber.Ctx) error {
		coord, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{
			"isFavorite": deps.Favorites.IsFavoriteCoord(coord.Lat, coord.Lon),
		})
	})

	v1.Post("/favorites", func(c *fiber.Ctx) error {
		var req addFavoriteRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		// Nickname trimming and the non-empty check live at this layer;
		// the store takes them as a precondition.
		req.Nickname = strings.TrimSpace(req.Nickname)
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		fav, err := deps.Favorites.Add(req.Lat, req.Lon, req.Nickname)
		if err != nil {
			if errors.Is(err, favorites.ErrDuplicate) || errors.Is(err, favorites.ErrCapacity) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to add favorite")
		}

		return c.Status(fiber.StatusCreated).JSON(fav)
	})

	v1.Patch("/favorites/:id", func(c *fiber.Ctx) error {
		var req updateNicknameRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		req.Nickname = strings.TrimSpace(req.Nickname)
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		deps.Favorites.UpdateNickname(c.Params("id"), req.Nickname)
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Delete("/favorites/:id", func(c *fiber.Ctx) error {
		deps.Favorites.Remove(c.Params("id"))
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Delete("/favorites", func(c *fiber.Ctx) error {
		deps.Favorites.ClearAll()
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func registerSettingsRoutes(v1 fiber.Router, deps Deps) {
	v1.Get("/settings", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"unit":       deps.Settings.Unit(),
			"timeFormat": deps.Settings.TimeFormat(),
		})
	})

	v1.Put("/settings", func(c *fiber.Ctx) error {
		var req updateSettingsRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if req.Unit != "" {
			deps.Settings.SetUnit(settings.Unit(req.Unit))
		}
		if req.TimeFormat != "" {
			deps.Settings.SetTimeFormat(settings.TimeFormat(req.TimeFormat))
		}

		return c.JSON(fiber.Map{
			"unit":       deps.Settings.Unit(),
			"timeFormat": deps.Settings.TimeFormat(),
		})
	})
}

// coordQuery holds validated lat/lon query parameters.
type coordQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func parseCoordQuery(c *fiber.Ctx) (coordQuery, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return coordQuery{}, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return coordQuery{}, errors.New("invalid lat value")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return coordQuery{}, errors.New("invalid lon value")
	}

	q := coordQuery{Lat: lat, Lon: lon}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

type addFavoriteRequest struct {
	Lat      float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon      float64 `json:"lon" validate:"gte=-180,lte=180"`
	Nickname string  `json:"nickname" validate:"required,min=1,max=30"`
}

type updateNicknameRequest struct {
	Nickname string `json:"nickname" validate:"required,min=1,max=30"`
}

type updateSettingsRequest struct {
	Unit       string `json:"unit" validate:"omitempty,oneof=C F"`
	TimeFormat string `json:"timeFormat" validate:"omitempty,oneof=24h 12h"`
}
