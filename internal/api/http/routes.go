package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/cleanup-weather/internal/weather"
)

var validate = validator.New()

// WeatherService is what the handlers need from weather.Service.
type WeatherService interface {
	Refresh(ctx context.Context) (weather.Report, bool)
	LatestOrRefresh(ctx context.Context) weather.Report
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service WeatherService, thresholds weather.Thresholds, cycleTimeout time.Duration) {
	v1 := app.Group("/api/v1")

	latest := func(c *fiber.Ctx) weather.Report {
		ctx, cancel := context.WithTimeout(c.UserContext(), cycleTimeout)
		defer cancel()
		return service.LatestOrRefresh(ctx)
	}

	v1.Get("/weather", func(c *fiber.Ctx) error {
		return c.JSON(latest(c))
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		return c.JSON(latest(c).Current)
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		r := latest(c)
		return c.JSON(fiber.Map{
			"generation": r.Generation,
			"days":       r.Forecast,
		})
	})

	v1.Post("/weather/refresh", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), cycleTimeout)
		defer cancel()

		report, accepted := service.Refresh(ctx)
		return c.JSON(fiber.Map{
			"accepted": accepted,
			"report":   report,
		})
	})

	v1.Get("/suitability", func(c *fiber.Ctx) error {
		q, err := parseSuitabilityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(weather.Classify(q.toInput(), thresholds))
	})
}

// suitabilityQuery holds ad hoc conditions to classify.
type suitabilityQuery struct {
	Temperature *float64 `validate:"required,gte=-50,lte=60"`
	Humidity    *float64 `validate:"required,gte=0,lte=100"`
	WindSpeed   *float64 `validate:"required,gte=0,lte=300"`
	UVIndex     float64  `validate:"gte=0,lte=20"`
	Forecast    string   `validate:"max=200"`
}

func (q suitabilityQuery) toInput() weather.SuitabilityInput {
	return weather.SuitabilityInput{
		Temperature:  *q.Temperature,
		Humidity:     *q.Humidity,
		WindSpeed:    *q.WindSpeed,
		UVIndex:      q.UVIndex,
		ForecastText: q.Forecast,
	}
}

func parseSuitabilityQuery(c *fiber.Ctx) (suitabilityQuery, error) {
	var q suitabilityQuery
	var err error

	if q.Temperature, err = parseOptionalFloat(c, "temperature"); err != nil {
		return q, err
	}
	if q.Humidity, err = parseOptionalFloat(c, "humidity"); err != nil {
		return q, err
	}
	if q.WindSpeed, err = parseOptionalFloat(c, "windSpeed"); err != nil {
		return q, err
	}
	uv, err := parseOptionalFloat(c, "uvIndex")
	if err != nil {
		return q, err
	}
	if uv != nil {
		q.UVIndex = *uv
	}
	q.Forecast = c.Query("forecast")

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func parseOptionalFloat(c *fiber.Ctx, key string) (*float64, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.New("invalid " + key + ": must be a number")
	}
	return &f, nil
}
