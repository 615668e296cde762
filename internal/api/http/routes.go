package httpapi

import (
	"bytes"
	"errors"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-report/internal/store"
	"github.com/i474232898/weather-report/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/sources", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"sources": service.Sources()})
	})

	v1.Get("/reports/:source/summary", func(c *fiber.Ctx) error {
		name, err := sourceParam(c)
		if err != nil {
			return err
		}
		text, err := service.Summary(name)
		if err != nil {
			return toHTTPError(err)
		}
		return sendText(c, text)
	})

	v1.Get("/reports/:source/daily", func(c *fiber.Ctx) error {
		name, err := sourceParam(c)
		if err != nil {
			return err
		}
		text, err := service.DailySummary(name)
		if err != nil {
			return toHTTPError(err)
		}
		return sendText(c, text)
	})

	v1.Get("/reports/:source/records", func(c *fiber.Ctx) error {
		name, err := sourceParam(c)
		if err != nil {
			return err
		}
		snapshot, err := service.GetLatest(name)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(snapshot)
	})

	v1.Get("/reports/:source/history", func(c *fiber.Ctx) error {
		name, err := sourceParam(c)
		if err != nil {
			return err
		}
		history, err := service.GetHistory(name)
		if err != nil {
			return toHTTPError(err)
		}

		items := make([]fiber.Map, 0, len(history))
		for _, snap := range history {
			items = append(items, fiber.Map{
				"id":       snap.ID,
				"loadedAt": snap.LoadedAt,
				"days":     len(snap.Records),
			})
		}
		return c.JSON(fiber.Map{"source": name, "snapshots": items})
	})

	v1.Post("/reports/:source/refresh", func(c *fiber.Ctx) error {
		name, err := sourceParam(c)
		if err != nil {
			return err
		}
		snapshot, err := service.Refresh(c.UserContext(), name)
		if err != nil {
			return toHTTPError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       snapshot.ID,
			"source":   snapshot.Source,
			"loadedAt": snapshot.LoadedAt,
			"days":     len(snapshot.Records),
		})
	})

	v1.Post("/reports/render", func(c *fiber.Ctx) error {
		q := renderQuery{Kind: c.Query("kind", "summary")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		text, err := service.Render(bytes.NewReader(c.Body()), q.Kind == "daily")
		if err != nil {
			return toHTTPError(err)
		}
		return sendText(c, text)
	})

	v1.Get("/convert", func(c *fiber.Ctx) error {
		var q convertQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		celsius := weather.ToCelsius(q.Fahrenheit)
		return c.JSON(fiber.Map{
			"fahrenheit": q.Fahrenheit,
			"celsius":    celsius,
			"label":      weather.FormatTemperature(celsius),
		})
	})
}

// sourceQuery holds the path parameter identifying a source.
type sourceQuery struct {
	Source string `validate:"required,alphanum"`
}

func sourceParam(c *fiber.Ctx) (string, error) {
	q := sourceQuery{Source: c.Params("source")}
	if err := validate.Struct(q); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return q.Source, nil
}

type renderQuery struct {
	Kind string `validate:"oneof=summary daily"`
}

// convertQuery holds query parameters for the convert endpoint.
type convertQuery struct {
	Raw        string `validate:"required"`
	Fahrenheit float64
}

func (q *convertQuery) bind(c *fiber.Ctx) error {
	q.Raw = c.Query("fahrenheit")
	if err := validate.Struct(q); err != nil {
		return err
	}
	f, err := strconv.ParseFloat(q.Raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.New("fahrenheit must be a number")
	}
	q.Fahrenheit = f
	return nil
}

func sendText(c *fiber.Ctx, text string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(text)
}

// toHTTPError maps domain errors onto status codes.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, weather.ErrUnknownSource):
		return fiber.NewError(fiber.StatusNotFound, "unknown source")
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "no weather data loaded for requested source")
	case errors.Is(err, weather.ErrParse),
		errors.Is(err, weather.ErrFormat),
		errors.Is(err, weather.ErrNoData),
		errors.Is(err, weather.ErrEmptyDataset):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build weather report")
	}
}
