package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/plant-weather/internal/plants"
	"github.com/i474232898/plant-weather/internal/store"
	"github.com/i474232898/plant-weather/internal/weather"
)

var validate = validator.New()

// Reporter is the part of weather.Service the handlers need.
type Reporter interface {
	Report(ctx context.Context, loc weather.Location) (*weather.NormalizedWeather, weather.Result)
	GetLatest(loc weather.Location) (weather.Snapshot, error)
	GetRange(loc weather.Location, from, to time.Time) ([]weather.Snapshot, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service Reporter) {
	v1 := app.Group("/api/v1")

	// Live report. The result is in-band, so provider failures still answer 200.
	v1.Get("/weather/plants", func(c *fiber.Ctx) error {
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		_, res := service.Report(c.UserContext(), locReq.toLocation())
		return c.JSON(res)
	})

	v1.Get("/weather/latest", func(c *fiber.Ctx) error {
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshot, err := service.GetLatest(locReq.toLocation())
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather report for requested location")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather report")
		}

		return c.JSON(snapshot)
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := req.Location.toLocation()
		snapshots, err := service.GetRange(loc, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather history")
		}

		return c.JSON(fiber.Map{
			"location":  loc,
			"from":      req.From,
			"to":        req.To,
			"snapshots": snapshots,
		})
	})

	v1.Get("/plants/instructions", func(c *fiber.Ctx) error {
		var req careQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := req.Location.toLocation()
		w, res := service.Report(c.UserContext(), loc)
		if !res.OK() {
			return c.JSON(fiber.Map{
				"plant":   req.Plant,
				"weather": res,
				"care":    nil,
			})
		}

		care := plants.GenerateCareInstructionsWithWeather(req.Plant, res.Report, w)
		var notes []string
		if w != nil {
			notes = plants.Advisories(*w)
		}
		return c.JSON(fiber.Map{
			"plant":      req.Plant,
			"weather":    res,
			"care":       care,
			"advisories": notes,
		})
	})
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City    string `validate:"required"`
	Country string `validate:"omitempty,len=2,alpha"`
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location{
		City:    l.City,
		Country: l.Country,
	}
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.City = c.Query("city")
	q.Country = c.Query("country")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// careQuery holds query parameters for the plant instructions endpoint.
type careQuery struct {
	Plant    string `validate:"required"`
	Location locationQuery
}

func (q *careQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	q.Location = loc
	q.Plant = c.Query("plant")
	return validate.Struct(q)
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location locationQuery
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	h.Location = loc

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
