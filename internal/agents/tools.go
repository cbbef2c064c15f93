package agents

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"github.com/i474232898/plant-weather/internal/plants"
	"github.com/i474232898/plant-weather/internal/weather"
)

const (
	WeatherToolName = "get_weather_for_plants"
	CareToolName    = "generate_plant_care_instructions"
)

// WeatherReporter is the part of weather.Service the tools need.
type WeatherReporter interface {
	GetWeatherForPlants(ctx context.Context, city, countryCode string) weather.Result
}

type WeatherArgs struct {
	City        string `json:"city" jsonschema:"name of the city, for example Lima"`
	CountryCode string `json:"country_code,omitempty" jsonschema:"optional ISO 3166-1 alpha-2 country code, for example PE"`
}

type CareArgs struct {
	PlantName     string `json:"plant_name" jsonschema:"common name of the plant"`
	WeatherReport string `json:"weather_report" jsonschema:"weather report returned by get_weather_for_plants"`
}

// Toolset exposes the weather and care operations as agent tools.
type Toolset struct {
	reporter WeatherReporter
	logger   zerolog.Logger
}

func NewToolset(reporter WeatherReporter, logger zerolog.Logger) *Toolset {
	return &Toolset{
		reporter: reporter,
		logger:   logger.With().Str("component", "agent-tools").Logger(),
	}
}

// WeatherForPlants answers a get_weather_for_plants call.
func (t *Toolset) WeatherForPlants(ctx context.Context, args WeatherArgs) weather.Result {
	t.logger.Debug().Str("city", args.City).Str("country", args.CountryCode).Msg("tool call: weather")
	return t.reporter.GetWeatherForPlants(ctx, args.City, args.CountryCode)
}

// CareInstructions answers a generate_plant_care_instructions call.
func (t *Toolset) CareInstructions(args CareArgs) plants.CareResult {
	t.logger.Debug().Str("plant", args.PlantName).Msg("tool call: care instructions")
	return plants.GenerateCareInstructions(args.PlantName, args.WeatherReport)
}

// WeatherTool wraps WeatherForPlants as a function tool.
func (t *Toolset) WeatherTool() (tool.Tool, error) {
	wt, err := functiontool.New(functiontool.Config{
		Name: WeatherToolName,
		Description: "Returns a one-sentence report of current weather conditions relevant to plant care " +
			"for a city, with an optional country code. The result has a status of success or error.",
	}, func(ctx tool.Context, args WeatherArgs) (weather.Result, error) {
		return t.WeatherForPlants(ctx, args), nil
	})
	if err != nil {
		return nil, fmt.Errorf("create %s tool: %w", WeatherToolName, err)
	}
	return wt, nil
}

// CareTool wraps CareInstructions as a function tool.
func (t *Toolset) CareTool() (tool.Tool, error) {
	ct, err := functiontool.New(functiontool.Config{
		Name:        CareToolName,
		Description: "Generates care instructions for a plant given a weather report.",
	}, func(_ tool.Context, args CareArgs) (plants.CareResult, error) {
		return t.CareInstructions(args), nil
	})
	if err != nil {
		return nil, fmt.Errorf("create %s tool: %w", CareToolName, err)
	}
	return ct, nil
}
