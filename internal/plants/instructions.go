// Package plants turns a weather report into plant care guidance.
package plants

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/plant-weather/internal/weather"
)

var errNoPlant = errors.New("plant name is required")

var baseSteps = []string{
	"Check plant's ideal light and water needs.",
	"Water based on soil moisture and recent rain.",
	"Protect from extreme wind or cold as needed.",
}

// CareResult is the in-band outcome of an instructions request.
type CareResult struct {
	Status       weather.Status `json:"status"`
	Instructions string         `json:"instructions,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// GenerateCareInstructions builds a care guide for plantName given a
// human-readable weather report.
func GenerateCareInstructions(plantName, weatherReport string) CareResult {
	return GenerateCareInstructionsWithWeather(plantName, weatherReport, nil)
}

// GenerateCareInstructionsWithWeather is GenerateCareInstructions that adds
// weather notes when the normalized record is available.
func GenerateCareInstructionsWithWeather(plantName, weatherReport string, w *weather.NormalizedWeather) CareResult {
	name := strings.TrimSpace(plantName)
	if name == "" {
		return CareResult{
			Status:       weather.StatusError,
			ErrorMessage: fmt.Sprintf("Failed to generate instructions: %v", errNoPlant),
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Plant: %s\n", cases.Title(language.English).String(name))
	fmt.Fprintf(&b, "Weather: %s\n\n", weatherReport)
	b.WriteString("Care Instructions:\n")
	for _, step := range baseSteps {
		fmt.Fprintf(&b, "- %s\n", step)
	}
	if w != nil {
		if notes := Advisories(*w); len(notes) > 0 {
			b.WriteString("\nWeather Notes:\n")
			for _, note := range notes {
				fmt.Fprintf(&b, "- %s\n", note)
			}
		}
	}
	b.WriteString("\nHappy growing! 🌱")

	return CareResult{Status: weather.StatusSuccess, Instructions: b.String()}
}
