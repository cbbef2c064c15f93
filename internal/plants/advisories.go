package plants

import (
	"encoding/json"

	"github.com/i474232898/plant-weather/internal/weather"
)

const (
	frostC        = 5.0
	heatC         = 30.0
	windMS        = 10.0
	gustMS        = 15.0
	dryPercent    = 30.0
	humidPercent  = 85.0
	overcastCover = 80.0
)

// Advisories derives short weather-driven care notes from a normalized record.
// Values the provider sent in an unparseable form are ignored.
func Advisories(w weather.NormalizedWeather) []string {
	var notes []string

	rain := sum(w.Precipitation.Rain1hMM, w.Precipitation.Rain3hMM)
	snow := sum(w.Precipitation.Snow1hMM, w.Precipitation.Snow3hMM)
	switch {
	case snow > 0:
		notes = append(notes, "Snow is falling: bring potted plants indoors and cover beds.")
	case rain > 0:
		notes = append(notes, "It has been raining: skip watering until the topsoil dries out.")
	}

	if t, ok := number(w.Temperature.MinC); ok && t < frostC {
		notes = append(notes, "Frost risk: protect tender plants overnight.")
	}
	if t, ok := number(w.Temperature.MaxC); ok && t > heatC {
		notes = append(notes, "Hot day: water early in the morning and give afternoon shade.")
	}

	speed, _ := number(w.Wind.SpeedMS)
	gust, _ := number(w.Wind.GustMS)
	if speed > windMS || gust > gustMS {
		notes = append(notes, "Strong wind: stake tall plants and move pots to shelter.")
	}

	if h, ok := number(w.HumidityPercent); ok {
		switch {
		case h < dryPercent:
			notes = append(notes, "Dry air: mist leaves of humidity-loving plants.")
		case h > humidPercent:
			notes = append(notes, "Very humid: keep foliage dry and improve airflow to avoid mildew.")
		}
	}

	if c, ok := number(w.Clouds.CoveragePercent); ok && c > overcastCover {
		notes = append(notes, "Heavy cloud cover: sun-loving plants will grow slower today.")
	}

	return notes
}

func number(n json.Number) (float64, bool) {
	if n == "" {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

func sum(ns ...json.Number) float64 {
	var total float64
	for _, n := range ns {
		if f, ok := number(n); ok {
			total += f
		}
	}
	return total
}
