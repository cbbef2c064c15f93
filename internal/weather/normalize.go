package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const reportTemplate = "The weather in %s, %s is %s with a temperature of %s degrees Celsius, " +
	"humidity of %s%%, wind speed of %s m/s, and cloud cover of %s%%."

// zero is the default for optional numeric keys.
const zero = json.Number("0")

// Normalize extracts the plant-relevant fields from a raw current-conditions payload.
// A missing required key yields *MissingDataError naming the key.
func Normalize(payload []byte) (NormalizedWeather, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return NormalizedWeather{}, &UnexpectedError{Err: fmt.Errorf("decode payload: %w", err)}
	}
	obj, ok := root.(map[string]any)
	if !ok {
		return NormalizedWeather{}, &UnexpectedError{Err: fmt.Errorf("payload is not a JSON object")}
	}

	p := &extractor{root: obj}
	var w NormalizedWeather

	w.Location.City = p.str("name")
	w.Location.Country = p.str("sys.country")
	w.Location.Coordinates.Lat = p.num("coord.lat")
	w.Location.Coordinates.Lon = p.num("coord.lon")

	w.Temperature.CurrentC = p.num("main.temp")
	w.Temperature.FeelsLikeC = p.num("main.feels_like")
	w.Temperature.MinC = p.num("main.temp_min")
	w.Temperature.MaxC = p.num("main.temp_max")
	w.HumidityPercent = p.num("main.humidity")
	w.PressureHpa = p.num("main.pressure")

	w.Wind.SpeedMS = p.num("wind.speed")
	w.Wind.DirectionDeg = p.optNum("wind.deg")
	w.Wind.GustMS = p.optNum("wind.gust")

	w.Clouds.CoveragePercent = p.num("clouds.all")
	w.VisibilityM = p.optNum("visibility")

	if cond := p.firstCondition(); cond != nil {
		w.Weather.Main = p.strIn(cond, "weather[0]", "main")
		w.Weather.Description = p.strIn(cond, "weather[0]", "description")
		w.Weather.Icon = p.strIn(cond, "weather[0]", "icon")
	}

	w.Precipitation.Rain1hMM = p.optNum("rain.1h")
	w.Precipitation.Rain3hMM = p.optNum("rain.3h")
	w.Precipitation.Snow1hMM = p.optNum("snow.1h")
	w.Precipitation.Snow3hMM = p.optNum("snow.3h")

	if p.err != nil {
		return NormalizedWeather{}, p.err
	}
	return w, nil
}

// Summarize renders the one-sentence report for a normalized record.
func Summarize(w NormalizedWeather) string {
	return fmt.Sprintf(reportTemplate,
		w.Location.City,
		w.Location.Country,
		capitalize(w.Weather.Description),
		w.Temperature.CurrentC,
		w.HumidityPercent,
		w.Wind.SpeedMS,
		w.Clouds.CoveragePercent,
	)
}

// BuildResult normalizes payload and wraps the outcome as a Result.
func BuildResult(payload []byte) Result {
	w, err := Normalize(payload)
	if err != nil {
		return errorResult(ErrorMessage(err))
	}
	return successResult(Summarize(w))
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// extractor walks a decoded payload and keeps the first error it hits,
// so extraction reads top to bottom without per-field error checks.
type extractor struct {
	root map[string]any
	err  error
}

func (p *extractor) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// lookup resolves a dotted path. present is false when any segment is absent or null.
func (p *extractor) lookup(path string) (v any, present bool) {
	var cur any = p.root
	parts := strings.Split(path, ".")
	for i, part := range parts {
		obj, ok := cur.(map[string]any)
		if !ok {
			p.fail(&UnexpectedError{Err: fmt.Errorf("%s is not an object", strings.Join(parts[:i], "."))})
			return nil, false
		}
		cur, ok = obj[part]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

func (p *extractor) str(path string) string {
	if p.err != nil {
		return ""
	}
	v, ok := p.lookup(path)
	if !ok {
		p.fail(&MissingDataError{Key: path})
		return ""
	}
	return asString(p, path, v)
}

func (p *extractor) strIn(obj map[string]any, prefix, key string) string {
	if p.err != nil {
		return ""
	}
	path := prefix + "." + key
	v, ok := obj[key]
	if !ok || v == nil {
		p.fail(&MissingDataError{Key: path})
		return ""
	}
	return asString(p, path, v)
}

func (p *extractor) num(path string) json.Number {
	if p.err != nil {
		return ""
	}
	v, ok := p.lookup(path)
	if !ok {
		p.fail(&MissingDataError{Key: path})
		return ""
	}
	return asNumber(p, path, v)
}

func (p *extractor) optNum(path string) json.Number {
	if p.err != nil {
		return ""
	}
	v, ok := p.lookup(path)
	if !ok {
		return zero
	}
	return asNumber(p, path, v)
}

func (p *extractor) firstCondition() map[string]any {
	if p.err != nil {
		return nil
	}
	v, ok := p.lookup("weather")
	if !ok {
		p.fail(&MissingDataError{Key: "weather"})
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		p.fail(&UnexpectedError{Err: fmt.Errorf("weather is not a list")})
		return nil
	}
	if len(items) == 0 {
		p.fail(&MissingDataError{Key: "weather[0]"})
		return nil
	}
	first, ok := items[0].(map[string]any)
	if !ok {
		p.fail(&UnexpectedError{Err: fmt.Errorf("weather[0] is not an object")})
		return nil
	}
	return first
}

func asString(p *extractor, path string, v any) string {
	s, ok := v.(string)
	if !ok {
		p.fail(&UnexpectedError{Err: fmt.Errorf("%s is not a string", path)})
		return ""
	}
	return s
}

func asNumber(p *extractor, path string, v any) json.Number {
	n, ok := v.(json.Number)
	if !ok {
		p.fail(&UnexpectedError{Err: fmt.Errorf("%s is not a number", path)})
		return ""
	}
	return n
}
