// Package medical derives metrics from the free-text fields of a medical form.
package medical

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Unit string

const (
	Kilograms   Unit = "kg"
	Pounds      Unit = "lb"
	Centimeters Unit = "cm"
	Meters      Unit = "m"
	Inches      Unit = "in"
	FeetInches  Unit = "ft_in"
)

const (
	poundsToKg   = 0.45359237
	inchesToCm   = 2.54
	inchesInFoot = 12
)

var (
	ErrNoNumber    = errors.New("no numeric value")
	ErrUnknownUnit = errors.New("unsupported unit")
)

// Measurement is a parsed weight or height. For FeetInches, Value holds the
// total length in inches.
type Measurement struct {
	Value float64
	Unit  Unit
}

var (
	numberPattern  = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	feetPattern    = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:'|’|ft\b|feet\b|foot\b)`)
	inchesPattern  = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:"|”|''|in\b|inch\b|inches\b)`)
	unitWordSuffix = regexp.MustCompile(`^\d+(?:[.,]\d+)?\s*([a-zA-Z]+)`)
)

var weightUnits = map[string]Unit{
	"kg": Kilograms, "kgs": Kilograms, "kilo": Kilograms, "kilos": Kilograms,
	"kilogram": Kilograms, "kilograms": Kilograms,
	"lb": Pounds, "lbs": Pounds, "pound": Pounds, "pounds": Pounds,
}

var heightUnits = map[string]Unit{
	"cm": Centimeters, "cms": Centimeters, "centimeter": Centimeters, "centimeters": Centimeters,
	"m": Meters, "meter": Meters, "meters": Meters, "metre": Meters, "metres": Meters,
	"in": Inches, "inch": Inches, "inches": Inches,
}

// ParseWeight reads values such as "70 kg", "154lbs" or "70". A bare number is
// taken as kilograms.
func ParseWeight(s string) (Measurement, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	value, err := firstNumber(s)
	if err != nil {
		return Measurement{}, fmt.Errorf("parse weight %q: %w", s, err)
	}

	unit, err := unitAfterNumber(s, weightUnits, Kilograms)
	if err != nil {
		return Measurement{}, fmt.Errorf("parse weight %q: %w", s, err)
	}
	return Measurement{Value: value, Unit: unit}, nil
}

// ParseHeight reads values such as "173 cm", "1.73m", "5'10\"", "5 ft 10 in"
// or "70 in". A bare number is taken as centimeters.
func ParseHeight(s string) (Measurement, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if feet := feetPattern.FindStringSubmatch(s); feet != nil {
		ft, err := parseFloat(feet[1])
		if err != nil {
			return Measurement{}, fmt.Errorf("parse height %q: %w", s, err)
		}
		inches := 0.0
		rest := s[strings.Index(s, feet[0])+len(feet[0]):]
		if in := inchesPattern.FindStringSubmatch(rest); in != nil {
			inches, err = parseFloat(in[1])
			if err != nil {
				return Measurement{}, fmt.Errorf("parse height %q: %w", s, err)
			}
		} else if n := numberPattern.FindString(rest); n != "" {
			// "5' 10" with the inch mark left off
			inches, _ = parseFloat(n)
		}
		return Measurement{Value: ft*inchesInFoot + inches, Unit: FeetInches}, nil
	}

	value, err := firstNumber(s)
	if err != nil {
		return Measurement{}, fmt.Errorf("parse height %q: %w", s, err)
	}
	if inchesPattern.MatchString(s) {
		return Measurement{Value: value, Unit: Inches}, nil
	}

	unit, err := unitAfterNumber(s, heightUnits, Centimeters)
	if err != nil {
		return Measurement{}, fmt.Errorf("parse height %q: %w", s, err)
	}
	return Measurement{Value: value, Unit: unit}, nil
}

// Kilograms converts a weight measurement.
func (m Measurement) Kilograms() (float64, error) {
	switch m.Unit {
	case Kilograms:
		return m.Value, nil
	case Pounds:
		return m.Value * poundsToKg, nil
	}
	return 0, fmt.Errorf("%w: %s is not a weight", ErrUnknownUnit, m.Unit)
}

// Centimeters converts a height measurement.
func (m Measurement) Centimeters() (float64, error) {
	switch m.Unit {
	case Centimeters:
		return m.Value, nil
	case Meters:
		return m.Value * 100, nil
	case Inches, FeetInches:
		return m.Value * inchesToCm, nil
	}
	return 0, fmt.Errorf("%w: %s is not a length", ErrUnknownUnit, m.Unit)
}

func firstNumber(s string) (float64, error) {
	n := numberPattern.FindString(s)
	if n == "" {
		return 0, ErrNoNumber
	}
	return parseFloat(n)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func unitAfterNumber(s string, units map[string]Unit, fallback Unit) (Unit, error) {
	loc := numberPattern.FindStringIndex(s)
	m := unitWordSuffix.FindStringSubmatch(s[loc[0]:])
	if m == nil {
		return fallback, nil
	}
	if u, ok := units[m[1]]; ok {
		return u, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownUnit, m[1])
}
