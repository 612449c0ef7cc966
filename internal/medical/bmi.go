package medical

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrOutOfRange = errors.New("measurement out of range")

// BMI computes weight/height² from the form's free-text fields, rounded half
// away from zero to one decimal place.
func BMI(weight, height string) (float64, error) {
	w, err := ParseWeight(weight)
	if err != nil {
		return 0, err
	}
	h, err := ParseHeight(height)
	if err != nil {
		return 0, err
	}

	kg, err := w.Kilograms()
	if err != nil {
		return 0, err
	}
	cm, err := h.Centimeters()
	if err != nil {
		return 0, err
	}
	if kg <= 0 || cm <= 0 {
		return 0, fmt.Errorf("%w: weight %.1fkg height %.1fcm", ErrOutOfRange, kg, cm)
	}

	meters := decimal.NewFromFloat(cm).Div(decimal.NewFromInt(100))
	bmi := decimal.NewFromFloat(kg).Div(meters.Mul(meters)).Round(1)
	return bmi.InexactFloat64(), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return ""
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}
