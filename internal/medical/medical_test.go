package medical_test

import (
	"errors"
	"math"
	"testing"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/medical"
)

func TestParseWeight(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		kg   float64
		unit medical.Unit
	}{
		{"70 kg", 70, medical.Kilograms},
		{"80kg", 80, medical.Kilograms},
		{"70", 70, medical.Kilograms},
		{"154 lbs", 154 * 0.45359237, medical.Pounds},
		{"72,5 kg", 72.5, medical.Kilograms},
	}
	for _, tc := range cases {
		m, err := medical.ParseWeight(tc.in)
		if err != nil {
			t.Fatalf("parse weight %q: %v", tc.in, err)
		}
		if m.Unit != tc.unit {
			t.Fatalf("%q: expected unit %s, got %s", tc.in, tc.unit, m.Unit)
		}
		kg, err := m.Kilograms()
		if err != nil {
			t.Fatalf("convert %q: %v", tc.in, err)
		}
		if math.Abs(kg-tc.kg) > 0.001 {
			t.Fatalf("%q: expected %.3f kg, got %.3f", tc.in, tc.kg, kg)
		}
	}
}

func TestParseWeightRejectsUnknownUnitAndMissingNumber(t *testing.T) {
	t.Parallel()
	if _, err := medical.ParseWeight("70 stone"); !errors.Is(err, medical.ErrUnknownUnit) {
		t.Fatalf("expected unknown unit error, got %v", err)
	}
	if _, err := medical.ParseWeight("heavy"); !errors.Is(err, medical.ErrNoNumber) {
		t.Fatalf("expected no number error, got %v", err)
	}
}

func TestParseHeight(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		cm   float64
		unit medical.Unit
	}{
		{"173 cm", 173, medical.Centimeters},
		{"180cm", 180, medical.Centimeters},
		{"180", 180, medical.Centimeters},
		{"1.73m", 173, medical.Meters},
		{`5'10"`, 177.8, medical.FeetInches},
		{"5 ft 10 in", 177.8, medical.FeetInches},
		{"6ft", 182.88, medical.FeetInches},
		{"5' 10", 177.8, medical.FeetInches},
		{"70 in", 177.8, medical.Inches},
	}
	for _, tc := range cases {
		m, err := medical.ParseHeight(tc.in)
		if err != nil {
			t.Fatalf("parse height %q: %v", tc.in, err)
		}
		if m.Unit != tc.unit {
			t.Fatalf("%q: expected unit %s, got %s", tc.in, tc.unit, m.Unit)
		}
		cm, err := m.Centimeters()
		if err != nil {
			t.Fatalf("convert %q: %v", tc.in, err)
		}
		if math.Abs(cm-tc.cm) > 0.01 {
			t.Fatalf("%q: expected %.2f cm, got %.2f", tc.in, tc.cm, cm)
		}
	}
}

func TestBMIIsDeterministic(t *testing.T) {
	t.Parallel()
	first, err := medical.BMI("70 kg", "173 cm")
	if err != nil {
		t.Fatalf("compute bmi: %v", err)
	}
	if first != 23.4 {
		t.Fatalf("expected 23.4, got %v", first)
	}
	for i := 0; i < 5; i++ {
		again, err := medical.BMI("70 kg", "173 cm")
		if err != nil || again != first {
			t.Fatalf("expected repeatable result %v, got %v (%v)", first, again, err)
		}
	}
}

func TestBMIImperial(t *testing.T) {
	t.Parallel()
	bmi, err := medical.BMI("176 lbs", `5'11"`)
	if err != nil {
		t.Fatalf("compute bmi: %v", err)
	}
	if bmi != 24.5 {
		t.Fatalf("expected 24.5, got %v", bmi)
	}
}

func TestBMIRejectsZero(t *testing.T) {
	t.Parallel()
	if _, err := medical.BMI("0 kg", "170 cm"); !errors.Is(err, medical.ErrOutOfRange) {
		t.Fatalf("expected out of range error, got %v", err)
	}
}

func TestBMICategory(t *testing.T) {
	t.Parallel()
	cases := map[float64]string{
		17.9: "Underweight",
		18.5: "Normal weight",
		24.9: "Normal weight",
		25:   "Overweight",
		30:   "Obese",
		0:    "",
	}
	for bmi, want := range cases {
		if got := medical.BMICategory(bmi); got != want {
			t.Fatalf("bmi %v: expected %q, got %q", bmi, want, got)
		}
	}
}

func TestParseMedications(t *testing.T) {
	t.Parallel()
	meds := medical.ParseMedications("Metformin 500mg, Lisinopril\n\n  aspirin ,")
	want := []string{"Metformin 500mg", "Lisinopril", "aspirin"}
	if len(meds) != len(want) {
		t.Fatalf("expected %v, got %v", want, meds)
	}
	for i := range want {
		if meds[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, meds)
		}
	}
	if got := medical.ParseMedications("   "); len(got) != 0 {
		t.Fatalf("expected no medications, got %v", got)
	}
}

func TestDetectEmergency(t *testing.T) {
	t.Parallel()
	if !medical.DetectEmergency("I have sudden CHEST PAIN and feel dizzy") {
		t.Fatalf("expected emergency keyword to be detected")
	}
	if medical.DetectEmergency("I have a mild headache") {
		t.Fatalf("did not expect emergency for a headache")
	}
}
