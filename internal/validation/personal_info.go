package validation

import (
	"strings"
)

// PersonalInfo is the mandatory block of a medical form. Age is kept as text so
// that both numeric and string submissions are judged the same way.
type PersonalInfo struct {
	Name   string
	Age    string
	Gender string
	Weight string
	Height string
}

type Result struct {
	IsValid bool
	Errors  map[string]string
}

func ValidatePersonalInfo(info PersonalInfo) Result {
	errs := make(map[string]string)

	if strings.TrimSpace(info.Name) == "" {
		errs["name"] = "Name is required"
	}

	if strings.TrimSpace(info.Age) == "" {
		errs["age"] = "Age is required"
	} else if age, ok := ParseAge(info.Age); !ok || age < 0 || age > 150 {
		errs["age"] = "Please enter a valid age between 0 and 150"
	}

	if strings.TrimSpace(info.Gender) == "" {
		errs["gender"] = "Gender is required"
	}
	if strings.TrimSpace(info.Weight) == "" {
		errs["weight"] = "Weight is required"
	}
	if strings.TrimSpace(info.Height) == "" {
		errs["height"] = "Height is required"
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// ParseAge reads the leading integer of s, so "34", "34.9" and "34 years" all
// yield 34. ok is false when s does not start with a number.
func ParseAge(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		if n > 1_000_000 {
			return 0, false
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
