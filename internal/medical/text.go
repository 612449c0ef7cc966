package medical

import (
	"regexp"
	"strings"
)

var medicationSeparator = regexp.MustCompile(`[,\n]`)

// ParseMedications splits a free-text medication list on commas and newlines.
func ParseMedications(s string) []string {
	meds := make([]string, 0)
	for _, part := range medicationSeparator.Split(s, -1) {
		if part = strings.TrimSpace(part); part != "" {
			meds = append(meds, part)
		}
	}
	return meds
}

var emergencyKeywords = []string{
	"chest pain", "heart attack", "stroke", "unconscious", "bleeding heavily",
	"difficulty breathing", "shortness of breath", "severe pain", "emergency",
	"urgent", "life threatening", "overdose", "poisoning", "severe allergic reaction",
	"anaphylaxis", "seizure", "suicidal", "suicide", "self harm",
}

// DetectEmergency reports whether the text mentions a symptom that warrants
// immediate care.
func DetectEmergency(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range emergencyKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
