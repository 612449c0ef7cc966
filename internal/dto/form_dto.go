package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/models"
	"github.com/google/uuid"
)

// AgeInput holds the age exactly as submitted, from either a JSON number or a
// string, so malformed values reach validation instead of failing the decode.
type AgeInput string

func (a *AgeInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AgeInput(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("age must be a number or a string: %w", err)
		}
		*a = AgeInput(n.String())
	}
	return nil
}

func (a AgeInput) String() string { return string(a) }

// CreateFormRequest accepts age as either a JSON number or a string.
type CreateFormRequest struct {
	Name                 string             `json:"name"`
	Age                  AgeInput           `json:"age"`
	Gender               string             `json:"gender"`
	Weight               string             `json:"weight"`
	Height               string             `json:"height"`
	BloodType            string             `json:"bloodType"`
	CurrentComplications string             `json:"currentComplications"`
	BreakfastDetails     string             `json:"breakfastDetails"`
	LunchDetails         string             `json:"lunchDetails"`
	DinnerDetails        string             `json:"dinnerDetails"`
	Medications          string             `json:"medications"`
	Allergies            string             `json:"allergies"`
	ChronicConditions    string             `json:"chronicConditions"`
	UploadedImages       []models.ImageBlob `json:"uploadedImages"`
}

type CreateFormResponse struct {
	Success bool      `json:"success"`
	FormID  uuid.UUID `json:"formId"`
	Message string    `json:"message"`
}

type FormSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type FormListResponse struct {
	Forms []FormSummary `json:"forms"`
}

type HealthStatusResponse struct {
	FormID            uuid.UUID  `json:"formId"`
	Name              string     `json:"name"`
	Age               int        `json:"age"`
	BMI               *float64   `json:"bmi"`
	BMICategory       string     `json:"bmiCategory,omitempty"`
	Medications       []string   `json:"medications"`
	Allergies         string     `json:"allergies,omitempty"`
	ConversationCount int        `json:"conversationCount"`
	LastActivity      *time.Time `json:"lastActivity"`
}
