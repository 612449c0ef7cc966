package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/medical"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/store"
)

type HealthStatusService struct {
	store store.Store
}

func NewHealthStatusService(s store.Store) *HealthStatusService {
	return &HealthStatusService{store: s}
}

// Get summarizes the user's most recent form. BMI is omitted when weight or
// height cannot be interpreted.
func (s *HealthStatusService) Get(ctx context.Context, userID string) (*dto.HealthStatusResponse, error) {
	form, err := s.store.LatestForm(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrFormNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load latest form: %w", err)
	}

	count, last, err := s.store.ConversationActivity(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load conversation activity: %w", err)
	}

	status := &dto.HealthStatusResponse{
		FormID:            form.ID,
		Name:              form.Name,
		Age:               form.Age,
		Medications:       medical.ParseMedications(models.Text(form.Medications)),
		Allergies:         models.Text(form.Allergies),
		ConversationCount: int(count),
		LastActivity:      last,
	}
	if bmi, err := medical.BMI(form.Weight, form.Height); err == nil {
		status.BMI = &bmi
		status.BMICategory = medical.BMICategory(bmi)
	}
	return status, nil
}
