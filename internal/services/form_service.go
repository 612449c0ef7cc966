package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/ai"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/validation"
	"github.com/samber/lo"
)

type FormService struct {
	store store.Store
}

func NewFormService(s store.Store) *FormService {
	return &FormService{store: s}
}

// Create validates and stores a medical form, creating the owner's user row
// on first use. Names missing from user are taken from the form's name.
func (s *FormService) Create(ctx context.Context, user models.User, req dto.CreateFormRequest) (*models.MedicalForm, error) {
	info := validation.PersonalInfo{
		Name:   validation.SanitizeInput(req.Name),
		Age:    req.Age.String(),
		Gender: validation.SanitizeInput(req.Gender),
		Weight: validation.SanitizeInput(req.Weight),
		Height: validation.SanitizeInput(req.Height),
	}
	result := validation.ValidatePersonalInfo(info)
	if !result.IsValid {
		return nil, &ValidationError{Fields: result.Errors}
	}
	age, _ := validation.ParseAge(info.Age)

	name := info.Name
	if user.FirstName == nil && user.LastName == nil {
		first, last, _ := strings.Cut(name, " ")
		user.FirstName = optional(first)
		user.LastName = optional(strings.TrimSpace(last))
	}
	if err := s.store.EnsureUser(ctx, &user); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	form := &models.MedicalForm{
		UserID:               user.ID,
		Name:                 name,
		Age:                  age,
		Gender:               info.Gender,
		Weight:               info.Weight,
		Height:               info.Height,
		BloodType:            optional(validation.SanitizeInput(req.BloodType)),
		CurrentComplications: optional(validation.SanitizeMedicalText(req.CurrentComplications)),
		BreakfastDetails:     optional(validation.SanitizeMedicalText(req.BreakfastDetails)),
		LunchDetails:         optional(validation.SanitizeMedicalText(req.LunchDetails)),
		DinnerDetails:        optional(validation.SanitizeMedicalText(req.DinnerDetails)),
		Medications:          optional(validation.SanitizeMedicalText(req.Medications)),
		Allergies:            optional(validation.SanitizeMedicalText(req.Allergies)),
		ChronicConditions:    optional(validation.SanitizeMedicalText(req.ChronicConditions)),
		UploadedImages:       inlineImages(req.UploadedImages),
	}
	if err := s.store.CreateForm(ctx, form); err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}
	return form, nil
}

func (s *FormService) List(ctx context.Context, userID string) ([]dto.FormSummary, error) {
	forms, err := s.store.ListForms(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	return lo.Map(forms, func(f models.MedicalForm, _ int) dto.FormSummary {
		return dto.FormSummary{ID: f.ID, Name: f.Name, Age: f.Age, CreatedAt: f.CreatedAt}
	}), nil
}

// inlineImages keeps only data-URL images of an allowed type.
func inlineImages(images []models.ImageBlob) models.ImageList {
	kept := make(models.ImageList, 0, len(images))
	for _, img := range images {
		part, ok := ai.ParseDataURL(img.Data)
		if !ok || !validation.IsAllowedImageType(part.MimeType) {
			continue
		}
		img.Type = part.MimeType
		img.Name = validation.SanitizeInput(img.Name)
		kept = append(kept, img)
	}
	return kept
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
