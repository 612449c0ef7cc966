package handlers

import (
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FormHandler struct {
	forms *services.FormService
}

func NewFormHandler(forms *services.FormService) *FormHandler {
	return &FormHandler{forms: forms}
}

func (h *FormHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile := identity.GetProfile(c)
	user := models.User{ID: userID, Email: profile.Email}
	if profile.FirstName != "" {
		user.FirstName = &profile.FirstName
	}
	if profile.LastName != "" {
		user.LastName = &profile.LastName
	}

	form, err := h.forms.Create(c.UserContext(), user, req)
	if err != nil {
		return respondError(c, "forms.create", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateFormResponse{
		Success: true,
		FormID:  form.ID,
		Message: "Medical form submitted successfully",
	})
}

func (h *FormHandler) List(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	forms, err := h.forms.List(c.UserContext(), userID)
	if err != nil {
		return respondError(c, "forms.list", err)
	}
	return c.JSON(dto.FormListResponse{Forms: forms})
}
