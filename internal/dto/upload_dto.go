package dto

import "github.com/ahmetcoskunkizilkaya/medassist-backend/internal/models"

type RejectedFile struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type UploadResponse struct {
	Success  bool               `json:"success"`
	Files    []models.ImageBlob `json:"files"`
	Rejected []RejectedFile     `json:"rejected,omitempty"`
	Message  string             `json:"message"`
}
