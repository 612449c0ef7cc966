package handlers

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

// UploadHandler converts uploaded images into inline data-URL blobs. Nothing
// is written to disk or object storage.
type UploadHandler struct {
	maxImageMB int
}

func NewUploadHandler(maxImageMB int) *UploadHandler {
	return &UploadHandler{maxImageMB: maxImageMB}
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	if _, err := identity.GetUserID(c); err != nil {
		return unauthorized(c)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "No files uploaded")
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return badRequest(c, "No files uploaded")
	}

	files := make([]models.ImageBlob, 0, len(headers))
	var rejected []dto.RejectedFile
	for _, fh := range headers {
		check := validation.ValidateImageFile(&validation.ImageFile{
			Name: fh.Filename,
			Size: fh.Size,
			Type: fh.Header.Get("Content-Type"),
		}, h.maxImageMB)
		if !check.Valid {
			rejected = append(rejected, dto.RejectedFile{Name: fh.Filename, Reason: check.Error})
			continue
		}

		blob, err := inlineBlob(fh)
		if err != nil {
			return respondError(c, "upload.read", err, "file", fh.Filename)
		}
		files = append(files, blob)
	}

	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadResponse{
			Success:  false,
			Files:    files,
			Rejected: rejected,
			Message:  "No valid image files were uploaded",
		})
	}

	return c.JSON(dto.UploadResponse{
		Success:  true,
		Files:    files,
		Rejected: rejected,
		Message:  fmt.Sprintf("%d file(s) uploaded successfully", len(files)),
	})
}

func inlineBlob(fh *multipart.FileHeader) (models.ImageBlob, error) {
	f, err := fh.Open()
	if err != nil {
		return models.ImageBlob{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return models.ImageBlob{}, fmt.Errorf("read upload: %w", err)
	}

	mime := fh.Header.Get("Content-Type")
	return models.ImageBlob{
		Name: fh.Filename,
		Data: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw),
		Size: fh.Size,
		Type: mime,
	}, nil
}
