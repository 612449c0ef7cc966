// Package validation holds the side-effect-free checks applied to user input
// before it reaches the services or the database.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxInputLength       = 10000
	MaxMedicalTextLength = 5000
	MaxFilenameLength    = 255
	DefaultMaxImageMB    = 10
)

var (
	uuidPattern    = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	userIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{1,255}$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	controlPattern = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// AllowedImageTypes lists the MIME types accepted for uploads.
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// SanitizeInput trims, drops angle brackets and caps the text at MaxInputLength characters.
func SanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	return truncate(s, MaxInputLength)
}

// SanitizeMedicalText trims, caps the text at MaxMedicalTextLength characters and
// strips ASCII control characters other than tab, newline and carriage return.
func SanitizeMedicalText(s string) string {
	s = truncate(strings.TrimSpace(s), MaxMedicalTextLength)
	return controlPattern.ReplaceAllString(s, "")
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

func ValidateUUID(s string) bool {
	return uuidPattern.MatchString(s)
}

func ValidateUserID(s string) bool {
	return userIDPattern.MatchString(s)
}

func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ImageFile describes an uploaded file as seen by the HTTP layer.
type ImageFile struct {
	Name string
	Size int64
	Type string
}

type ImageCheck struct {
	Valid bool
	Error string
}

// ValidateImageFile checks MIME type, size and filename. A maxSizeMB of zero or
// less falls back to DefaultMaxImageMB.
func ValidateImageFile(file *ImageFile, maxSizeMB int) ImageCheck {
	if file == nil {
		return ImageCheck{Error: "No file provided"}
	}
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxImageMB
	}
	if !IsAllowedImageType(file.Type) {
		return ImageCheck{Error: "Only JPEG, PNG, and WebP images are allowed"}
	}
	if file.Size > int64(maxSizeMB)*1024*1024 {
		return ImageCheck{Error: fmt.Sprintf("File size must be less than %dMB", maxSizeMB)}
	}
	if file.Name == "" || utf8.RuneCountInString(file.Name) > MaxFilenameLength {
		return ImageCheck{Error: "Invalid filename"}
	}
	return ImageCheck{Valid: true}
}

func IsAllowedImageType(mime string) bool {
	for _, t := range AllowedImageTypes {
		if mime == t {
			return true
		}
	}
	return false
}
