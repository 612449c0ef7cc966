package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MedicalForm is the intake record a user submits before a consultation.
type MedicalForm struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID               string    `gorm:"size:255;not null;index" json:"userId"`
	Name                 string    `gorm:"type:text;not null" json:"name"`
	Age                  int       `gorm:"not null" json:"age"`
	Gender               string    `gorm:"type:text;not null" json:"gender"`
	Weight               string    `gorm:"type:text;not null" json:"weight"`
	Height               string    `gorm:"type:text;not null" json:"height"`
	BloodType            *string   `gorm:"type:text" json:"bloodType"`
	CurrentComplications *string   `gorm:"type:text" json:"currentComplications"`
	BreakfastDetails     *string   `gorm:"type:text" json:"breakfastDetails"`
	LunchDetails         *string   `gorm:"type:text" json:"lunchDetails"`
	DinnerDetails        *string   `gorm:"type:text" json:"dinnerDetails"`
	Medications          *string   `gorm:"type:text" json:"medications"`
	Allergies            *string   `gorm:"type:text" json:"allergies"`
	ChronicConditions    *string   `gorm:"type:text" json:"chronicConditions"`
	UploadedImages       ImageList `gorm:"type:jsonb" json:"uploadedImages"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
	User                 *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (f *MedicalForm) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (MedicalForm) TableName() string {
	return "medical_forms"
}

// Text dereferences an optional field.
func Text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
