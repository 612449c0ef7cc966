package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Conversation struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string       `gorm:"size:255;not null;index" json:"userId"`
	FormID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"formId"`
	Title       string       `gorm:"type:text" json:"title"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `gorm:"index" json:"updatedAt"`
	User        *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	MedicalForm *MedicalForm `gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE" json:"medicalForm,omitempty"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Conversation) TableName() string {
	return "conversations"
}
