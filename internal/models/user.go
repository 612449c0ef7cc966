package models

import (
	"time"
)

// User mirrors an account held by the external identity provider. The ID is the
// provider's opaque subject; rows are created lazily on first form submission.
type User struct {
	ID        string    `gorm:"primaryKey;size:255" json:"id"`
	Email     string    `gorm:"size:255;index" json:"email"`
	FirstName *string   `gorm:"size:255" json:"firstName,omitempty"`
	LastName  *string   `gorm:"size:255" json:"lastName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
