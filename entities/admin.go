package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin is a catalog maintainer. Admins live in their own identity space
// and have no relation to users or home devices.
type Admin struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Username     string `gorm:"not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.CreatedAt = time.Now().Format(time.RFC3339)
	a.UpdatedAt = a.CreatedAt
	return
}
