package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HomeDevice assigns a catalog entry to a user's home with the wattage the
// user picked and, for switchable devices, the hours it runs per day.
type HomeDevice struct {
	ID             string         `gorm:"primaryKey" json:"id"`
	UserID         string         `gorm:"index;not null" json:"user_id"`
	SystemDeviceID string         `gorm:"index;not null" json:"system_device_id"`
	ChosenWatts    int            `gorm:"not null" json:"chosen_watts"`
	WorkHours      float64        `json:"work_hours"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	SystemDevice SystemDevice `gorm:"foreignKey:SystemDeviceID" json:"system_device,omitempty"`
}

func (h *HomeDevice) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	h.CreatedAt = time.Now().Format(time.RFC3339)
	h.UpdatedAt = h.CreatedAt
	return
}
