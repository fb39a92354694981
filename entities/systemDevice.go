package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SystemDevice is an admin-curated catalog entry: a device type users can
// attach to their home. AllDay marks devices that run continuously, such as
// fridges; their work hours are pinned to 24 and excluded from user input.
type SystemDevice struct {
	ID           string                   `gorm:"primaryKey" json:"id"`
	Name         string                   `gorm:"not null" json:"name"`
	Image        string                   `json:"image"`
	WattsOptions datatypes.JSONSlice[int] `json:"watts_options"`
	AllDay       bool                     `json:"all_day"`
	CreatedAt    string                   `json:"created_at"`
	UpdatedAt    string                   `json:"updated_at"`
	DeletedAt    gorm.DeletedAt           `gorm:"index" json:"deleted_at,omitempty"`
}

func (d *SystemDevice) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	d.CreatedAt = time.Now().Format(time.RFC3339)
	d.UpdatedAt = d.CreatedAt
	return
}

// HasWattsOption reports whether w is one of the selectable wattages.
func (d *SystemDevice) HasWattsOption(w int) bool {
	for _, option := range d.WattsOptions {
		if option == w {
			return true
		}
	}
	return false
}
