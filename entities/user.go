package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a household account. MinBudget and TotalWattage are running
// aggregates over the user's always-on home devices; they are only ever
// moved inside the same transaction as the device row that changes them.
type User struct {
	ID           string  `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	Username     string  `gorm:"not null" json:"username"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Budget       float64 `json:"budget"`
	MinBudget    float64 `json:"min_budget"`
	TotalWattage int     `json:"total_wattage"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = time.Now().Format(time.RFC3339)
	u.UpdatedAt = u.CreatedAt
	return
}

// RemainingBudget is the headroom left under the monthly cap after the
// committed cost of always-on devices.
func (u *User) RemainingBudget() float64 {
	return u.Budget - u.MinBudget
}
