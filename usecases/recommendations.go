package usecases

import (
	"errors"

	"gorm.io/gorm"

	"github.com/youssefibrahim146/Volt/apperrors"
	"github.com/youssefibrahim146/Volt/energy"
	"github.com/youssefibrahim146/Volt/repositories"
)

// DeviceRecommendation is one catalog entry the user can still afford,
// priced at its cheapest wattage option.
type DeviceRecommendation struct {
	SystemDeviceID string  `json:"systemDeviceId"`
	Name           string  `json:"name"`
	Image          string  `json:"image"`
	AllDay         bool    `json:"allDay"`
	Watts          int     `json:"watts"`
	AssumedHours   float64 `json:"assumedHours"`
	MonthlyCost    float64 `json:"monthlyCost"`
}

type RecommendationReport struct {
	RemainingBudget float64                `json:"remainingBudget"`
	Devices         []DeviceRecommendation `json:"devices"`
}

type RecommendationUseCase struct {
	SystemDeviceRepo repositories.SystemDeviceRepository
	UserRepo         repositories.UserRepository
	Rate             float64
}

func NewRecommendationUseCase(systemDeviceRepo repositories.SystemDeviceRepository, userRepo repositories.UserRepository, rate float64) *RecommendationUseCase {
	return &RecommendationUseCase{
		SystemDeviceRepo: systemDeviceRepo,
		UserRepo:         userRepo,
		Rate:             rate,
	}
}

// Affordable lists the catalog entries whose cheapest wattage option fits
// the user's remaining monthly budget. All-day devices are priced at 24h,
// everything else at a typical 8h day. Catalog order is preserved.
func (uc *RecommendationUseCase) Affordable(userID string) (*RecommendationReport, error) {
	user, err := uc.UserRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal(err)
	}

	catalog, err := uc.SystemDeviceRepo.GetAll()
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	report := &RecommendationReport{
		RemainingBudget: user.RemainingBudget(),
		Devices:         make([]DeviceRecommendation, 0, len(catalog)),
	}
	for _, entry := range catalog {
		if len(entry.WattsOptions) == 0 {
			continue
		}

		hours := float64(energy.HoursTypicalUse)
		if entry.AllDay {
			hours = energy.HoursAllDay
		}

		watts := entry.WattsOptions[0]
		for _, w := range entry.WattsOptions {
			if w < watts {
				watts = w
			}
		}

		monthly := energy.MonthlyCostAt(float64(watts), hours, uc.Rate)
		if monthly > report.RemainingBudget {
			continue
		}

		report.Devices = append(report.Devices, DeviceRecommendation{
			SystemDeviceID: entry.ID,
			Name:           entry.Name,
			Image:          entry.Image,
			AllDay:         entry.AllDay,
			Watts:          watts,
			AssumedHours:   hours,
			MonthlyCost:    monthly,
		})
	}
	return report, nil
}
