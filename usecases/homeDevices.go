package usecases

import (
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/youssefibrahim146/Volt/apperrors"
	"github.com/youssefibrahim146/Volt/energy"
	"github.com/youssefibrahim146/Volt/entities"
	"github.com/youssefibrahim146/Volt/repositories"
)

// HomeDeviceUseCase manages a user's device assignments. Every mutation of
// an all-day assignment adjusts the owner's min_budget and total_wattage in
// the same transaction, keeping them equal to the summed daily cost and
// wattage of that user's all-day devices.
type HomeDeviceUseCase struct {
	HomeDeviceRepo   repositories.HomeDeviceRepository
	SystemDeviceRepo repositories.SystemDeviceRepository
	UserRepo         repositories.UserRepository
	Rate             float64
}

func NewHomeDeviceUseCase(homeDeviceRepo repositories.HomeDeviceRepository, systemDeviceRepo repositories.SystemDeviceRepository, userRepo repositories.UserRepository, rate float64) *HomeDeviceUseCase {
	return &HomeDeviceUseCase{
		HomeDeviceRepo:   homeDeviceRepo,
		SystemDeviceRepo: systemDeviceRepo,
		UserRepo:         userRepo,
		Rate:             rate,
	}
}

// Assign adds a catalog device to the user's home. All-day devices run 24h
// regardless of the requested hours and commit their cost to the budget.
func (uc *HomeDeviceUseCase) Assign(userID, systemDeviceID string, chosenWatts int, workHours float64) (*entities.HomeDevice, *entities.User, error) {
	if userID == "" {
		return nil, nil, apperrors.Validation("user id is required")
	}
	if systemDeviceID == "" {
		return nil, nil, apperrors.Validation("system device id is required")
	}

	if _, err := uc.UserRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound("user not found")
		}
		return nil, nil, apperrors.Internal(err)
	}

	catalog, err := uc.SystemDeviceRepo.GetByID(systemDeviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound("system device not found")
		}
		return nil, nil, apperrors.Internal(err)
	}

	if !catalog.HasWattsOption(chosenWatts) {
		return nil, nil, apperrors.Validation("chosen watts must be one of the device's wattage options")
	}

	if catalog.AllDay {
		workHours = energy.HoursAllDay
	} else if !validWorkHours(workHours) {
		return nil, nil, apperrors.Validation("work hours must be between 0 and 24")
	}

	device := &entities.HomeDevice{
		UserID:         userID,
		SystemDeviceID: systemDeviceID,
		ChosenWatts:    chosenWatts,
		WorkHours:      workHours,
	}

	var delta repositories.BudgetDelta
	if catalog.AllDay {
		delta = repositories.BudgetDelta{
			MinBudget:    energy.CostAt(float64(chosenWatts), energy.HoursAllDay, uc.Rate),
			TotalWattage: chosenWatts,
		}
	}

	if err := uc.HomeDeviceRepo.Create(device, delta); err != nil {
		return nil, nil, apperrors.Internal(err)
	}
	device.SystemDevice = *catalog

	user, err := uc.freshUser(userID)
	if err != nil {
		return nil, nil, err
	}
	return device, user, nil
}

// Get retrieves one of the user's assignments.
func (uc *HomeDeviceUseCase) Get(userID, id string) (*entities.HomeDevice, error) {
	if id == "" {
		return nil, apperrors.Validation("home device id is required")
	}
	device, err := uc.HomeDeviceRepo.GetByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("home device not found")
		}
		return nil, apperrors.Internal(err)
	}
	return device, nil
}

// List returns one page of the user's assignments plus the total count.
func (uc *HomeDeviceUseCase) List(userID string, offset, limit int) ([]entities.HomeDevice, int64, error) {
	devices, total, err := uc.HomeDeviceRepo.ListByUserID(userID, offset, limit)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return devices, total, nil
}

// Update changes the chosen wattage and/or work hours. Nil fields leave the
// current values in place; all-day assignments stay pinned to 24h.
func (uc *HomeDeviceUseCase) Update(userID, id string, chosenWatts *int, workHours *float64) (*entities.HomeDevice, *entities.User, error) {
	device, err := uc.Get(userID, id)
	if err != nil {
		return nil, nil, err
	}
	catalog := device.SystemDevice
	oldWatts := device.ChosenWatts

	if chosenWatts != nil {
		if !catalog.HasWattsOption(*chosenWatts) {
			return nil, nil, apperrors.Validation("chosen watts must be one of the device's wattage options")
		}
		device.ChosenWatts = *chosenWatts
	}

	if catalog.AllDay {
		device.WorkHours = energy.HoursAllDay
	} else if workHours != nil {
		if !validWorkHours(*workHours) {
			return nil, nil, apperrors.Validation("work hours must be between 0 and 24")
		}
		device.WorkHours = *workHours
	}

	var delta repositories.BudgetDelta
	if catalog.AllDay && device.ChosenWatts != oldWatts {
		delta = repositories.BudgetDelta{
			MinBudget: energy.CostAt(float64(device.ChosenWatts), energy.HoursAllDay, uc.Rate) -
				energy.CostAt(float64(oldWatts), energy.HoursAllDay, uc.Rate),
			TotalWattage: device.ChosenWatts - oldWatts,
		}
	}

	if err := uc.HomeDeviceRepo.Update(device, delta); err != nil {
		return nil, nil, apperrors.Internal(err)
	}

	user, err := uc.freshUser(userID)
	if err != nil {
		return nil, nil, err
	}
	return device, user, nil
}

// Remove deletes the assignment and releases its budget commitment.
func (uc *HomeDeviceUseCase) Remove(userID, id string) (*entities.User, error) {
	device, err := uc.Get(userID, id)
	if err != nil {
		return nil, err
	}

	var delta repositories.BudgetDelta
	if device.SystemDevice.AllDay {
		delta = repositories.BudgetDelta{
			MinBudget:    -energy.CostAt(float64(device.ChosenWatts), energy.HoursAllDay, uc.Rate),
			TotalWattage: -device.ChosenWatts,
		}
	}

	if err := uc.HomeDeviceRepo.Delete(device, delta); err != nil {
		return nil, apperrors.Internal(err)
	}
	return uc.freshUser(userID)
}

// DeviceCostItem is one assignment's share of the cost report.
type DeviceCostItem struct {
	HomeDeviceID string  `json:"homeDeviceId"`
	DeviceName   string  `json:"deviceName"`
	ChosenWatts  int     `json:"chosenWatts"`
	WorkHours    float64 `json:"workHours"`
	DailyCost    float64 `json:"dailyCost"`
	MonthlyCost  float64 `json:"monthlyCost"`
}

type CostReport struct {
	Items            []DeviceCostItem `json:"items"`
	TotalDailyCost   float64          `json:"totalDailyCost"`
	TotalMonthlyCost float64          `json:"totalMonthlyCost"`
	RatePerKwh       float64          `json:"ratePerKwh"`
}

// CalculateCost prices every assignment the user owns at its configured
// wattage and hours.
func (uc *HomeDeviceUseCase) CalculateCost(userID string) (*CostReport, error) {
	devices, err := uc.HomeDeviceRepo.GetByUserID(userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	report := &CostReport{
		Items:      make([]DeviceCostItem, 0, len(devices)),
		RatePerKwh: uc.Rate,
	}
	for _, d := range devices {
		daily := energy.CostAt(float64(d.ChosenWatts), d.WorkHours, uc.Rate)
		monthly := energy.MonthlyCostAt(float64(d.ChosenWatts), d.WorkHours, uc.Rate)
		report.Items = append(report.Items, DeviceCostItem{
			HomeDeviceID: d.ID,
			DeviceName:   d.SystemDevice.Name,
			ChosenWatts:  d.ChosenWatts,
			WorkHours:    d.WorkHours,
			DailyCost:    daily,
			MonthlyCost:  monthly,
		})
		report.TotalDailyCost += daily
		report.TotalMonthlyCost += monthly
	}
	return report, nil
}

func (uc *HomeDeviceUseCase) freshUser(userID string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByID(userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

func validWorkHours(h float64) bool {
	return !math.IsNaN(h) && h >= 0 && h <= 24
}
