package repositories

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/youssefibrahim146/Volt/db"
	"github.com/youssefibrahim146/Volt/entities"
)

type homeDevicePgRepository struct {
	db db.Database
}

func NewHomeDevicePgRepository(database db.Database) HomeDeviceRepository {
	return &homeDevicePgRepository{db: database}
}

// applyDelta shifts the owner's budget aggregates with relative updates so
// concurrent assignment writes never clobber each other's arithmetic.
func applyDelta(tx *gorm.DB, userID string, delta BudgetDelta) error {
	if delta.IsZero() {
		return nil
	}
	return tx.Model(&entities.User{}).Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"min_budget":    gorm.Expr("min_budget + ?", delta.MinBudget),
			"total_wattage": gorm.Expr("total_wattage + ?", delta.TotalWattage),
			"updated_at":    time.Now().Format(time.RFC3339),
		}).Error
}

func (r *homeDevicePgRepository) Create(device *entities.HomeDevice, delta BudgetDelta) error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(device).Error; err != nil {
			return err
		}
		return applyDelta(tx, device.UserID, delta)
	})
}

func (r *homeDevicePgRepository) GetByIDForUser(id, userID string) (*entities.HomeDevice, error) {
	var device entities.HomeDevice
	err := r.db.GetDB().Preload("SystemDevice").
		Where("id = ? AND user_id = ?", id, userID).First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *homeDevicePgRepository) GetByUserID(userID string) ([]entities.HomeDevice, error) {
	var devices []entities.HomeDevice
	err := r.db.GetDB().Preload("SystemDevice").
		Where("user_id = ?", userID).Order("created_at DESC").Find(&devices).Error
	if err != nil {
		return nil, err
	}
	return devices, nil
}

func (r *homeDevicePgRepository) ListByUserID(userID string, offset, limit int) ([]entities.HomeDevice, int64, error) {
	var total int64
	err := r.db.GetDB().Model(&entities.HomeDevice{}).
		Where("user_id = ?", userID).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var devices []entities.HomeDevice
	err = r.db.GetDB().Preload("SystemDevice").
		Where("user_id = ?", userID).Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&devices).Error
	if err != nil {
		return nil, 0, err
	}
	return devices, total, nil
}

func (r *homeDevicePgRepository) Update(device *entities.HomeDevice, delta BudgetDelta) error {
	device.UpdatedAt = time.Now().Format(time.RFC3339)
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(device).Error; err != nil {
			return err
		}
		return applyDelta(tx, device.UserID, delta)
	})
}

func (r *homeDevicePgRepository) Delete(device *entities.HomeDevice, delta BudgetDelta) error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", device.ID).Delete(&entities.HomeDevice{}).Error; err != nil {
			return err
		}
		return applyDelta(tx, device.UserID, delta)
	})
}

func (r *homeDevicePgRepository) CountBySystemDeviceID(systemDeviceID string) (int64, error) {
	var total int64
	err := r.db.GetDB().Model(&entities.HomeDevice{}).
		Where("system_device_id = ?", systemDeviceID).Count(&total).Error
	return total, err
}

func (r *homeDevicePgRepository) ChosenWattsBySystemDeviceID(systemDeviceID string) ([]int, error) {
	var watts []int
	err := r.db.GetDB().Model(&entities.HomeDevice{}).
		Where("system_device_id = ?", systemDeviceID).
		Distinct().Pluck("chosen_watts", &watts).Error
	if err != nil {
		return nil, err
	}
	return watts, nil
}
