package repositories

import (
	"time"

	"github.com/youssefibrahim146/Volt/db"
	"github.com/youssefibrahim146/Volt/entities"
)

type systemDevicePgRepository struct {
	db db.Database
}

func NewSystemDevicePgRepository(database db.Database) SystemDeviceRepository {
	return &systemDevicePgRepository{db: database}
}

func (r *systemDevicePgRepository) Create(device *entities.SystemDevice) error {
	return r.db.GetDB().Create(device).Error
}

func (r *systemDevicePgRepository) GetByID(id string) (*entities.SystemDevice, error) {
	var device entities.SystemDevice
	err := r.db.GetDB().Where("id = ?", id).First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *systemDevicePgRepository) GetAll() ([]entities.SystemDevice, error) {
	var devices []entities.SystemDevice
	err := r.db.GetDB().Order("created_at ASC").Find(&devices).Error
	if err != nil {
		return nil, err
	}
	return devices, nil
}

func (r *systemDevicePgRepository) List(offset, limit int) ([]entities.SystemDevice, int64, error) {
	var total int64
	if err := r.db.GetDB().Model(&entities.SystemDevice{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var devices []entities.SystemDevice
	err := r.db.GetDB().Order("created_at ASC").Offset(offset).Limit(limit).Find(&devices).Error
	if err != nil {
		return nil, 0, err
	}
	return devices, total, nil
}

func (r *systemDevicePgRepository) Update(device *entities.SystemDevice) error {
	device.UpdatedAt = time.Now().Format(time.RFC3339)
	return r.db.GetDB().Save(device).Error
}

func (r *systemDevicePgRepository) Delete(id string) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.SystemDevice{}).Error
}
