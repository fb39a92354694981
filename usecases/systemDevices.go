package usecases

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/youssefibrahim146/Volt/apperrors"
	"github.com/youssefibrahim146/Volt/entities"
	"github.com/youssefibrahim146/Volt/repositories"
	"github.com/youssefibrahim146/Volt/storage"
)

type SystemDeviceUseCase struct {
	SystemDeviceRepo repositories.SystemDeviceRepository
	HomeDeviceRepo   repositories.HomeDeviceRepository
	Images           *storage.ImageStore
}

func NewSystemDeviceUseCase(systemDeviceRepo repositories.SystemDeviceRepository, homeDeviceRepo repositories.HomeDeviceRepository, images *storage.ImageStore) *SystemDeviceUseCase {
	return &SystemDeviceUseCase{
		SystemDeviceRepo: systemDeviceRepo,
		HomeDeviceRepo:   homeDeviceRepo,
		Images:           images,
	}
}

// Create registers a catalog entry with its uploaded image.
func (uc *SystemDeviceUseCase) Create(name string, wattsOptions []int, allDay bool, image *multipart.FileHeader) (*entities.SystemDevice, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("device name is required")
	}
	options, err := normalizeWattsOptions(wattsOptions)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, apperrors.Validation("device image is required")
	}

	stored, err := uc.Images.Save(image)
	if err != nil {
		return nil, err
	}

	device := &entities.SystemDevice{
		Name:         name,
		Image:        uc.Images.PublicPath(stored),
		WattsOptions: options,
		AllDay:       allDay,
	}
	if err := uc.SystemDeviceRepo.Create(device); err != nil {
		if rmErr := uc.Images.Remove(stored); rmErr != nil {
			log.Printf("Failed to clean up image %s: %v", stored, rmErr)
		}
		return nil, apperrors.Internal(err)
	}
	return device, nil
}

// Get retrieves a catalog entry by ID.
func (uc *SystemDeviceUseCase) Get(id string) (*entities.SystemDevice, error) {
	if id == "" {
		return nil, apperrors.Validation("device id is required")
	}
	device, err := uc.SystemDeviceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("system device not found")
		}
		return nil, apperrors.Internal(err)
	}
	return device, nil
}

// List returns one page of the catalog plus the total entry count.
func (uc *SystemDeviceUseCase) List(offset, limit int) ([]entities.SystemDevice, int64, error) {
	devices, total, err := uc.SystemDeviceRepo.List(offset, limit)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return devices, total, nil
}

// Update applies the provided fields; zero values leave the current ones in
// place. Changing the all-day flag or dropping a wattage option is refused
// while live assignments depend on the entry.
func (uc *SystemDeviceUseCase) Update(id, name string, wattsOptions []int, allDay *bool, image *multipart.FileHeader) (*entities.SystemDevice, error) {
	device, err := uc.Get(id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		device.Name = name
	}

	if wattsOptions != nil {
		options, err := normalizeWattsOptions(wattsOptions)
		if err != nil {
			return nil, err
		}
		inUse, err := uc.HomeDeviceRepo.ChosenWattsBySystemDeviceID(id)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		for _, w := range inUse {
			if !containsInt(options, w) {
				return nil, apperrors.Conflict(fmt.Sprintf("wattage option %d is in use by existing home devices", w))
			}
		}
		device.WattsOptions = options
	}

	if allDay != nil && *allDay != device.AllDay {
		count, err := uc.HomeDeviceRepo.CountBySystemDeviceID(id)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if count > 0 {
			return nil, apperrors.Conflict("cannot change the all-day flag while home devices reference this device")
		}
		device.AllDay = *allDay
	}

	var oldImage, stored string
	if image != nil {
		stored, err = uc.Images.Save(image)
		if err != nil {
			return nil, err
		}
		oldImage = device.Image
		device.Image = uc.Images.PublicPath(stored)
	}

	if err := uc.SystemDeviceRepo.Update(device); err != nil {
		if stored != "" {
			if rmErr := uc.Images.Remove(stored); rmErr != nil {
				log.Printf("Failed to clean up image %s: %v", stored, rmErr)
			}
		}
		return nil, apperrors.Internal(err)
	}

	if oldImage != "" {
		if rmErr := uc.Images.Remove(oldImage); rmErr != nil {
			log.Printf("Failed to remove replaced image %s: %v", oldImage, rmErr)
		}
	}
	return device, nil
}

// Delete removes a catalog entry and its stored image. Entries still
// referenced by home devices cannot be removed.
func (uc *SystemDeviceUseCase) Delete(id string) error {
	device, err := uc.Get(id)
	if err != nil {
		return err
	}

	count, err := uc.HomeDeviceRepo.CountBySystemDeviceID(id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if count > 0 {
		return apperrors.Conflict("device is still assigned to one or more homes")
	}

	if err := uc.SystemDeviceRepo.Delete(id); err != nil {
		return apperrors.Internal(err)
	}
	if rmErr := uc.Images.Remove(device.Image); rmErr != nil {
		log.Printf("Failed to remove image %s: %v", device.Image, rmErr)
	}
	return nil
}

// normalizeWattsOptions rejects non-positive wattages, removes duplicates
// and sorts the options ascending.
func normalizeWattsOptions(options []int) ([]int, error) {
	if len(options) == 0 {
		return nil, apperrors.Validation("at least one wattage option is required")
	}
	seen := make(map[int]bool, len(options))
	out := make([]int, 0, len(options))
	for _, w := range options {
		if w <= 0 {
			return nil, apperrors.Validation("wattage options must be positive integers")
		}
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	sort.Ints(out)
	return out, nil
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
