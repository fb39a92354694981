package repositories

import "github.com/youssefibrahim146/Volt/entities"

// BudgetDelta is the aggregate adjustment applied to the owning user in the
// same transaction as a home-device write. A zero delta leaves the user row
// untouched.
type BudgetDelta struct {
	MinBudget    float64
	TotalWattage int
}

func (d BudgetDelta) IsZero() bool {
	return d.MinBudget == 0 && d.TotalWattage == 0
}

type UserRepository interface {
	Create(user *entities.User) error
	GetByID(id string) (*entities.User, error)
	GetByEmail(email string) (*entities.User, error)
	Update(user *entities.User) error
	UpdateFields(id string, updates map[string]interface{}) error
	Delete(id string) error
}

type AdminRepository interface {
	Create(admin *entities.Admin) error
	GetByID(id string) (*entities.Admin, error)
	GetByEmail(email string) (*entities.Admin, error)
}

type SystemDeviceRepository interface {
	Create(device *entities.SystemDevice) error
	GetByID(id string) (*entities.SystemDevice, error)
	GetAll() ([]entities.SystemDevice, error)
	List(offset, limit int) ([]entities.SystemDevice, int64, error)
	Update(device *entities.SystemDevice) error
	Delete(id string) error
}

type HomeDeviceRepository interface {
	Create(device *entities.HomeDevice, delta BudgetDelta) error
	GetByIDForUser(id, userID string) (*entities.HomeDevice, error)
	GetByUserID(userID string) ([]entities.HomeDevice, error)
	ListByUserID(userID string, offset, limit int) ([]entities.HomeDevice, int64, error)
	Update(device *entities.HomeDevice, delta BudgetDelta) error
	Delete(device *entities.HomeDevice, delta BudgetDelta) error
	CountBySystemDeviceID(systemDeviceID string) (int64, error)
	ChosenWattsBySystemDeviceID(systemDeviceID string) ([]int, error)
}
