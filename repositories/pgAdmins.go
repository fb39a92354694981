package repositories

import (
	"github.com/youssefibrahim146/Volt/db"
	"github.com/youssefibrahim146/Volt/entities"
)

type adminPgRepository struct {
	db db.Database
}

func NewAdminPgRepository(database db.Database) AdminRepository {
	return &adminPgRepository{db: database}
}

func (r *adminPgRepository) Create(admin *entities.Admin) error {
	return r.db.GetDB().Create(admin).Error
}

func (r *adminPgRepository) GetByID(id string) (*entities.Admin, error) {
	var admin entities.Admin
	err := r.db.GetDB().Where("id = ?", id).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminPgRepository) GetByEmail(email string) (*entities.Admin, error) {
	var admin entities.Admin
	err := r.db.GetDB().Where("email = ?", email).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
