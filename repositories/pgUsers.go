package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/youssefibrahim146/Volt/db"
	"github.com/youssefibrahim146/Volt/entities"
)

type userPgRepository struct {
	db db.Database
}

func NewUserPgRepository(database db.Database) UserRepository {
	return &userPgRepository{db: database}
}

func (r *userPgRepository) Create(user *entities.User) error {
	return r.db.GetDB().Create(user).Error
}

func (r *userPgRepository) GetByID(id string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userPgRepository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userPgRepository) Update(user *entities.User) error {
	user.UpdatedAt = time.Now().Format(time.RFC3339)
	return r.db.GetDB().Save(user).Error
}

func (r *userPgRepository) UpdateFields(id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().Format(time.RFC3339)
	return r.db.GetDB().Model(&entities.User{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes the account together with its device assignments so a later
// registration can reuse the email address.
func (r *userPgRepository) Delete(id string) error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&entities.HomeDevice{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.User{}).Error
	})
}
