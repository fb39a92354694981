package usecases

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/youssefibrahim146/Volt/apperrors"
	"github.com/youssefibrahim146/Volt/auth"
	"github.com/youssefibrahim146/Volt/entities"
	"github.com/youssefibrahim146/Volt/repositories"
)

type AdminUseCase struct {
	AdminRepo repositories.AdminRepository
	Tokens    *auth.Tokens
}

func NewAdminUseCase(adminRepo repositories.AdminRepository, tokens *auth.Tokens) *AdminUseCase {
	return &AdminUseCase{
		AdminRepo: adminRepo,
		Tokens:    tokens,
	}
}

// Register creates an admin account and returns it with a signed token.
func (uc *AdminUseCase) Register(email, username, password string) (*entities.Admin, string, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)

	if email == "" || !strings.Contains(email, "@") {
		return nil, "", apperrors.Validation("a valid email is required")
	}
	if username == "" {
		return nil, "", apperrors.Validation("username is required")
	}
	if password == "" {
		return nil, "", apperrors.Validation("password is required")
	}

	if _, err := uc.AdminRepo.GetByEmail(email); err == nil {
		return nil, "", apperrors.Conflict("email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperrors.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}

	admin := &entities.Admin{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := uc.AdminRepo.Create(admin); err != nil {
		return nil, "", apperrors.Internal(err)
	}

	token, err := uc.Tokens.Issue(admin.ID, auth.RoleAdmin)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}
	return admin, token, nil
}

// Login verifies the credentials and returns the admin with a fresh token.
func (uc *AdminUseCase) Login(email, password string) (*entities.Admin, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", apperrors.Validation("email and password are required")
	}

	admin, err := uc.AdminRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.Unauthorized("invalid email or password")
		}
		return nil, "", apperrors.Internal(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}

	token, err := uc.Tokens.Issue(admin.ID, auth.RoleAdmin)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}
	return admin, token, nil
}

// GetProfile retrieves an admin by ID.
func (uc *AdminUseCase) GetProfile(id string) (*entities.Admin, error) {
	if id == "" {
		return nil, apperrors.Validation("admin id is required")
	}
	admin, err := uc.AdminRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("admin not found")
		}
		return nil, apperrors.Internal(err)
	}
	return admin, nil
}
