package usecases

import (
	"errors"
	"math"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/youssefibrahim146/Volt/apperrors"
	"github.com/youssefibrahim146/Volt/auth"
	"github.com/youssefibrahim146/Volt/entities"
	"github.com/youssefibrahim146/Volt/repositories"
)

type UserUseCase struct {
	UserRepo repositories.UserRepository
	Tokens   *auth.Tokens
}

func NewUserUseCase(userRepo repositories.UserRepository, tokens *auth.Tokens) *UserUseCase {
	return &UserUseCase{
		UserRepo: userRepo,
		Tokens:   tokens,
	}
}

// Register creates a user account and returns it with a signed token.
func (uc *UserUseCase) Register(email, username, password string) (*entities.User, string, error) {
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

	if _, err := uc.UserRepo.GetByEmail(email); err == nil {
		return nil, "", apperrors.Conflict("email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperrors.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}

	user := &entities.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := uc.UserRepo.Create(user); err != nil {
		return nil, "", apperrors.Internal(err)
	}

	token, err := uc.Tokens.Issue(user.ID, auth.RoleUser)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}
	return user, token, nil
}

// Login verifies the credentials and returns the account with a fresh token.
func (uc *UserUseCase) Login(email, password string) (*entities.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", apperrors.Validation("email and password are required")
	}

	user, err := uc.UserRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.Unauthorized("invalid email or password")
		}
		return nil, "", apperrors.Internal(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}

	token, err := uc.Tokens.Issue(user.ID, auth.RoleUser)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}
	return user, token, nil
}

// GetProfile retrieves a user by ID.
func (uc *UserUseCase) GetProfile(id string) (*entities.User, error) {
	if id == "" {
		return nil, apperrors.Validation("user id is required")
	}
	user, err := uc.UserRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

// UpdateProfile applies the provided fields; empty values leave the current
// ones in place. A changed email is re-checked for uniqueness.
func (uc *UserUseCase) UpdateProfile(id, email, username, password string) (*entities.User, error) {
	user, err := uc.GetProfile(id)
	if err != nil {
		return nil, err
	}

	if email != "" {
		email = normalizeEmail(email)
		if !strings.Contains(email, "@") {
			return nil, apperrors.Validation("a valid email is required")
		}
		if email != user.Email {
			if other, err := uc.UserRepo.GetByEmail(email); err == nil && other.ID != user.ID {
				return nil, apperrors.Conflict("email is already registered")
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Internal(err)
			}
			user.Email = email
		}
	}
	if username != "" {
		user.Username = strings.TrimSpace(username)
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		user.PasswordHash = string(hash)
	}

	if err := uc.UserRepo.Update(user); err != nil {
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

// UpdateBudget replaces the user's monthly budget cap.
func (uc *UserUseCase) UpdateBudget(id string, budget float64) (*entities.User, error) {
	if budget < 0 || math.IsNaN(budget) || math.IsInf(budget, 0) {
		return nil, apperrors.Validation("budget must be a non-negative number")
	}

	user, err := uc.GetProfile(id)
	if err != nil {
		return nil, err
	}

	if err := uc.UserRepo.UpdateFields(id, map[string]interface{}{"budget": budget}); err != nil {
		return nil, apperrors.Internal(err)
	}
	user.Budget = budget
	return user, nil
}

// DeleteAccount removes the user and every device assignment they own.
func (uc *UserUseCase) DeleteAccount(id string) error {
	if _, err := uc.GetProfile(id); err != nil {
		return err
	}
	if err := uc.UserRepo.Delete(id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BudgetSummary is the compact budget view pushed to live listeners after
// every device mutation and embedded in mutation responses.
type BudgetSummary struct {
	Budget          float64 `json:"budget"`
	MinBudget       float64 `json:"minBudget"`
	TotalWattage    int     `json:"totalWattage"`
	RemainingBudget float64 `json:"remainingBudget"`
}

func SummaryOf(user *entities.User) BudgetSummary {
	return BudgetSummary{
		Budget:          user.Budget,
		MinBudget:       user.MinBudget,
		TotalWattage:    user.TotalWattage,
		RemainingBudget: user.RemainingBudget(),
	}
}
