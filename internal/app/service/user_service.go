package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/internal/app/repository"
	"github.com/deviceshop/deviceshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserInput struct {
	Username string
	Email    string
	Password string
	Role     model.UserRole
}

// UserUpdate changes only the non-nil fields. Password, when set, is
// re-hashed.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
	Role     *model.UserRole
}

type UserService interface {
	ListUsers() ([]model.User, error)
	CreateUser(input UserInput) (*model.User, error)
	EditUser(id uint, update UserUpdate) (*model.User, error)
	DeleteUser(id uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func validateRole(role model.UserRole) error {
	if role != model.RoleUser && role != model.RoleAdmin {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	return nil
}

func (s *userService) emailTaken(email string, exceptID uint) (bool, error) {
	existing, err := s.userRepo.FindByEmailUnscoped(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return existing.ID != exceptID, nil
}

func (s *userService) ListUsers() ([]model.User, error) {
	return s.userRepo.List()
}

func (s *userService) CreateUser(input UserInput) (*model.User, error) {
	email := normalizeEmail(input.Email)
	if err := validateAccount(input.Username, email); err != nil {
		return nil, err
	}
	if input.Role == "" {
		input.Role = model.RoleUser
	}
	if err := validateRole(input.Role); err != nil {
		return nil, err
	}

	taken, err := s.emailTaken(email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User created by admin", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return user, nil
}

func (s *userService) EditUser(id uint, update UserUpdate) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if update.Username != nil {
		user.Username = strings.TrimSpace(*update.Username)
	}
	if update.Email != nil {
		user.Email = normalizeEmail(*update.Email)
	}
	if err := validateAccount(user.Username, user.Email); err != nil {
		return nil, err
	}
	if update.Role != nil {
		if err := validateRole(*update.Role); err != nil {
			return nil, err
		}
		user.Role = *update.Role
	}

	taken, err := s.emailTaken(user.Email, user.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailAlreadyExists
	}

	if update.Password != nil && *update.Password != "" {
		hash, err := hashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("User updated by admin", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

// DeleteUser soft-deletes the account; posts and purchases stay.
func (s *userService) DeleteUser(id uint) error {
	rows, err := s.userRepo.Delete(id)
	if err != nil {
		return err
	}

	logger.Info("User deleted by admin", map[string]interface{}{
		"user_id": id,
		"deleted": rows > 0,
	})
	return nil
}
