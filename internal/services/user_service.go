package services

import (
	"errors"
	"unicode"

	"github.com/crustco/pizzeria-api/internal/models"
	"gorm.io/gorm"
)

// UserService provides registration, authentication and account lookups
type UserService interface {
	// Register validates the password policy, hashes the password and stores the user
	Register(user *models.User, password string) error
	// Authenticate verifies email/password and returns the matching user
	Authenticate(email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	// UpdateRole changes a user's role. Role is the only externally mutable
	// user field, everything else is fixed at registration.
	UpdateRole(id uint, role string) (*models.User, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) Register(user *models.User, password string) error {
	if !PasswordMeetsPolicy(password) {
		return ErrWeakPassword
	}

	var existing models.User
	if err := s.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrEmailTaken
	}

	if err := user.SetPassword(password); err != nil {
		return err
	}
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}

	if err := s.db.Create(user).Error; err != nil {
		// The unique index on email is the backstop for the check above
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *userService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) UpdateRole(id uint, role string) (*models.User, error) {
	if role != models.RoleCustomer && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(user).Update("role", role).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// PasswordMeetsPolicy checks the registration password policy: minimum
// length 8 with at least one uppercase letter, one lowercase letter, one
// digit and one special character.
func PasswordMeetsPolicy(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}
