package services

import (
	"errors"
	"fmt"
	"strings"

	"hotel-booking-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrUserAlreadyExists  = errors.New("a user with that email already exists")
	ErrRoleAlreadyExists  = errors.New("a role with that name already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserService covers the user/role plumbing around the booking core:
// registration, credential checks and explicit role membership.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// RegisterUser stores a new user with a bcrypt-hashed password.
func (s *UserService) RegisterUser(firstName, lastName, email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     email,
		Password:  string(hash),
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKeyError(err) {
			return models.User{}, ErrUserAlreadyExists
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies the password against the stored bcrypt hash and
// returns the user with roles loaded. Session/token issuance is the
// transport layer's concern, not this service's.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	var user models.User
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.DB.Preload("Roles").Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("fetch user by email: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Preload("Roles").Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetUserByID(id uint) (models.User, error) {
	var user models.User
	if err := s.DB.Preload("Roles").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("fetch user %d: %w", id, err)
	}
	return user, nil
}

func (s *UserService) CreateRole(name string) (models.Role, error) {
	role := models.Role{Name: strings.TrimSpace(name)}
	if err := s.DB.Create(&role).Error; err != nil {
		if isDuplicateKeyError(err) {
			return models.Role{}, ErrRoleAlreadyExists
		}
		return models.Role{}, fmt.Errorf("create role: %w", err)
	}
	return role, nil
}

func (s *UserService) GetAllRoles() ([]models.Role, error) {
	var roles []models.Role
	if err := s.DB.Order("id").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// AssignRoleToUser persists the membership through the join table.
func (s *UserService) AssignRoleToUser(userID, roleID uint) (models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return models.User{}, err
	}
	var role models.Role
	if err := s.DB.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrRoleNotFound
		}
		return models.User{}, fmt.Errorf("fetch role %d: %w", roleID, err)
	}

	role.AssignTo(&user)
	if err := s.DB.Model(&user).Association("Roles").Append(&role); err != nil {
		return models.User{}, fmt.Errorf("assign role %d to user %d: %w", roleID, userID, err)
	}
	return user, nil
}

// RemoveRoleFromUser detaches the membership; removing an absent membership
// is a no-op.
func (s *UserService) RemoveRoleFromUser(userID, roleID uint) (models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return models.User{}, err
	}
	var role models.Role
	if err := s.DB.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrRoleNotFound
		}
		return models.User{}, fmt.Errorf("fetch role %d: %w", roleID, err)
	}

	role.RemoveFrom(&user)
	if err := s.DB.Model(&user).Association("Roles").Delete(&role); err != nil {
		return models.User{}, fmt.Errorf("remove role %d from user %d: %w", roleID, userID, err)
	}
	return user, nil
}
