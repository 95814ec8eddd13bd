package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/notedeck/notedeck/internal/database"
	"github.com/notedeck/notedeck/internal/dto"
	"github.com/notedeck/notedeck/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNoUsers           = errors.New("no users found")
	ErrFieldsRequired    = errors.New("all fields are required")
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserIDRequired    = errors.New("user id required")
	ErrUserHasNotes      = errors.New("user has assigned notes")
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List returns every user without the password column. An empty table is an
// error by contract, not an empty collection.
func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Omit("password").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}
	return users, nil
}

// Create validates, checks the username case/accent-insensitively, hashes the
// password and inserts. The pre-insert duplicate check is not atomic with the
// insert; a concurrent writer that slips past it hits the collated unique
// index instead and is reported the same way.
func (s *UserService) Create(req *dto.CreateUserRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" || len(req.Roles) == 0 {
		return nil, ErrFieldsRequired
	}

	var existing models.User
	err := s.db.Scopes(database.Collated("username", req.Username)).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check duplicate username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Username: req.Username,
		Password: string(hash),
		Roles:    datatypes.NewJSONSlice(req.Roles),
		Active:   true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Update replaces username, roles and active on an existing user. Renaming a
// user to a name held by a different user is a conflict; renaming it to its
// own name is not. A supplied password is re-hashed and persisted with the
// rest of the record. Active must be strictly boolean; anything else is a
// validation failure.
func (s *UserService) Update(req *dto.UpdateUserRequest) (*models.User, error) {
	active, ok := req.Active.(bool)
	if req.ID == "" || req.Username == "" || len(req.Roles) == 0 || !ok {
		return nil, ErrFieldsRequired
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	var existing models.User
	err = s.db.Scopes(database.Collated("username", req.Username)).First(&existing).Error
	if err == nil && existing.ID != user.ID {
		return nil, ErrDuplicateUsername
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check duplicate username: %w", err)
	}

	user.Username = req.Username
	user.Roles = datatypes.NewJSONSlice(req.Roles)
	user.Active = active
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}

	if err := s.db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// Delete removes a user permanently. Deletion is refused while any note still
// references the user; notes are never cascaded or orphaned from here.
func (s *UserService) Delete(req *dto.DeleteUserRequest) (*models.User, error) {
	if req.ID == "" {
		return nil, ErrUserIDRequired
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	var count int64
	if err := s.db.Model(&models.Note{}).Where("user_id = ?", id).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check assigned notes: %w", err)
	}
	if count > 0 {
		return nil, ErrUserHasNotes
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.db.Delete(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return &user, nil
}
