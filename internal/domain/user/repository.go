package user

import (
	"errors"

	"gorm.io/gorm"
)

// Repository interface for user operations
type Repository interface {
	Create(user *User) error
	GetByID(id int64) (*User, error)
	GetByUsername(username string) (*User, error)
	GetByIMID(imID int64) (*User, error)
	Update(user *User) error
	Count() (int64, error)
}

// repository struct for user operations
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new user repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Create creates a new user
func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

// GetByID gets a user by ID; absent users return (nil, nil)
func (r *repository) GetByID(id int64) (*User, error) {
	var user User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername gets a user by username; absent users return (nil, nil)
func (r *repository) GetByUsername(username string) (*User, error) {
	var user User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByIMID gets a user by IM platform ID; absent users return (nil, nil)
func (r *repository) GetByIMID(imID int64) (*User, error) {
	var user User
	if err := r.db.Where("im_id = ?", imID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

// Count returns the registered player count
func (r *repository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
