package level

import (
	"errors"

	"gorm.io/gorm"
)

// Repository interface for level metadata operations
type Repository interface {
	Create(level *Level) error
	GetByLevelID(levelID string) (*Level, error)
	Delete(levelID string) error
	CountByAuthor(authorID int64) (int64, error)
	Count() (int64, error)
}

// repository struct for level metadata operations
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new level repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Create creates a new level metadata record
func (r *repository) Create(level *Level) error {
	return r.db.Create(level).Error
}

// GetByLevelID gets a level by its public identifier; absent levels
// return (nil, nil).
func (r *repository) GetByLevelID(levelID string) (*Level, error) {
	var l Level
	if err := r.db.Where("level_id = ?", levelID).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// Delete removes a level metadata record by public identifier
func (r *repository) Delete(levelID string) error {
	return r.db.Where("level_id = ?", levelID).Delete(&Level{}).Error
}

// CountByAuthor returns how many levels an author has uploaded
func (r *repository) CountByAuthor(authorID int64) (int64, error) {
	var count int64
	if err := r.db.Model(&Level{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count returns the total level count
func (r *repository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&Level{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
