package client

import (
	"errors"

	"gorm.io/gorm"
)

// Repository interface for client operations
type Repository interface {
	Create(client *Client) error
	GetByToken(token string) (*Client, error)
	GetAll() ([]*Client, error)
	Revoke(client *Client) error
	Delete(client *Client) error
}

// repository struct for client operations
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new client repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Create creates a new client
func (r *repository) Create(client *Client) error {
	return r.db.Create(client).Error
}

// GetByToken gets a client by token; absent clients return (nil, nil)
func (r *repository) GetByToken(token string) (*Client, error) {
	var c Client
	if err := r.db.Where("token = ?", token).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// GetAll gets all clients
func (r *repository) GetAll() ([]*Client, error) {
	var clients []*Client
	if err := r.db.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Revoke marks a client invalid without removing it
func (r *repository) Revoke(client *Client) error {
	client.Valid = false
	return r.db.Save(client).Error
}

// Delete removes a client
func (r *repository) Delete(client *Client) error {
	return r.db.Delete(client).Error
}
