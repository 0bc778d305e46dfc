// Package users provides database operations for user records. User IDs are
// opaque strings (UUIDs) assigned at creation; the catalog services only
// ever check existence and look records up.
package users

import (
	"gorm.io/gorm"

	"github.com/google/uuid"

	"github.com/mrlokans/bookreviews/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user with a generated opaque identifier.
func (r *Repository) Create(username, email, passwordHash string, role entities.UserRole) (*entities.User, error) {
	user := &entities.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by their opaque identifier.
func (r *Repository) GetByID(id string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByTokenHash retrieves a user by the hash of their API token.
func (r *Repository) GetByTokenHash(hash string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("token_hash = ?", hash).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetTokenHash stores (or clears) the user's API token hash.
func (r *Repository) SetTokenHash(id, hash string) error {
	return r.db.Model(&entities.User{}).Where("id = ?", id).Update("token_hash", hash).Error
}

// Exists reports whether a user with the given id is present.
func (r *Repository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// HasReviews reports whether the user authored any reviews. Users with
// reviews must not be removed.
func (r *Repository) HasReviews(id string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Review{}).Where("user_id = ?", id).Count(&count).Error
	return count > 0, err
}

// Delete removes a user without reviews. Returns gorm.ErrRecordNotFound when
// absent.
func (r *Repository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&entities.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
