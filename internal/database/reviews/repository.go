// Package reviews provides database operations for reviews and their votes.
//
// This package implements the ReviewStore interface defined in
// internal/services/review_service.go.
package reviews

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookreviews/internal/entities"
)

// Repository handles all review and vote database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new review and assigns its identifier.
func (r *Repository) Create(review *entities.Review) error {
	return r.db.Create(review).Error
}

// GetByID retrieves a review with its book reference and votes.
func (r *Repository) GetByID(id uint) (*entities.Review, error) {
	var review entities.Review
	err := r.db.
		Preload("Book").
		Preload("Votes").
		First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByBookID retrieves all reviews for a book, each with its user reference
// and votes. Order is not guaranteed.
func (r *Repository) GetByBookID(bookID uint) ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.db.
		Preload("User").
		Preload("Votes").
		Where("book_id = ?", bookID).
		Find(&reviews).Error
	return reviews, err
}

// GetAll retrieves every review with its book reference and votes.
func (r *Repository) GetAll() ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.db.
		Preload("Book").
		Preload("Votes").
		Find(&reviews).Error
	return reviews, err
}

// Exists reports whether a review with the given id is present.
func (r *Repository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Review{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Update overwrites the mutable fields of the stored review. DateCreated is
// never touched.
func (r *Repository) Update(review *entities.Review) error {
	return r.db.Model(&entities.Review{}).
		Where("id = ?", review.ID).
		Select("Content", "Rating", "BookID", "UserID").
		Updates(review).Error
}

// Delete removes the review and its votes in one transaction.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&entities.ReviewVote{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&entities.Review{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetVote retrieves the vote a user has cast on a review, if any.
func (r *Repository) GetVote(reviewID uint, userID string) (*entities.ReviewVote, error) {
	var vote entities.ReviewVote
	err := r.db.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// UpsertVote inserts a vote, or overwrites is_upvote when the (review, user)
// pair already has one. The conflict target is the unique composite index,
// so two concurrent first votes still collapse to a single row.
func (r *Repository) UpsertVote(reviewID uint, userID string, isUpvote bool) error {
	vote := entities.ReviewVote{
		ReviewID: reviewID,
		UserID:   userID,
		IsUpvote: isUpvote,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "review_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_upvote", "updated_at"}),
	}).Create(&vote).Error
}

// UpdateVote overwrites is_upvote on an existing vote row.
func (r *Repository) UpdateVote(voteID uint, isUpvote bool) error {
	return r.db.Model(&entities.ReviewVote{}).
		Where("id = ?", voteID).
		Update("is_upvote", isUpvote).Error
}

// CountVotes returns the number of vote rows for a (review, user) pair.
// Used by tests to assert the uniqueness invariant.
func (r *Repository) CountVotes(reviewID uint, userID string) (int64, error) {
	var count int64
	err := r.db.Model(&entities.ReviewVote{}).
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		Count(&count).Error
	return count, err
}
