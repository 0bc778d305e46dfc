// Package books provides database operations for the book catalog.
//
// This package implements the BookStore interface defined in
// internal/services/book_service.go.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByID(123)
package books

import (
	"gorm.io/gorm"

	"github.com/mrlokans/bookreviews/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new book and assigns its identifier.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Create(book).Error
}

// GetByID retrieves a book with its reviews, each carrying the reviewing
// user and the review's votes.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.
		Preload("Reviews.User").
		Preload("Reviews.Votes").
		First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAll retrieves books matching the given filters. Zero values mean "no
// constraint"; filters compose with AND. The author filter is a substring
// match (case-insensitive for ASCII, per SQLite LIKE), genre and year are
// exact. When withDetails is set, reviews are eagerly loaded without their
// votes.
func (r *Repository) GetAll(author, genre string, year int, withDetails bool) ([]entities.Book, error) {
	query := r.db.Model(&entities.Book{})
	if author != "" {
		query = query.Where("author LIKE ?", "%"+author+"%")
	}
	if genre != "" {
		query = query.Where("genre = ?", genre)
	}
	if year != 0 {
		query = query.Where("published_year = ?", year)
	}
	if withDetails {
		query = query.Preload("Reviews")
	}

	var books []entities.Book
	err := query.Find(&books).Error
	return books, err
}

// TitleAuthorExists reports whether another book already uses the given
// (title, author) pair. excludeID skips the book being updated.
func (r *Repository) TitleAuthorExists(title, author string, excludeID uint) (bool, error) {
	query := r.db.Model(&entities.Book{}).Where("title = ? AND author = ?", title, author)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Exists reports whether a book with the given id is present.
func (r *Repository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Update overwrites all mutable fields of the stored book.
func (r *Repository) Update(book *entities.Book) error {
	return r.db.Model(&entities.Book{}).
		Where("id = ?", book.ID).
		Select("Title", "Author", "Genre", "PublishedYear").
		Updates(book).Error
}

// Delete removes the book together with its reviews and their votes. The
// cascade runs top-down inside one transaction; any failure rolls the whole
// delete back rather than leaving a partial tree.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var reviewIDs []uint
		if err := tx.Model(&entities.Review{}).Where("book_id = ?", id).Pluck("id", &reviewIDs).Error; err != nil {
			return err
		}

		if len(reviewIDs) > 0 {
			if err := tx.Where("review_id IN ?", reviewIDs).Delete(&entities.ReviewVote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("book_id = ?", id).Delete(&entities.Review{}).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&entities.Book{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
