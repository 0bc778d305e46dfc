// Package services contains the domain logic for the book catalog: input
// validation, referential-integrity checks, the vote upsert and the read-side
// aggregation. Expected failures are returned as result outcomes; only
// unexpected store errors propagate as Go errors.
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookreviews/internal/entities"
	"github.com/mrlokans/bookreviews/internal/result"
	"github.com/mrlokans/bookreviews/internal/validation"
)

// BookStore is the persistence surface the book service depends on.
// Implemented by internal/database/books.Repository.
type BookStore interface {
	Create(book *entities.Book) error
	GetByID(id uint) (*entities.Book, error)
	GetAll(author, genre string, year int, withDetails bool) ([]entities.Book, error)
	TitleAuthorExists(title, author string, excludeID uint) (bool, error)
	Exists(id uint) (bool, error)
	Update(book *entities.Book) error
	Delete(id uint) error
}

// BookService implements create/read/list/update/delete for books.
type BookService struct {
	books BookStore
}

func NewBookService(books BookStore) *BookService {
	return &BookService{books: books}
}

// Create validates the book, rejects duplicate (title, author) pairs and
// persists it. Nothing is written when the outcome is a failure.
func (s *BookService) Create(book *entities.Book) (result.Of[entities.Book], error) {
	if res := validation.ValidateBook(book); res.Failed() {
		return result.FailureOf[entities.Book](res), nil
	}

	exists, err := s.books.TitleAuthorExists(book.Title, book.Author, 0)
	if err != nil {
		return result.Of[entities.Book]{}, fmt.Errorf("check duplicate book: %w", err)
	}
	if exists {
		return result.ConflictOf[entities.Book]("A book with the same title and author already exists"), nil
	}

	if err := s.books.Create(book); err != nil {
		return result.Of[entities.Book]{}, fmt.Errorf("create book: %w", err)
	}
	return result.OKWith(book, "Book created successfully"), nil
}

// Get loads a book with its reviews, each carrying the reviewing user and
// the review's votes.
func (s *BookService) Get(id uint) (result.Of[entities.Book], error) {
	book, err := s.books.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return result.NotFoundOf[entities.Book](fmt.Sprintf("Book with id %d was not found", id)), nil
	}
	if err != nil {
		return result.Of[entities.Book]{}, fmt.Errorf("load book %d: %w", id, err)
	}
	return result.OKWith(book, fmt.Sprintf("Book with id %d was found", id)), nil
}

// GetAll lists books matching the filters; zero values mean no constraint.
// No matches is a success with an empty slice, never a not-found.
func (s *BookService) GetAll(author, genre string, year int, withDetails bool) ([]entities.Book, error) {
	books, err := s.books.GetAll(author, genre, year, withDetails)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Update overwrites all mutable fields of an existing book after
// re-validation. The stored (title, author) uniqueness holds across updates
// as well.
func (s *BookService) Update(book *entities.Book) (result.Of[entities.Book], error) {
	if book == nil {
		return result.InvalidOf[entities.Book]("Book cannot be nil"), nil
	}

	exists, err := s.books.Exists(book.ID)
	if err != nil {
		return result.Of[entities.Book]{}, fmt.Errorf("check book %d: %w", book.ID, err)
	}
	if !exists {
		return result.NotFoundOf[entities.Book](fmt.Sprintf("Book with id %d was not found", book.ID)), nil
	}

	if res := validation.ValidateBook(book); res.Failed() {
		return result.FailureOf[entities.Book](res), nil
	}

	duplicate, err := s.books.TitleAuthorExists(book.Title, book.Author, book.ID)
	if err != nil {
		return result.Of[entities.Book]{}, fmt.Errorf("check duplicate book: %w", err)
	}
	if duplicate {
		return result.ConflictOf[entities.Book]("A book with the same title and author already exists"), nil
	}

	if err := s.books.Update(book); err != nil {
		return result.Of[entities.Book]{}, fmt.Errorf("update book %d: %w", book.ID, err)
	}
	return result.OKWith(book, "Book updated successfully"), nil
}

// Delete removes the book and, transitively, its reviews and their votes.
func (s *BookService) Delete(id uint) (result.Result, error) {
	exists, err := s.books.Exists(id)
	if err != nil {
		return result.Result{}, fmt.Errorf("check book %d: %w", id, err)
	}
	if !exists {
		return result.NotFound(fmt.Sprintf("Book with id %d was not found", id)), nil
	}

	if err := s.books.Delete(id); err != nil {
		return result.Result{}, fmt.Errorf("delete book %d: %w", id, err)
	}
	return result.OK("Book deleted successfully"), nil
}
