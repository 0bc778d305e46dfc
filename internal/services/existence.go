package services

import (
	"fmt"

	"github.com/mrlokans/bookreviews/internal/result"
)

// BookExistence and UserExistence are the narrow store lookups the checker
// needs. Implemented by the books and users repositories.
type BookExistence interface {
	Exists(id uint) (bool, error)
}

type UserExistence interface {
	Exists(id string) (bool, error)
}

// Checker confirms that referenced books and users exist before a review or
// vote is accepted. A missing reference is an expected, recoverable outcome
// naming the offending identifier, not an error.
type Checker struct {
	books BookExistence
	users UserExistence
}

func NewChecker(books BookExistence, users UserExistence) *Checker {
	return &Checker{books: books, users: users}
}

// CheckBookAndUser verifies both references, reporting the first one that is
// missing.
func (c *Checker) CheckBookAndUser(bookID uint, userID string) (result.Result, error) {
	ok, err := c.books.Exists(bookID)
	if err != nil {
		return result.Result{}, fmt.Errorf("check book existence: %w", err)
	}
	if !ok {
		return result.NotFound(fmt.Sprintf("Book with id %d does not exist", bookID)), nil
	}

	return c.CheckUser(userID)
}

// CheckUser verifies that the user exists.
func (c *Checker) CheckUser(userID string) (result.Result, error) {
	ok, err := c.users.Exists(userID)
	if err != nil {
		return result.Result{}, fmt.Errorf("check user existence: %w", err)
	}
	if !ok {
		return result.NotFound(fmt.Sprintf("User with id %s does not exist", userID)), nil
	}
	return result.OK("Book and user exist"), nil
}
