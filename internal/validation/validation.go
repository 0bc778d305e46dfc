// Package validation holds the structural rules a book or review must pass
// before it is persisted. Rules run in a fixed order and the first violation
// wins; the functions are pure and never touch the store.
package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mrlokans/bookreviews/internal/entities"
	"github.com/mrlokans/bookreviews/internal/result"
)

// MaxReviewContentLength caps review content, counted in runes.
const MaxReviewContentLength = 1000

func ValidateBook(book *entities.Book) result.Result {
	if book == nil {
		return result.Invalid("Book cannot be nil")
	}
	if strings.TrimSpace(book.Title) == "" {
		return result.Invalid("Book title is required")
	}
	if strings.TrimSpace(book.Author) == "" {
		return result.Invalid("Book author is required")
	}
	if strings.TrimSpace(book.Genre) == "" {
		return result.Invalid("Book genre is required")
	}
	currentYear := time.Now().UTC().Year()
	if book.PublishedYear <= 0 || book.PublishedYear > currentYear {
		return result.Invalid(fmt.Sprintf("Published year must be between 1 and %d", currentYear))
	}
	return result.OK("Book is valid")
}

func ValidateReview(review *entities.Review) result.Result {
	if review == nil {
		return result.Invalid("Review cannot be nil")
	}
	if strings.TrimSpace(review.Content) == "" {
		return result.Invalid("Review content is required")
	}
	if utf8.RuneCountInString(review.Content) > MaxReviewContentLength {
		return result.Invalid("Review content cannot exceed 1000 characters")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return result.Invalid("Rating must be between 1 and 5")
	}
	if review.BookID == 0 {
		return result.Invalid("Review must reference a book")
	}
	return result.OK("Review is valid")
}
