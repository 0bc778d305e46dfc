package validation

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookreviews/internal/entities"
	"github.com/mrlokans/bookreviews/internal/result"
)

func validBook() *entities.Book {
	return &entities.Book{
		Title:         "The Hobbit",
		Author:        "J.R.R. Tolkien",
		Genre:         "Fantasy",
		PublishedYear: 1937,
	}
}

func validReview() *entities.Review {
	return &entities.Review{
		Content: "Great read!",
		Rating:  4,
		BookID:  1,
	}
}

func TestValidateBook(t *testing.T) {
	currentYear := time.Now().UTC().Year()

	t.Run("valid book passes", func(t *testing.T) {
		res := ValidateBook(validBook())
		assert.True(t, res.Success())
	})

	t.Run("nil book", func(t *testing.T) {
		res := ValidateBook(nil)
		assert.Equal(t, result.KindInvalid, res.Kind)
		assert.Equal(t, "Book cannot be nil", res.Message)
	})

	tests := []struct {
		name    string
		mutate  func(*entities.Book)
		message string
	}{
		{"empty title", func(b *entities.Book) { b.Title = "" }, "Book title is required"},
		{"whitespace title", func(b *entities.Book) { b.Title = "   " }, "Book title is required"},
		{"empty author", func(b *entities.Book) { b.Author = "" }, "Book author is required"},
		{"empty genre", func(b *entities.Book) { b.Genre = "\t" }, "Book genre is required"},
		{"zero year", func(b *entities.Book) { b.PublishedYear = 0 },
			fmt.Sprintf("Published year must be between 1 and %d", currentYear)},
		{"negative year", func(b *entities.Book) { b.PublishedYear = -5 },
			fmt.Sprintf("Published year must be between 1 and %d", currentYear)},
		{"future year", func(b *entities.Book) { b.PublishedYear = currentYear + 1 },
			fmt.Sprintf("Published year must be between 1 and %d", currentYear)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := validBook()
			tt.mutate(book)

			res := ValidateBook(book)
			assert.Equal(t, result.KindInvalid, res.Kind)
			assert.Equal(t, tt.message, res.Message)
		})
	}

	t.Run("first violation wins", func(t *testing.T) {
		res := ValidateBook(&entities.Book{})
		assert.Equal(t, "Book title is required", res.Message)
	})

	t.Run("current year is allowed", func(t *testing.T) {
		book := validBook()
		book.PublishedYear = currentYear
		assert.True(t, ValidateBook(book).Success())
	})
}

func TestValidateReview(t *testing.T) {
	t.Run("valid review passes", func(t *testing.T) {
		res := ValidateReview(validReview())
		assert.True(t, res.Success())
	})

	t.Run("nil review", func(t *testing.T) {
		res := ValidateReview(nil)
		assert.Equal(t, result.KindInvalid, res.Kind)
		assert.Equal(t, "Review cannot be nil", res.Message)
	})

	tests := []struct {
		name    string
		mutate  func(*entities.Review)
		message string
	}{
		{"empty content", func(r *entities.Review) { r.Content = "" }, "Review content is required"},
		{"whitespace content", func(r *entities.Review) { r.Content = "  \n" }, "Review content is required"},
		{"content too long", func(r *entities.Review) { r.Content = strings.Repeat("a", MaxReviewContentLength+1) },
			"Review content cannot exceed 1000 characters"},
		{"rating too low", func(r *entities.Review) { r.Rating = 0 }, "Rating must be between 1 and 5"},
		{"rating too high", func(r *entities.Review) { r.Rating = 6 }, "Rating must be between 1 and 5"},
		{"missing book reference", func(r *entities.Review) { r.BookID = 0 }, "Review must reference a book"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review := validReview()
			tt.mutate(review)

			res := ValidateReview(review)
			assert.Equal(t, result.KindInvalid, res.Kind)
			assert.Equal(t, tt.message, res.Message)
		})
	}

	t.Run("length limit counts runes not bytes", func(t *testing.T) {
		review := validReview()
		review.Content = strings.Repeat("ä", MaxReviewContentLength)
		assert.True(t, ValidateReview(review).Success())

		review.Content = strings.Repeat("ä", MaxReviewContentLength+1)
		assert.True(t, ValidateReview(review).Failed())
	})

	t.Run("content at exactly the limit passes", func(t *testing.T) {
		review := validReview()
		review.Content = strings.Repeat("a", MaxReviewContentLength)
		assert.True(t, ValidateReview(review).Success())
	})

	t.Run("all ratings from 1 to 5 pass", func(t *testing.T) {
		for rating := 1; rating <= 5; rating++ {
			review := validReview()
			review.Rating = rating
			assert.True(t, ValidateReview(review).Success(), "rating %d", rating)
		}
	})
}
