package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookreviews/internal/entities"
)

func TestSummarize(t *testing.T) {
	t.Run("nil book yields zero summary", func(t *testing.T) {
		assert.Equal(t, BookSummary{}, Summarize(nil))
	})

	t.Run("book without reviews yields zero average", func(t *testing.T) {
		summary := Summarize(&entities.Book{Title: "Untouched"})
		assert.Equal(t, 0, summary.ReviewsCount)
		assert.Equal(t, 0.0, summary.AverageRating)
	})

	t.Run("single review", func(t *testing.T) {
		book := &entities.Book{
			Reviews: []entities.Review{{Rating: 5}},
		}
		summary := Summarize(book)
		assert.Equal(t, 1, summary.ReviewsCount)
		assert.Equal(t, 5.0, summary.AverageRating)
	})

	t.Run("mean over several reviews", func(t *testing.T) {
		book := &entities.Book{
			Reviews: []entities.Review{{Rating: 5}, {Rating: 4}, {Rating: 3}},
		}
		summary := Summarize(book)
		assert.Equal(t, 3, summary.ReviewsCount)
		assert.Equal(t, 4.0, summary.AverageRating)
	})

	t.Run("non-integer mean", func(t *testing.T) {
		book := &entities.Book{
			Reviews: []entities.Review{{Rating: 5}, {Rating: 4}},
		}
		summary := Summarize(book)
		assert.Equal(t, 2, summary.ReviewsCount)
		assert.InDelta(t, 4.5, summary.AverageRating, 0.0001)
	})
}
