package services

import "github.com/mrlokans/bookreviews/internal/entities"

// BookSummary holds the values derived from a book's loaded reviews. It is
// recomputed on every read and never persisted, so it always reflects the
// review set it was computed from.
type BookSummary struct {
	ReviewsCount  int     `json:"reviews_count"`
	AverageRating float64 `json:"average_rating"`
}

// Summarize computes the review count and mean rating for a book whose
// reviews are loaded. A book without reviews has an average of 0.
func Summarize(book *entities.Book) BookSummary {
	if book == nil || len(book.Reviews) == 0 {
		return BookSummary{}
	}

	total := 0
	for _, review := range book.Reviews {
		total += review.Rating
	}

	return BookSummary{
		ReviewsCount:  len(book.Reviews),
		AverageRating: float64(total) / float64(len(book.Reviews)),
	}
}
