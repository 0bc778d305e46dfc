package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookreviews/internal/entities"
	"github.com/mrlokans/bookreviews/internal/result"
	"github.com/mrlokans/bookreviews/internal/validation"
)

// ReviewStore is the persistence surface the review service depends on.
// Implemented by internal/database/reviews.Repository.
type ReviewStore interface {
	Create(review *entities.Review) error
	GetByID(id uint) (*entities.Review, error)
	GetByBookID(bookID uint) ([]entities.Review, error)
	GetAll() ([]entities.Review, error)
	Exists(id uint) (bool, error)
	Update(review *entities.Review) error
	Delete(id uint) error
	GetVote(reviewID uint, userID string) (*entities.ReviewVote, error)
	UpsertVote(reviewID uint, userID string, isUpvote bool) error
	UpdateVote(voteID uint, isUpvote bool) error
}

// ReviewService implements review CRUD and the vote upsert.
type ReviewService struct {
	reviews ReviewStore
	checker *Checker
}

func NewReviewService(reviews ReviewStore, checker *Checker) *ReviewService {
	return &ReviewService{reviews: reviews, checker: checker}
}

// Create validates the review, verifies the referenced book and user exist
// and persists it with a server-assigned creation time. Nothing is written
// when the outcome is a failure.
func (s *ReviewService) Create(review *entities.Review) (result.Of[entities.Review], error) {
	if res := validation.ValidateReview(review); res.Failed() {
		return result.FailureOf[entities.Review](res), nil
	}

	res, err := s.checker.CheckBookAndUser(review.BookID, review.UserID)
	if err != nil {
		return result.Of[entities.Review]{}, err
	}
	if res.Failed() {
		return result.FailureOf[entities.Review](res), nil
	}

	review.DateCreated = time.Now().UTC()
	if err := s.reviews.Create(review); err != nil {
		return result.Of[entities.Review]{}, fmt.Errorf("create review: %w", err)
	}
	return result.OKWith(review, "Review created successfully"), nil
}

// Get loads a review with its book reference and votes.
func (s *ReviewService) Get(id uint) (result.Of[entities.Review], error) {
	review, err := s.reviews.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return result.NotFoundOf[entities.Review](fmt.Sprintf("Review with id %d was not found", id)), nil
	}
	if err != nil {
		return result.Of[entities.Review]{}, fmt.Errorf("load review %d: %w", id, err)
	}
	return result.OKWith(review, fmt.Sprintf("Review with id %d was found", id)), nil
}

// GetByBookID lists all reviews of a book, each with its user reference and
// votes. A book without reviews yields an empty slice.
func (s *ReviewService) GetByBookID(bookID uint) ([]entities.Review, error) {
	reviews, err := s.reviews.GetByBookID(bookID)
	if err != nil {
		return nil, fmt.Errorf("list reviews for book %d: %w", bookID, err)
	}
	return reviews, nil
}

// GetAll lists every review with its book reference and votes.
func (s *ReviewService) GetAll() ([]entities.Review, error) {
	reviews, err := s.reviews.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Update overwrites the mutable fields of an existing review after
// re-validation and re-checking both references. DateCreated is immutable.
func (s *ReviewService) Update(review *entities.Review) (result.Of[entities.Review], error) {
	if review == nil {
		return result.InvalidOf[entities.Review]("Review cannot be nil"), nil
	}

	exists, err := s.reviews.Exists(review.ID)
	if err != nil {
		return result.Of[entities.Review]{}, fmt.Errorf("check review %d: %w", review.ID, err)
	}
	if !exists {
		return result.NotFoundOf[entities.Review](fmt.Sprintf("Review with id %d was not found", review.ID)), nil
	}

	if res := validation.ValidateReview(review); res.Failed() {
		return result.FailureOf[entities.Review](res), nil
	}

	res, err := s.checker.CheckBookAndUser(review.BookID, review.UserID)
	if err != nil {
		return result.Of[entities.Review]{}, err
	}
	if res.Failed() {
		return result.FailureOf[entities.Review](res), nil
	}

	if err := s.reviews.Update(review); err != nil {
		return result.Of[entities.Review]{}, fmt.Errorf("update review %d: %w", review.ID, err)
	}
	return result.OKWith(review, "Review updated successfully"), nil
}

// Delete removes the review and its votes.
func (s *ReviewService) Delete(id uint) (result.Result, error) {
	exists, err := s.reviews.Exists(id)
	if err != nil {
		return result.Result{}, fmt.Errorf("check review %d: %w", id, err)
	}
	if !exists {
		return result.NotFound(fmt.Sprintf("Review with id %d was not found", id)), nil
	}

	if err := s.reviews.Delete(id); err != nil {
		return result.Result{}, fmt.Errorf("delete review %d: %w", id, err)
	}
	return result.OK("Review deleted successfully"), nil
}

// Vote registers a user's up/down vote on a review: the first call for a
// (review, user) pair inserts a vote, later calls overwrite is_upvote in
// place. Repeated identical calls are idempotent. The read-then-write below
// is an optimization; the unique index on (review_id, user_id) is what keeps
// concurrent callers down to a single row.
func (s *ReviewService) Vote(userID string, reviewID uint, isUpvote bool) (result.Result, error) {
	res, err := s.checker.CheckUser(userID)
	if err != nil {
		return result.Result{}, err
	}
	if res.Failed() {
		return result.NotFound(fmt.Sprintf("User with id %s was not found", userID)), nil
	}

	exists, err := s.reviews.Exists(reviewID)
	if err != nil {
		return result.Result{}, fmt.Errorf("check review %d: %w", reviewID, err)
	}
	if !exists {
		return result.NotFound(fmt.Sprintf("Review with id %d was not found", reviewID)), nil
	}

	existing, err := s.reviews.GetVote(reviewID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return result.Result{}, fmt.Errorf("load vote: %w", err)
	}

	if existing != nil {
		if err := s.reviews.UpdateVote(existing.ID, isUpvote); err != nil {
			return result.Result{}, fmt.Errorf("update vote: %w", err)
		}
	} else {
		if err := s.reviews.UpsertVote(reviewID, userID, isUpvote); err != nil {
			return result.Result{}, fmt.Errorf("register vote: %w", err)
		}
	}

	return result.OK("Vote registered successfully"), nil
}
