// Package demo seeds a small, deterministic dataset for trying the API out
// without creating users and books by hand.
package demo

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/mrlokans/bookreviews/internal/auth"
	"github.com/mrlokans/bookreviews/internal/database/users"
	"github.com/mrlokans/bookreviews/internal/entities"
	"github.com/mrlokans/bookreviews/internal/services"
)

// DefaultPassword is the password of every seeded demo user.
const DefaultPassword = "password123"

// Seeder populates the database with two users, two books, a review per
// book and cross upvotes.
type Seeder struct {
	auth    *auth.Service
	users   *users.Repository
	books   *services.BookService
	reviews *services.ReviewService
}

func NewSeeder(authService *auth.Service, userRepo *users.Repository, books *services.BookService, reviews *services.ReviewService) *Seeder {
	return &Seeder{
		auth:    authService,
		users:   userRepo,
		books:   books,
		reviews: reviews,
	}
}

// Seed inserts the demo dataset. It is idempotent: when the demo users
// already exist nothing is changed.
func (s *Seeder) Seed() error {
	if _, err := s.users.GetByUsername("alice"); err == nil {
		log.Printf("Demo data already present, skipping seed")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for demo data: %w", err)
	}

	alice, err := s.auth.CreateUser("alice", "alice@example.com", DefaultPassword, entities.UserRoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to create demo user alice: %w", err)
	}
	bob, err := s.auth.CreateUser("bob", "bob@example.com", DefaultPassword, entities.UserRoleMember)
	if err != nil {
		return fmt.Errorf("failed to create demo user bob: %w", err)
	}

	nineteenEightyFour, err := s.createBook(&entities.Book{
		Title:         "1984",
		Author:        "George Orwell",
		Genre:         "Dystopian",
		PublishedYear: 1949,
	})
	if err != nil {
		return err
	}
	hobbit, err := s.createBook(&entities.Book{
		Title:         "The Hobbit",
		Author:        "J.R.R. Tolkien",
		Genre:         "Fantasy",
		PublishedYear: 1937,
	})
	if err != nil {
		return err
	}

	aliceReview, err := s.createReview(&entities.Review{
		Content: "Amazing book!",
		Rating:  5,
		BookID:  nineteenEightyFour.ID,
		UserID:  alice.ID,
	})
	if err != nil {
		return err
	}
	bobReview, err := s.createReview(&entities.Review{
		Content: "Great read!",
		Rating:  4,
		BookID:  hobbit.ID,
		UserID:  bob.ID,
	})
	if err != nil {
		return err
	}

	// Each user upvotes the other's review.
	if err := s.vote(bob.ID, aliceReview.ID); err != nil {
		return err
	}
	if err := s.vote(alice.ID, bobReview.ID); err != nil {
		return err
	}

	log.Printf("Demo data seeded: users alice and bob (password %q), 2 books, 2 reviews", DefaultPassword)
	return nil
}

func (s *Seeder) createBook(book *entities.Book) (*entities.Book, error) {
	res, err := s.books.Create(book)
	if err != nil {
		return nil, fmt.Errorf("failed to seed book %q: %w", book.Title, err)
	}
	if res.Failed() {
		return nil, fmt.Errorf("failed to seed book %q: %s", book.Title, res.Message)
	}
	return res.Data, nil
}

func (s *Seeder) createReview(review *entities.Review) (*entities.Review, error) {
	res, err := s.reviews.Create(review)
	if err != nil {
		return nil, fmt.Errorf("failed to seed review: %w", err)
	}
	if res.Failed() {
		return nil, fmt.Errorf("failed to seed review: %s", res.Message)
	}
	return res.Data, nil
}

func (s *Seeder) vote(userID string, reviewID uint) error {
	res, err := s.reviews.Vote(userID, reviewID, true)
	if err != nil {
		return fmt.Errorf("failed to seed vote: %w", err)
	}
	if res.Failed() {
		return fmt.Errorf("failed to seed vote: %s", res.Message)
	}
	return nil
}
