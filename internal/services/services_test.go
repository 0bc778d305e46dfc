package services

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/database/books"
	"github.com/mrlokans/bookreviews/internal/database/reviews"
	"github.com/mrlokans/bookreviews/internal/database/users"
	"github.com/mrlokans/bookreviews/internal/entities"
)

type testEnv struct {
	db          *database.Database
	bookRepo    *books.Repository
	reviewRepo  *reviews.Repository
	userRepo    *users.Repository
	bookService *BookService
	reviews     *ReviewService
}

// setupTestEnv creates a fresh file-backed test database with the full
// service stack on top.
func setupTestEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()
	dbPath := "./test_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	bookRepo := books.NewRepository(db.DB)
	reviewRepo := reviews.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)
	checker := NewChecker(bookRepo, userRepo)

	env := &testEnv{
		db:          db,
		bookRepo:    bookRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		bookService: NewBookService(bookRepo),
		reviews:     NewReviewService(reviewRepo, checker),
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return env, cleanup
}

func (env *testEnv) createUser(t *testing.T, username string) *entities.User {
	t.Helper()
	user, err := env.userRepo.Create(username, username+"@example.com", "x", entities.UserRoleMember)
	require.NoError(t, err)
	return user
}

func (env *testEnv) createBook(t *testing.T, title, author, genre string, year int) *entities.Book {
	t.Helper()
	res, err := env.bookService.Create(&entities.Book{
		Title:         title,
		Author:        author,
		Genre:         genre,
		PublishedYear: year,
	})
	require.NoError(t, err)
	require.True(t, res.Success(), res.Message)
	return res.Data
}

func (env *testEnv) createReview(t *testing.T, bookID uint, userID string, rating int, content string) *entities.Review {
	t.Helper()
	res, err := env.reviews.Create(&entities.Review{
		Content: content,
		Rating:  rating,
		BookID:  bookID,
		UserID:  userID,
	})
	require.NoError(t, err)
	require.True(t, res.Success(), res.Message)
	return res.Data
}
