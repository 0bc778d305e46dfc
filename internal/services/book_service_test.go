package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookreviews/internal/entities"
	"github.com/mrlokans/bookreviews/internal/result"
)

func TestBookService_Create(t *testing.T) {
	t.Run("valid book is persisted with an id", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		res, err := env.bookService.Create(&entities.Book{
			Title:         "1984",
			Author:        "George Orwell",
			Genre:         "Dystopian",
			PublishedYear: 1949,
		})
		require.NoError(t, err)
		assert.True(t, res.Success())
		assert.Equal(t, "Book created successfully", res.Message)
		assert.NotZero(t, res.Data.ID)
	})

	t.Run("invalid book is rejected and not persisted", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		res, err := env.bookService.Create(&entities.Book{
			Author:        "George Orwell",
			Genre:         "Dystopian",
			PublishedYear: 1949,
		})
		require.NoError(t, err)
		assert.Equal(t, result.KindInvalid, res.Kind)
		assert.Equal(t, "Book title is required", res.Message)
		assert.Nil(t, res.Data)

		all, err := env.bookService.GetAll("", "", 0, false)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("duplicate title and author is a conflict", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		env.createBook(t, "1984", "George Orwell", "Dystopian", 1949)

		res, err := env.bookService.Create(&entities.Book{
			Title:         "1984",
			Author:        "George Orwell",
			Genre:         "Fiction",
			PublishedYear: 1950,
		})
		require.NoError(t, err)
		assert.Equal(t, result.KindConflict, res.Kind)
		assert.Equal(t, "A book with the same title and author already exists", res.Message)
	})

	t.Run("same title by a different author is fine", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		env.createBook(t, "Collected Poems", "W.B. Yeats", "Poetry", 1933)

		res, err := env.bookService.Create(&entities.Book{
			Title:         "Collected Poems",
			Author:        "T.S. Eliot",
			Genre:         "Poetry",
			PublishedYear: 1936,
		})
		require.NoError(t, err)
		assert.True(t, res.Success())
	})
}

func TestBookService_Get(t *testing.T) {
	t.Run("missing book is a not-found outcome", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		res, err := env.bookService.Get(42)
		require.NoError(t, err)
		assert.Equal(t, result.KindNotFound, res.Kind)
		assert.Equal(t, "Book with id 42 was not found", res.Message)
		assert.Nil(t, res.Data)
	})

	t.Run("loads reviews with users and votes", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		alice := env.createUser(t, "alice")
		bob := env.createUser(t, "bob")
		book := env.createBook(t, "The Hobbit", "J.R.R. Tolkien", "Fantasy", 1937)
		review := env.createReview(t, book.ID, alice.ID, 4, "Great read!")

		voteRes, err := env.reviews.Vote(bob.ID, review.ID, true)
		require.NoError(t, err)
		require.True(t, voteRes.Success())

		res, err := env.bookService.Get(book.ID)
		require.NoError(t, err)
		require.True(t, res.Success())

		require.Len(t, res.Data.Reviews, 1)
		loaded := res.Data.Reviews[0]
		require.NotNil(t, loaded.User)
		assert.Equal(t, "alice", loaded.User.Username)
		require.Len(t, loaded.Votes, 1)
		assert.True(t, loaded.Votes[0].IsUpvote)
	})
}

func TestBookService_GetAll(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	env.createBook(t, "1984", "George Orwell", "Dystopian", 1949)
	env.createBook(t, "Animal Farm", "George Orwell", "Satire", 1945)
	env.createBook(t, "The Hobbit", "J.R.R. Tolkien", "Fantasy", 1937)

	t.Run("no filters returns everything", func(t *testing.T) {
		all, err := env.bookService.GetAll("", "", 0, false)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("author filter is a substring match", func(t *testing.T) {
		books, err := env.bookService.GetAll("Orwell", "", 0, false)
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("filters compose with AND", func(t *testing.T) {
		books, err := env.bookService.GetAll("Orwell", "Dystopian", 1949, false)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "1984", books[0].Title)
	})

	t.Run("no matches is a success with an empty slice", func(t *testing.T) {
		books, err := env.bookService.GetAll("", "Romance", 0, false)
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestBookService_Update(t *testing.T) {
	t.Run("nil book is invalid", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		res, err := env.bookService.Update(nil)
		require.NoError(t, err)
		assert.Equal(t, result.KindInvalid, res.Kind)
		assert.Equal(t, "Book cannot be nil", res.Message)
	})

	t.Run("missing book is a not-found outcome", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		res, err := env.bookService.Update(&entities.Book{
			ID:            99,
			Title:         "Ghost",
			Author:        "Nobody",
			Genre:         "Mystery",
			PublishedYear: 2000,
		})
		require.NoError(t, err)
		assert.Equal(t, result.KindNotFound, res.Kind)
		assert.Equal(t, "Book with id 99 was not found", res.Message)
	})

	t.Run("overwrites all mutable fields", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		book := env.createBook(t, "1984", "George Orwell", "Dystopian", 1949)

		res, err := env.bookService.Update(&entities.Book{
			ID:            book.ID,
			Title:         "Nineteen Eighty-Four",
			Author:        "George Orwell",
			Genre:         "Fiction",
			PublishedYear: 1949,
		})
		require.NoError(t, err)
		require.True(t, res.Success(), res.Message)

		reloaded, err := env.bookService.Get(book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Nineteen Eighty-Four", reloaded.Data.Title)
		assert.Equal(t, "Fiction", reloaded.Data.Genre)
	})

	t.Run("cannot take another book's title and author", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		env.createBook(t, "1984", "George Orwell", "Dystopian", 1949)
		other := env.createBook(t, "Animal Farm", "George Orwell", "Satire", 1945)

		res, err := env.bookService.Update(&entities.Book{
			ID:            other.ID,
			Title:         "1984",
			Author:        "George Orwell",
			Genre:         "Satire",
			PublishedYear: 1945,
		})
		require.NoError(t, err)
		assert.Equal(t, result.KindConflict, res.Kind)
	})

	t.Run("keeping its own title and author is not a conflict", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		book := env.createBook(t, "1984", "George Orwell", "Dystopian", 1949)

		res, err := env.bookService.Update(&entities.Book{
			ID:            book.ID,
			Title:         "1984",
			Author:        "George Orwell",
			Genre:         "Classics",
			PublishedYear: 1949,
		})
		require.NoError(t, err)
		assert.True(t, res.Success(), res.Message)
	})
}

func TestBookService_Delete(t *testing.T) {
	t.Run("missing book is a not-found outcome", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		res, err := env.bookService.Delete(7)
		require.NoError(t, err)
		assert.Equal(t, result.KindNotFound, res.Kind)
		assert.Equal(t, "Book with id 7 was not found", res.Message)
	})

	t.Run("cascade removes reviews and votes", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		alice := env.createUser(t, "alice")
		bob := env.createUser(t, "bob")
		book := env.createBook(t, "The Hobbit", "J.R.R. Tolkien", "Fantasy", 1937)
		review := env.createReview(t, book.ID, alice.ID, 5, "Amazing book!")

		voteRes, err := env.reviews.Vote(bob.ID, review.ID, true)
		require.NoError(t, err)
		require.True(t, voteRes.Success())

		res, err := env.bookService.Delete(book.ID)
		require.NoError(t, err)
		assert.True(t, res.Success())
		assert.Equal(t, "Book deleted successfully", res.Message)

		var bookCount, reviewCount, voteCount int64
		require.NoError(t, env.db.DB.Model(&entities.Book{}).Count(&bookCount).Error)
		require.NoError(t, env.db.DB.Model(&entities.Review{}).Count(&reviewCount).Error)
		require.NoError(t, env.db.DB.Model(&entities.ReviewVote{}).Count(&voteCount).Error)
		assert.Zero(t, bookCount)
		assert.Zero(t, reviewCount)
		assert.Zero(t, voteCount)

		// The reviewing users stay.
		exists, err := env.userRepo.Exists(alice.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("only the targeted book's tree is removed", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		alice := env.createUser(t, "alice")
		doomed := env.createBook(t, "1984", "George Orwell", "Dystopian", 1949)
		kept := env.createBook(t, "The Hobbit", "J.R.R. Tolkien", "Fantasy", 1937)
		env.createReview(t, doomed.ID, alice.ID, 5, "Amazing book!")
		keptReview := env.createReview(t, kept.ID, alice.ID, 4, "Great read!")

		res, err := env.bookService.Delete(doomed.ID)
		require.NoError(t, err)
		require.True(t, res.Success())

		remaining, err := env.reviews.GetByBookID(kept.ID)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, keptReview.ID, remaining[0].ID)
	})
}

func TestChecker(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	alice := env.createUser(t, "alice")
	book := env.createBook(t, "1984", "George Orwell", "Dystopian", 1949)
	checker := NewChecker(env.bookRepo, env.userRepo)

	t.Run("both present", func(t *testing.T) {
		res, err := checker.CheckBookAndUser(book.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, res.Success())
	})

	t.Run("missing book is reported first", func(t *testing.T) {
		res, err := checker.CheckBookAndUser(999, "no-such-user")
		require.NoError(t, err)
		assert.Equal(t, result.KindNotFound, res.Kind)
		assert.Equal(t, "Book with id 999 does not exist", res.Message)
	})

	t.Run("missing user names the identifier", func(t *testing.T) {
		res, err := checker.CheckBookAndUser(book.ID, "no-such-user")
		require.NoError(t, err)
		assert.Equal(t, result.KindNotFound, res.Kind)
		assert.Equal(t, fmt.Sprintf("User with id %s does not exist", "no-such-user"), res.Message)
	})
}
