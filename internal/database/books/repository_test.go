package books

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/entities"
)

func setupTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	dbPath := "./test_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestRepository_TitleAuthorExists(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	book := &entities.Book{Title: "1984", Author: "George Orwell", Genre: "Dystopian", PublishedYear: 1949}
	require.NoError(t, repo.Create(book))

	t.Run("finds the pair", func(t *testing.T) {
		exists, err := repo.TitleAuthorExists("1984", "George Orwell", 0)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("different author does not match", func(t *testing.T) {
		exists, err := repo.TitleAuthorExists("1984", "Aldous Huxley", 0)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("excludeID skips the book itself", func(t *testing.T) {
		exists, err := repo.TitleAuthorExists("1984", "George Orwell", book.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestRepository_GetAll(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	require.NoError(t, repo.Create(&entities.Book{Title: "1984", Author: "George Orwell", Genre: "Dystopian", PublishedYear: 1949}))
	require.NoError(t, repo.Create(&entities.Book{Title: "Animal Farm", Author: "George Orwell", Genre: "Satire", PublishedYear: 1945}))
	require.NoError(t, repo.Create(&entities.Book{Title: "Brave New World", Author: "Aldous Huxley", Genre: "Dystopian", PublishedYear: 1932}))

	t.Run("author substring", func(t *testing.T) {
		books, err := repo.GetAll("Orwell", "", 0, false)
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("genre exact", func(t *testing.T) {
		books, err := repo.GetAll("", "Dystopian", 0, false)
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("year exact", func(t *testing.T) {
		books, err := repo.GetAll("", "", 1932, false)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Brave New World", books[0].Title)
	})

	t.Run("all filters together", func(t *testing.T) {
		books, err := repo.GetAll("Huxley", "Dystopian", 1932, false)
		require.NoError(t, err)
		assert.Len(t, books, 1)
	})

	t.Run("reviews stay unloaded without details", func(t *testing.T) {
		books, err := repo.GetAll("", "", 0, false)
		require.NoError(t, err)
		for _, book := range books {
			assert.Nil(t, book.Reviews)
		}
	})
}

func TestRepository_Delete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	t.Run("missing book yields record-not-found", func(t *testing.T) {
		err := repo.Delete(42)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("book without reviews deletes cleanly", func(t *testing.T) {
		book := &entities.Book{Title: "Standalone", Author: "Nobody", Genre: "Mystery", PublishedYear: 2001}
		require.NoError(t, repo.Create(book))
		require.NoError(t, repo.Delete(book.ID))

		exists, err := repo.Exists(book.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
