package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/audit"
	"github.com/mrlokans/bookreviews/internal/auth"
	"github.com/mrlokans/bookreviews/internal/entities"
	"github.com/mrlokans/bookreviews/internal/services"
)

type BooksController struct {
	books   *services.BookService
	reviews *services.ReviewService
	auditor *audit.Service
}

func NewBooksController(books *services.BookService, reviews *services.ReviewService, auditor *audit.Service) *BooksController {
	return &BooksController{
		books:   books,
		reviews: reviews,
		auditor: auditor,
	}
}

type bookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Genre         string `json:"genre"`
	PublishedYear int    `json:"published_year"`
}

// bookDetailResponse carries the book with its reviews plus the read-time
// aggregates.
type bookDetailResponse struct {
	entities.Book
	services.BookSummary
}

// GetAll lists books, optionally filtered by author substring, exact genre
// and exact published year. with_details=true eagerly loads reviews.
func (ctrl *BooksController) GetAll(c *gin.Context) {
	author := c.Query("author")
	genre := c.Query("genre")

	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
			return
		}
		year = parsed
	}

	withDetails := c.Query("with_details") == "true"

	books, err := ctrl.books.GetAll(author, genre, year, withDetails)
	if err != nil {
		renderStoreError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// Get returns a single book with its reviews, their users and votes, plus
// the computed review count and average rating.
func (ctrl *BooksController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := ctrl.books.Get(id)
	if err != nil {
		renderStoreError(c, err)
		return
	}
	if res.Failed() {
		renderFailure(c, res.Result)
		return
	}

	c.IndentedJSON(http.StatusOK, bookDetailResponse{
		Book:        *res.Data,
		BookSummary: services.Summarize(res.Data),
	})
}

// GetReviews lists all reviews of a book.
func (ctrl *BooksController) GetReviews(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	reviews, err := ctrl.reviews.GetByBookID(id)
	if err != nil {
		renderStoreError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}

// Create adds a book to the catalog.
func (ctrl *BooksController) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	book := &entities.Book{
		Title:         req.Title,
		Author:        req.Author,
		Genre:         req.Genre,
		PublishedYear: req.PublishedYear,
	}

	res, err := ctrl.books.Create(book)
	if err != nil {
		renderStoreError(c, err)
		return
	}
	if res.Failed() {
		ctrl.auditor.RecordFailure(auth.GetUserID(c), entities.AuditEventBook, "book_create", res.Message)
		renderFailure(c, res.Result)
		return
	}

	ctrl.auditor.Record(auth.GetUserID(c), entities.AuditEventBook, "book_create", res.Data.Title, res.Data.ID)
	c.IndentedJSON(http.StatusCreated, res.Data)
}

// Update overwrites all mutable fields of a book.
func (ctrl *BooksController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	book := &entities.Book{
		ID:            id,
		Title:         req.Title,
		Author:        req.Author,
		Genre:         req.Genre,
		PublishedYear: req.PublishedYear,
	}

	res, err := ctrl.books.Update(book)
	if err != nil {
		renderStoreError(c, err)
		return
	}
	if res.Failed() {
		renderFailure(c, res.Result)
		return
	}

	ctrl.auditor.Record(auth.GetUserID(c), entities.AuditEventBook, "book_update", res.Data.Title, res.Data.ID)
	c.IndentedJSON(http.StatusOK, res.Data)
}

// Delete removes a book and, transitively, its reviews and votes.
func (ctrl *BooksController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := ctrl.books.Delete(id)
	if err != nil {
		renderStoreError(c, err)
		return
	}
	if res.Failed() {
		renderFailure(c, res)
		return
	}

	ctrl.auditor.Record(auth.GetUserID(c), entities.AuditEventBook, "book_delete", "", id)
	c.IndentedJSON(http.StatusOK, gin.H{"message": res.Message})
}

// parseID reads a positive integer path parameter, answering 400 itself when
// malformed.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}
