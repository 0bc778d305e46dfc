package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/audit"
	"github.com/mrlokans/bookreviews/internal/auth"
	"github.com/mrlokans/bookreviews/internal/entities"
	"github.com/mrlokans/bookreviews/internal/services"
)

type ReviewsController struct {
	reviews *services.ReviewService
	auditor *audit.Service
}

func NewReviewsController(reviews *services.ReviewService, auditor *audit.Service) *ReviewsController {
	return &ReviewsController{
		reviews: reviews,
		auditor: auditor,
	}
}

type reviewRequest struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
	BookID  uint   `json:"book_id"`
	UserID  string `json:"user_id"`
}

type voteRequest struct {
	IsUpvote bool   `json:"is_upvote"`
	UserID   string `json:"user_id"` // optional, defaults to the authenticated user
}

// GetAll lists every review.
func (ctrl *ReviewsController) GetAll(c *gin.Context) {
	reviews, err := ctrl.reviews.GetAll()
	if err != nil {
		renderStoreError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}

// Get returns a single review with its book and votes.
func (ctrl *ReviewsController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := ctrl.reviews.Get(id)
	if err != nil {
		renderStoreError(c, err)
		return
	}
	if res.Failed() {
		renderFailure(c, res.Result)
		return
	}

	c.IndentedJSON(http.StatusOK, res.Data)
}

// Create adds a review. When no user_id is supplied the authenticated
// user becomes the author.
func (ctrl *ReviewsController) Create(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = auth.GetUserID(c)
	}

	review := &entities.Review{
		Content: req.Content,
		Rating:  req.Rating,
		BookID:  req.BookID,
		UserID:  userID,
	}

	res, err := ctrl.reviews.Create(review)
	if err != nil {
		renderStoreError(c, err)
		return
	}
	if res.Failed() {
		ctrl.auditor.RecordFailure(auth.GetUserID(c), entities.AuditEventReview, "review_create", res.Message)
		renderFailure(c, res.Result)
		return
	}

	ctrl.auditor.Record(auth.GetUserID(c), entities.AuditEventReview, "review_create", "", res.Data.ID)
	c.IndentedJSON(http.StatusCreated, res.Data)
}

// Update overwrites a review's content, rating and references.
func (ctrl *ReviewsController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = auth.GetUserID(c)
	}

	review := &entities.Review{
		ID:      id,
		Content: req.Content,
		Rating:  req.Rating,
		BookID:  req.BookID,
		UserID:  userID,
	}

	res, err := ctrl.reviews.Update(review)
	if err != nil {
		renderStoreError(c, err)
		return
	}
	if res.Failed() {
		renderFailure(c, res.Result)
		return
	}

	ctrl.auditor.Record(auth.GetUserID(c), entities.AuditEventReview, "review_update", "", res.Data.ID)
	c.IndentedJSON(http.StatusOK, res.Data)
}

// Delete removes a review and its votes.
func (ctrl *ReviewsController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := ctrl.reviews.Delete(id)
	if err != nil {
		renderStoreError(c, err)
		return
	}
	if res.Failed() {
		renderFailure(c, res)
		return
	}

	ctrl.auditor.Record(auth.GetUserID(c), entities.AuditEventReview, "review_delete", "", id)
	c.IndentedJSON(http.StatusOK, gin.H{"message": res.Message})
}

// Vote records the authenticated user's up- or downvote on a review.
// Voting again replaces the previous vote.
func (ctrl *ReviewsController) Vote(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = auth.GetUserID(c)
	}

	res, err := ctrl.reviews.Vote(userID, id, req.IsUpvote)
	if err != nil {
		renderStoreError(c, err)
		return
	}
	if res.Failed() {
		ctrl.auditor.RecordFailure(userID, entities.AuditEventVote, "review_vote", res.Message)
		renderFailure(c, res)
		return
	}

	ctrl.auditor.Record(userID, entities.AuditEventVote, "review_vote", "", id)
	c.IndentedJSON(http.StatusOK, gin.H{"message": res.Message})
}
