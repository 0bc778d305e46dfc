// Package http exposes the catalog services over a JSON REST API. The
// controllers only translate outcomes into status codes; all domain rules
// live in internal/services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/result"
)

// failureStatus maps an outcome's failure kind to an HTTP status code.
func failureStatus(r result.Result) int {
	switch r.Kind {
	case result.KindInvalid:
		return http.StatusBadRequest
	case result.KindNotFound:
		return http.StatusNotFound
	case result.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// renderFailure writes a failed outcome as a JSON error response.
func renderFailure(c *gin.Context, r result.Result) {
	c.IndentedJSON(failureStatus(r), gin.H{"error": r.Message})
}

// renderStoreError writes an unexpected store failure.
func renderStoreError(c *gin.Context, err error) {
	c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
