package http

import (
	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// principal returns the caller's id in canonical form, or "" for anonymous
// callers.
func principal(c *gin.Context) (string, error) {
	id := c.GetString(middleware.ContextUserID)
	if id == "" {
		return "", nil
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperror.ErrInvalidInput.Withf("principal id must be a UUID")
	}
	return parsed.String(), nil
}

// pathID validates the :id route parameter before it reaches a uuid column.
func pathID(c *gin.Context) (string, error) {
	id := c.Param("id")
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperror.ErrInvalidInput.Withf("id %q is not a valid UUID", id)
	}
	return parsed.String(), nil
}
