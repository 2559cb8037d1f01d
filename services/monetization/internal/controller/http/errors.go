package http

import (
	"net/http"
	"strconv"

	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// respondError writes domain errors with their stable reason. Anything else
// is logged and reported without detail.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	if appErr, ok := apperror.As(err); ok {
		c.JSON(apperror.HTTPStatus(err), ErrorResponse{Error: appErr.Message, Reason: appErr.Reason})
		return
	}

	log.WithField("path", c.FullPath()).Error("Request failed: %v", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", Reason: "internal"})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Reason: apperror.ErrInvalidInput.Reason})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 50
	offset = 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	return limit, offset
}
