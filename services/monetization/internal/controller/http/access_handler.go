package http

import (
	"net/http"

	"lick-scroll-monetization/pkg/logger"
	"lick-scroll-monetization/services/monetization/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AccessHandler struct {
	entitlementUseCase usecase.EntitlementUseCase
	logger             *logger.Logger
}

func NewAccessHandler(entitlementUseCase usecase.EntitlementUseCase, logger *logger.Logger) *AccessHandler {
	return &AccessHandler{
		entitlementUseCase: entitlementUseCase,
		logger:             logger,
	}
}

// CheckAccess godoc
// @Summary      Check content access
// @Description  Reports whether the caller may view a post, stream or message. Works without a token for free content.
// @Tags         access
// @Produce      json
// @Param        id   path  string  true  "Content ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /content/{id}/access [get]
func (h *AccessHandler) CheckAccess(c *gin.Context) {
	userID, err := principal(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	contentID, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	hasAccess, err := h.entitlementUseCase.HasAccess(c.Request.Context(), userID, contentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content_id": contentID, "has_access": hasAccess})
}

// ListEntitlements godoc
// @Summary      List entitlements
// @Description  Active access grants of the authenticated user
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /entitlements [get]
func (h *AccessHandler) ListEntitlements(c *gin.Context) {
	userID, err := principal(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	limit, offset := pagination(c)

	entitlements, err := h.entitlementUseCase.ListForUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entitlements": entitlements, "count": len(entitlements)})
}
