package http

import (
	"net/http"

	"lick-scroll-monetization/pkg/logger"
	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/services/monetization/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	recorderUseCase usecase.RecorderUseCase
	logger          *logger.Logger
}

func NewPurchaseHandler(recorderUseCase usecase.RecorderUseCase, logger *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		recorderUseCase: recorderUseCase,
		logger:          logger,
	}
}

type TipRequest struct {
	AmountCents money.Cents `json:"amount_cents"`
	PostID      *string     `json:"post_id,omitempty" binding:"omitempty,uuid"`
}

// PurchaseContent godoc
// @Summary      Buy pay-per-view content
// @Description  Unlocks a PPV post, stream or paid message for the caller
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Content ID"
// @Success      201  {object}  entity.PurchaseResult
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /content/{id}/purchase [post]
func (h *PurchaseHandler) PurchaseContent(c *gin.Context) {
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

	result, err := h.recorderUseCase.PurchaseContent(c.Request.Context(), userID, contentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Subscribe godoc
// @Summary      Subscribe to a creator
// @Description  Starts or extends a paid subscription by one period
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Creator ID"
// @Success      201  {object}  entity.PurchaseResult
// @Failure      404  {object}  ErrorResponse
// @Router       /creators/{id}/subscribe [post]
func (h *PurchaseHandler) Subscribe(c *gin.Context) {
	userID, err := principal(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	creatorID, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.recorderUseCase.PurchaseSubscription(c.Request.Context(), userID, creatorID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Unsubscribe godoc
// @Summary      Cancel a subscription
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Creator ID"
// @Success      200  {object}  entity.Subscription
// @Router       /creators/{id}/subscribe [delete]
func (h *PurchaseHandler) Unsubscribe(c *gin.Context) {
	userID, err := principal(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	creatorID, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	subscription, err := h.recorderUseCase.CancelSubscription(c.Request.Context(), userID, creatorID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, subscription)
}

// SendTip godoc
// @Summary      Tip a creator
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string      true  "Creator ID"
// @Param        request  body  TipRequest  true  "Tip"
// @Success      201  {object}  entity.PurchaseResult
// @Failure      400  {object}  ErrorResponse
// @Router       /creators/{id}/tip [post]
func (h *PurchaseHandler) SendTip(c *gin.Context) {
	userID, err := principal(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req TipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	creatorID, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.recorderUseCase.SendTip(c.Request.Context(), userID, creatorID, req.AmountCents, req.PostID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListTransactions godoc
// @Summary      Payment history
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /transactions [get]
func (h *PurchaseHandler) ListTransactions(c *gin.Context) {
	userID, err := principal(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	limit, offset := pagination(c)

	transactions, err := h.recorderUseCase.ListTransactions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions, "count": len(transactions)})
}
