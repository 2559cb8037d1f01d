package http

import (
	"net/http"

	"lick-scroll-monetization/pkg/logger"
	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PayoutHandler struct {
	payoutUseCase usecase.PayoutUseCase
	logger        *logger.Logger
}

func NewPayoutHandler(payoutUseCase usecase.PayoutUseCase, logger *logger.Logger) *PayoutHandler {
	return &PayoutHandler{
		payoutUseCase: payoutUseCase,
		logger:        logger,
	}
}

type PayoutRequest struct {
	AmountCents   money.Cents            `json:"amount_cents"`
	PayoutMethod  string                 `json:"payout_method" binding:"required"`
	PayoutDetails map[string]interface{} `json:"payout_details" binding:"required"`
}

// RequestPayout godoc
// @Summary      Request a payout
// @Description  Reserves pending earnings for withdrawal. Requires approved identity verification.
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  PayoutRequest  true  "Payout request"
// @Success      201  {object}  entity.Payout
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /payouts [post]
func (h *PayoutHandler) RequestPayout(c *gin.Context) {
	creatorID, err := principal(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	payout, err := h.payoutUseCase.RequestPayout(c.Request.Context(), creatorID, req.AmountCents, req.PayoutMethod, req.PayoutDetails)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, payout)
}

// ListPayouts godoc
// @Summary      List own payouts
// @Tags         payouts
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Status filter"
// @Param        limit   query  int     false  "Page size"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /payouts [get]
func (h *PayoutHandler) ListPayouts(c *gin.Context) {
	creatorID, err := principal(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	limit, offset := pagination(c)

	payouts, err := h.payoutUseCase.ListPayouts(c.Request.Context(), creatorID, entity.PayoutStatus(c.Query("status")), limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payouts": payouts, "count": len(payouts)})
}

// CancelPayout godoc
// @Summary      Cancel a pending payout
// @Tags         payouts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Payout ID"
// @Success      200  {object}  entity.Payout
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /payouts/{id}/cancel [post]
func (h *PayoutHandler) CancelPayout(c *gin.Context) {
	creatorID, err := principal(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	payoutID, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	payout, err := h.payoutUseCase.CancelPayout(c.Request.Context(), creatorID, payoutID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, payout)
}
