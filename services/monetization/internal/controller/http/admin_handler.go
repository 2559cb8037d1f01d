package http

import (
	"net/http"
	"time"

	"lick-scroll-monetization/pkg/logger"
	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/usecase"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves operator actions. Routes are gated by role.
type AdminHandler struct {
	payoutUseCase      usecase.PayoutUseCase
	recorderUseCase    usecase.RecorderUseCase
	entitlementUseCase usecase.EntitlementUseCase
	ledgerUseCase      usecase.LedgerUseCase
	logger             *logger.Logger
}

func NewAdminHandler(payoutUseCase usecase.PayoutUseCase, recorderUseCase usecase.RecorderUseCase, entitlementUseCase usecase.EntitlementUseCase, ledgerUseCase usecase.LedgerUseCase, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		payoutUseCase:      payoutUseCase,
		recorderUseCase:    recorderUseCase,
		entitlementUseCase: entitlementUseCase,
		ledgerUseCase:      ledgerUseCase,
		logger:             logger,
	}
}

type ProcessPayoutRequest struct {
	Action        string  `json:"action" binding:"required"`
	AdminNotes    string  `json:"admin_notes"`
	FailureReason *string `json:"failure_reason,omitempty"`
}

type RefundRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type GiftRequest struct {
	UserID    string     `json:"user_id" binding:"required,uuid"`
	ContentID string     `json:"content_id" binding:"required,uuid"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type AdjustmentRequest struct {
	CreatorID   string      `json:"creator_id" binding:"required,uuid"`
	AmountCents money.Cents `json:"amount_cents"`
	Description string      `json:"description" binding:"required"`
}

// ProcessPayout godoc
// @Summary      Process a payout
// @Description  Operator action: approve/complete, reject/fail, cancel or processing. Re-submitting the action that produced the current status returns it unchanged.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                true  "Payout ID"
// @Param        request  body  ProcessPayoutRequest  true  "Action"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/payouts/{id}/process [post]
func (h *AdminHandler) ProcessPayout(c *gin.Context) {
	operatorID, err := principal(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req ProcessPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	payoutID, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	payout, err := h.payoutUseCase.ProcessPayout(c.Request.Context(), payoutID,
		entity.PayoutAction(req.Action), operatorID, req.AdminNotes, req.FailureReason)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": payout.Status, "payout": payout})
}

// ListPayouts godoc
// @Summary      List payouts for review
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Status filter"
// @Param        limit   query  int     false  "Page size"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/payouts [get]
func (h *AdminHandler) ListPayouts(c *gin.Context) {
	limit, offset := pagination(c)

	payouts, err := h.payoutUseCase.ListAllPayouts(c.Request.Context(), entity.PayoutStatus(c.Query("status")), limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payouts": payouts, "count": len(payouts)})
}

// RefundTransaction godoc
// @Summary      Refund a transaction
// @Description  Reverses the revenue and revokes the access it bought
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string         true  "Transaction ID"
// @Param        request  body  RefundRequest  true  "Reason"
// @Success      200  {object}  entity.Transaction
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/transactions/{id}/refund [post]
func (h *AdminHandler) RefundTransaction(c *gin.Context) {
	operatorID, err := principal(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	transactionID, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	transaction, err := h.recorderUseCase.Refund(c.Request.Context(), transactionID, operatorID, req.Reason)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// GrantGift godoc
// @Summary      Gift content access
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  GiftRequest  true  "Gift"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/entitlements [post]
func (h *AdminHandler) GrantGift(c *gin.Context) {
	var req GiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entitlement, created, err := h.entitlementUseCase.Grant(c.Request.Context(), req.UserID, req.ContentID,
		entity.EntitlementTypeGift, req.ExpiresAt, nil)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entitlement": entitlement, "created": created})
}

// Adjust godoc
// @Summary      Adjust a creator balance
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  AdjustmentRequest  true  "Adjustment"
// @Success      201  {object}  entity.LedgerEntry
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/adjustments [post]
func (h *AdminHandler) Adjust(c *gin.Context) {
	operatorID, err := principal(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.ledgerUseCase.Adjust(c.Request.Context(), operatorID, req.CreatorID, req.AmountCents, req.Description)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}
