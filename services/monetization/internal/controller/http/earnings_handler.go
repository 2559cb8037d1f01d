package http

import (
	"net/http"

	"lick-scroll-monetization/pkg/logger"
	"lick-scroll-monetization/services/monetization/internal/usecase"

	"github.com/gin-gonic/gin"
)

type EarningsHandler struct {
	earningsUseCase  usecase.EarningsUseCase
	ledgerUseCase    usecase.LedgerUseCase
	statementUseCase usecase.StatementUseCase
	logger           *logger.Logger
}

func NewEarningsHandler(earningsUseCase usecase.EarningsUseCase, ledgerUseCase usecase.LedgerUseCase, statementUseCase usecase.StatementUseCase, logger *logger.Logger) *EarningsHandler {
	return &EarningsHandler{
		earningsUseCase:  earningsUseCase,
		ledgerUseCase:    ledgerUseCase,
		statementUseCase: statementUseCase,
		logger:           logger,
	}
}

// GetEarnings godoc
// @Summary      Creator earnings
// @Description  Total, pending and paid-out balance derived from the ledger
// @Tags         earnings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Earnings
// @Router       /earnings [get]
func (h *EarningsHandler) GetEarnings(c *gin.Context) {
	creatorID, err := principal(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	earnings, err := h.earningsUseCase.GetCreatorEarnings(c.Request.Context(), creatorID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"earnings":         earnings,
		"total_earnings":   earnings.TotalEarnings.String(),
		"pending_earnings": earnings.PendingEarnings.String(),
		"paid_out":         earnings.PaidOut.String(),
	})
}

// GetLedger godoc
// @Summary      Ledger history
// @Tags         earnings
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /earnings/ledger [get]
func (h *EarningsHandler) GetLedger(c *gin.Context) {
	creatorID, err := principal(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	limit, offset := pagination(c)

	entries, err := h.ledgerUseCase.History(c.Request.Context(), creatorID, limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

// ExportStatement godoc
// @Summary      Export earnings statement
// @Description  Writes a CSV of all ledger entries with totals to object storage
// @Tags         earnings
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  entity.Statement
// @Router       /earnings/statement [post]
func (h *EarningsHandler) ExportStatement(c *gin.Context) {
	creatorID, err := principal(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	statement, err := h.statementUseCase.Export(c.Request.Context(), creatorID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, statement)
}
