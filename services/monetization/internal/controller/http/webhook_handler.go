package http

import (
	"io"
	"net/http"

	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/pkg/logger"
	"lick-scroll-monetization/services/monetization/internal/usecase"

	"github.com/gin-gonic/gin"
)

const (
	SignatureHeader = "X-Signature"
	maxWebhookBytes = 64 << 10
)

type WebhookHandler struct {
	verificationUseCase usecase.VerificationUseCase
	logger              *logger.Logger
}

func NewWebhookHandler(verificationUseCase usecase.VerificationUseCase, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		verificationUseCase: verificationUseCase,
		logger:              logger,
	}
}

// VerificationWebhook godoc
// @Summary      Identity verification callback
// @Description  Provider decision for a creator, signed with HMAC-SHA256 in the X-Signature header. Replays are acknowledged without effect.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Signature  header  string  true  "Hex HMAC-SHA256 of the body"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /webhooks/verification [post]
func (h *WebhookHandler) VerificationWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes+1))
	if err != nil {
		respondBindError(c, err)
		return
	}
	if len(body) > maxWebhookBytes {
		respondError(c, h.logger, apperror.ErrInvalidInput.Withf("webhook body exceeds %d bytes", maxWebhookBytes))
		return
	}

	applied, err := h.verificationUseCase.HandleWebhook(c.Request.Context(), body, c.GetHeader(SignatureHeader))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true, "applied": applied})
}
