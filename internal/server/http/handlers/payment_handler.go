package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/stockease/internal/server/http/dto"
)

// PaymentHandler previews payment input as the customer types it.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Preview handles POST /api/payment/preview. Problems are reported in the body
// rather than as a failed status since the form is still being filled in.
func (h *PaymentHandler) Preview(c *gin.Context) {
	var req dto.PaymentForm
	if !bindJSON(c, &req) {
		return
	}

	preview := h.facade.PreviewPayment(toPaymentForm(req))
	errs := map[string]string{}
	for field, msg := range preview.Errors {
		errs[field] = msg
	}
	c.JSON(http.StatusOK, dto.PaymentPreviewResponse{
		Form:   fromPaymentForm(preview.Form),
		Errors: errs,
		Valid:  preview.Ready,
	})
}
