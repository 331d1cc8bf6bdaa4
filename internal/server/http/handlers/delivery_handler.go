package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/stockease/internal/server/http/dto"
)

// DeliveryHandler serves delivery options and tracking.
type DeliveryHandler struct {
	facade DeliveryFacade
}

// NewDeliveryHandler constructs DeliveryHandler.
func NewDeliveryHandler(facade DeliveryFacade) *DeliveryHandler {
	return &DeliveryHandler{facade: facade}
}

// Options handles GET /api/delivery/options.
func (h *DeliveryHandler) Options(c *gin.Context) {
	options := h.facade.DeliveryOptions()
	response := make([]dto.DeliveryOptionResponse, 0, len(options))
	for _, o := range options {
		response = append(response, toDeliveryOptionResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// ByOrder handles GET /api/delivery/order/:number.
func (h *DeliveryHandler) ByOrder(c *gin.Context) {
	tracked, err := h.facade.TrackOrder(c.Request.Context(), CurrentUserID(c), strings.TrimSpace(c.Param("number")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeliveryResponse(tracked))
}

// ByTracking handles GET /api/delivery/track/:tracking.
func (h *DeliveryHandler) ByTracking(c *gin.Context) {
	tracked, err := h.facade.TrackShipment(c.Request.Context(), strings.TrimSpace(c.Param("tracking")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeliveryResponse(tracked))
}
