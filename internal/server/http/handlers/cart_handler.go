package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/stockease/internal/server/http/dto"
)

// CartHandler manages the signed-in user's cart.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// List handles GET /api/cart.
func (h *CartHandler) List(c *gin.Context) {
	items, err := h.facade.Cart(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	response := make([]dto.CartItemResponse, 0, len(items))
	for _, it := range items {
		response = append(response, toCartItemResponse(it))
	}
	c.JSON(http.StatusOK, response)
}

// Summary handles GET /api/cart/summary.
func (h *CartHandler) Summary(c *gin.Context) {
	summary, err := h.facade.CartSummary(c.Request.Context(), CurrentUserID(c), c.Query("deliveryOption"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// Add handles POST /api/cart/items.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.facade.AddToCart(c.Request.Context(), CurrentUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartItemResponse(*item))
}

// Update handles PUT /api/cart/items/:id. A zero quantity removes the line.
func (h *CartHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.facade.UpdateCartItem(c.Request.Context(), CurrentUserID(c), id, req.Quantity)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if item == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, toCartItemResponse(*item))
}

// Remove handles DELETE /api/cart/items/:id.
func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.RemoveCartItem(c.Request.Context(), CurrentUserID(c), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.facade.ClearCart(c.Request.Context(), CurrentUserID(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
