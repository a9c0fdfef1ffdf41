package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/cart/service"
	"storefront/internal/cart/transport"
	"storefront/platform/httpkit"
	"storefront/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the cart views.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid product id"
)

// New creates a new cart handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// View renders the cart page.
// GET /cart
func (h *Handler) View(c *gin.Context) {
	httpkit.OK(c, h.svc.View())
}

// Summary returns the header badge.
// GET /cart/summary
func (h *Handler) Summary(c *gin.Context) {
	httpkit.OK(c, h.svc.Summary())
}

// AddItem adds a product to the cart.
// POST /cart/items
func (h *Handler) AddItem(c *gin.Context) {
	var req transport.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	result, err := h.svc.AddProduct(c.Request.Context(), req.ProductID, quantity)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateQuantity sets a line item's quantity.
// PATCH /cart/items/:id
func (h *Handler) UpdateQuantity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	httpkit.OK(c, h.svc.SetQuantity(c.Request.Context(), id, *req.Quantity))
}

// RemoveItem deletes a line item.
// DELETE /cart/items/:id
func (h *Handler) RemoveItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	httpkit.OK(c, h.svc.Remove(c.Request.Context(), id))
}

// Clear empties the cart.
// DELETE /cart
func (h *Handler) Clear(c *gin.Context) {
	httpkit.OK(c, h.svc.Clear(c.Request.Context()))
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return 0, false
	}
	return id, true
}
