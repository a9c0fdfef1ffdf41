package handler

import (
	"net/http"

	"storefront/internal/checkout/service"
	"storefront/internal/checkout/transport"
	"storefront/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for checkout.
type Handler struct {
	svc *service.Service
}

const msgInvalidRequest = "invalid request"

// New creates a new checkout handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Page renders the checkout form with the order summary.
// GET /checkout
func (h *Handler) Page(c *gin.Context) {
	httpkit.OK(c, h.svc.Page(c.Request.Context()))
}

// Confirm submits the form ("Confirmar Compra").
// POST /checkout
func (h *Handler) Confirm(c *gin.Context) {
	var req transport.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.Confirm(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
