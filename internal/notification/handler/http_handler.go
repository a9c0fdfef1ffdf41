package handler

import (
	"storefront/internal/notification/inapp"
	"storefront/internal/notification/sse"
	"storefront/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// ToastList is the pending toasts payload.
type ToastList struct {
	Items []inapp.Toast `json:"items"`
}

type HTTPHandler struct {
	feed *inapp.Feed
	sse  *sse.Service
}

func NewHTTPHandler(feed *inapp.Feed, sseSvc *sse.Service) *HTTPHandler {
	return &HTTPHandler{feed: feed, sse: sseSvc}
}

func (h *HTTPHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/stream", h.sse.Handler())
}

// List returns and clears the pending toasts.
func (h *HTTPHandler) List(c *gin.Context) {
	httpkit.OK(c, ToastList{Items: h.feed.Drain()})
}
