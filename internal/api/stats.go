package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) adminStats(c *gin.Context) {
	revenue, err := h.payments.RevenueTotal(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"revenue": revenue})
}

func (h *Handler) orderStats(c *gin.Context) {
	stats, err := h.payments.OrderStatsByCategory(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
