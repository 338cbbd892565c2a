package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// createPaymentIntent converts the price to the processor's minor unit
// (truncated) and hands back the opaque client secret. The price is not
// validated; a bad amount surfaces whatever the processor raises.
func (h *Handler) createPaymentIntent(c *gin.Context) {
	var body struct {
		Price float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input"})
		return
	}
	amount := int64(body.Price * 100)
	secret, err := h.intents.CreateIntent(amount)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}

// recordPayment inserts the payment verbatim, then sweeps the referenced
// cart rows best-effort. The payment record persists even when the sweep
// fails; both outcomes are returned together.
func (h *Handler) recordPayment(c *gin.Context) {
	var doc bson.M
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input"})
		return
	}

	insertedID, err := h.payments.Create(c.Request.Context(), doc)
	if err != nil {
		h.serverError(c, err)
		return
	}

	deleteResult := gin.H{"deletedCount": int64(0)}
	if ids := stringSlice(doc["cartIds"]); len(ids) > 0 {
		deleted, err := h.carts.RemoveMany(c.Request.Context(), ids)
		if err != nil {
			h.log.Warn("cart cleanup after payment failed", zap.Error(err))
			deleteResult = gin.H{"error": "cart cleanup failed"}
		} else {
			deleteResult = gin.H{"deletedCount": deleted}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"paymentResult": gin.H{"insertedId": insertedID},
		"deleteResult":  deleteResult,
	})
}

func (h *Handler) listPayments(c *gin.Context) {
	payments, err := h.payments.ListAll(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *Handler) listPaymentsForUser(c *gin.Context) {
	email := c.Param("email")
	if !h.requireSelf(c, email) {
		return
	}
	payments, err := h.payments.ListForUser(c.Request.Context(), email)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *Handler) updatePaymentStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input"})
		return
	}
	modified, err := h.payments.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if modified == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
}

// stringSlice pulls the string members out of a decoded JSON array value.
func stringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
