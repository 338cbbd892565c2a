package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"medihealth-backend/internal/models"
)

func (h *Handler) listAdvertisements(c *gin.Context) {
	ads, err := h.ads.List(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, ads)
}

func (h *Handler) createAdvertisement(c *gin.Context) {
	var doc bson.M
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input"})
		return
	}
	id, err := h.ads.Create(c.Request.Context(), doc)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insertedId": id})
}

func (h *Handler) setAdvertisementStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input"})
		return
	}
	if body.Status != models.AdStatusUsed && body.Status != models.AdStatusNotUsed {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid status"})
		return
	}
	modified, err := h.ads.SetStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if modified == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Advertisement not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
}
