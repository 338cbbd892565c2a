package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

func (h *Handler) listMedicines(c *gin.Context) {
	items, err := h.medicines.List(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) getMedicine(c *gin.Context) {
	// An unknown id answers with a null body, not an error.
	doc, err := h.medicines.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) createMedicine(c *gin.Context) {
	var doc bson.M
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input"})
		return
	}
	id, err := h.medicines.Create(c.Request.Context(), doc)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insertedId": id})
}

func (h *Handler) updateMedicine(c *gin.Context) {
	var doc bson.M
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input"})
		return
	}
	modified, err := h.medicines.Update(c.Request.Context(), c.Param("id"), doc)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
}

func (h *Handler) deleteMedicine(c *gin.Context) {
	deleted, err := h.medicines.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}
