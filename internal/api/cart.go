package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medihealth-backend/internal/models"
	"medihealth-backend/internal/repository"
)

func (h *Handler) listCart(c *gin.Context) {
	items, err := h.carts.ListForBuyer(c.Request.Context(), c.Query("email"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) addToCart(c *gin.Context) {
	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input"})
		return
	}
	res, err := h.carts.Add(c.Request.Context(), item)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if res.Merged {
		c.JSON(http.StatusOK, gin.H{"modifiedCount": res.ModifiedCount})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insertedId": res.InsertedID})
}

func (h *Handler) increaseCartItem(c *gin.Context) {
	modified, err := h.carts.Increase(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	if modified > 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Quantity increased successfully"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Failed to increase quantity"})
	}
}

func (h *Handler) decreaseCartItem(c *gin.Context) {
	removed, err := h.carts.Decrease(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrCartItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}
	if removed {
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Quantity decreased successfully"})
	}
}

func (h *Handler) removeCartItem(c *gin.Context) {
	deleted, err := h.carts.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}
