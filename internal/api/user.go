package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"medihealth-backend/internal/models"
)

// registerUser is idempotent by email: a second registration for the same
// address answers with a null-insert sentinel and creates nothing.
func (h *Handler) registerUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Role     string `json:"role"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input"})
		return
	}

	existing, err := h.users.FindByEmail(c.Request.Context(), body.Email)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, gin.H{"message": "User already exists!", "insertedId": nil})
		return
	}

	user := models.User{Email: body.Email, Name: body.Name, Role: body.Role}
	if body.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			h.serverError(c, err)
			return
		}
		user.Password = string(hashed)
	}

	id, err := h.users.Create(c.Request.Context(), user)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insertedId": id})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// adminFlag answers {"admin": bool} for the caller's own email only.
func (h *Handler) adminFlag(c *gin.Context) {
	email := c.Param("email")
	if !h.requireSelf(c, email) {
		return
	}
	user, err := h.users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		h.serverError(c, err)
		return
	}
	admin := user != nil && user.Role == models.RoleAdmin
	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

func (h *Handler) sellerFlag(c *gin.Context) {
	email := c.Param("email")
	if !h.requireSelf(c, email) {
		return
	}
	user, err := h.users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		h.serverError(c, err)
		return
	}
	seller := user != nil && user.Role == models.RoleSeller
	c.JSON(http.StatusOK, gin.H{"seller": seller})
}

// setRole assigns the role wholesale; a user holds exactly one role.
func (h *Handler) setRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		modified, err := h.users.SetRole(c.Request.Context(), c.Param("id"), role)
		if err != nil {
			h.serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
	}
}
