package handlers

import (
	"net/http"

	"foodie-storefront/middleware"
	"foodie-storefront/models"
	"foodie-storefront/session"

	"github.com/gin-gonic/gin"
)

// Credential checks happen in the session store so that a bad password is a
// plain failed sign-in rather than a malformed request.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates the device session for a new user
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok, err := h.store.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "Name, email and a password of at least 6 characters are required",
		})
		return
	}
	h.respondSession(c, http.StatusCreated, "Account created successfully", user)
}

// Login signs the user in on this device
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok, err := h.store.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid email or password"})
		return
	}
	h.respondSession(c, http.StatusOK, "Login successful", user)
}

func (h *Handler) respondSession(c *gin.Context, status int, message string, user models.User) {
	token, err := h.tokens.Generate(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"token":   token,
		"user":    user,
	})
}

// Logout ends the device session
func (h *Handler) Logout(c *gin.Context) {
	if err := h.store.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfile returns the session user
func (h *Handler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": middleware.GetUser(c)})
}

// UpdateProfile edits name, phone and address
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req session.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.store.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}
