package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"simplecrud/internal/models"
	"simplecrud/internal/service"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req credentialsRequest
	// An absent or unreadable body reads as empty fields, which the service
	// rejects; everything short of two non-empty fields is a 401.
	_ = c.ShouldBindJSON(&req)

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: result.Token, User: result.User})
}

func (h HandlerSet) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req credentialsRequest
	// Same as login: a missing body is just missing fields, reported as 400.
	_ = c.ShouldBindJSON(&req)

	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}
