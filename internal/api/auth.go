package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/backend/internal/metrics"
	"github.com/forkful/backend/internal/middleware"
	"github.com/forkful/backend/internal/models"
	"github.com/forkful/backend/internal/service"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type AuthHandler struct {
	authService *service.AuthService
	images      service.ImageStore
}

func NewAuthHandler(authService *service.AuthService, images service.ImageStore) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		images:      images,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)

		protected := auth.Group("", middleware.AuthMiddleware(h.authService))
		{
			protected.GET("/me", h.Me)
			protected.GET("/profile", h.Me)
			protected.PUT("/profile", h.UpdateProfile)
			protected.PUT("/profile/image", h.UpdateProfileImage)
		}
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required."})
		return
	}

	user, token, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, err, "Failed to register user.")
		return
	}

	metrics.IncrementUsersRegistered()
	c.JSON(http.StatusCreated, authResponse(user, token))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required."})
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, err, "Failed to log in.")
		return
	}

	c.JSON(http.StatusOK, authResponse(user, token))
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		h.respondAuthError(c, err, "Failed to fetch profile.")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	user, err := h.authService.UpdateProfile(userID, req.Name, req.ImageURL)
	if err != nil {
		h.respondAuthError(c, err, "Failed to update profile.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"imageUrl": user.ImageURL,
	})
}

func (h *AuthHandler) UpdateProfileImage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	imageURL, err := saveUpload(c, h.images)
	if err != nil {
		h.respondAuthError(c, err, "Failed to store image.")
		return
	}
	if imageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No image file uploaded."})
		return
	}

	user, err := h.authService.UpdateProfile(userID, "", imageURL)
	if err != nil {
		h.respondAuthError(c, err, "Failed to update profile image.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"imageUrl": user.ImageURL,
	})
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error, fallback string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": ve.Message})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"message": "User already exists."})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials."})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
	default:
		log.Printf("auth handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
	}
}

func authResponse(user *models.User, token string) AuthResponse {
	return AuthResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}
}
