package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/forkful/backend/internal/middleware"
	"github.com/forkful/backend/internal/models"
	"github.com/forkful/backend/internal/service"
)

type FriendRequestBody struct {
	FriendID string `json:"friendId" binding:"required"`
}

type SocialHandler struct {
	social      *service.SocialService
	authService middleware.TokenValidator
}

func NewSocialHandler(social *service.SocialService, authService middleware.TokenValidator) *SocialHandler {
	return &SocialHandler{
		social:      social,
		authService: authService,
	}
}

func (h *SocialHandler) RegisterRoutes(router *gin.RouterGroup) {
	social := router.Group("/social")
	social.Use(middleware.AuthMiddleware(h.authService))
	{
		social.POST("/follow/:targetId", h.Follow)
		social.POST("/unfollow/:targetId", h.Unfollow)
		social.POST("/add", h.SendFriendRequest)
		social.POST("/accept/:requestId", h.AcceptFriendRequest)
		social.POST("/decline/:requestId", h.DeclineFriendRequest)
		social.GET("/suggestions", h.Suggestions)
		social.GET("/requests", h.Requests)
		social.GET("/friends", h.Friends)
		social.GET("/following", h.Following)
		social.GET("/search", h.Search)
	}
}

func (h *SocialHandler) Follow(c *gin.Context) {
	actorID, targetID, ok := h.actorAndParam(c, "targetId")
	if !ok {
		return
	}

	if err := h.social.Follow(c.Request.Context(), actorID, targetID); err != nil {
		h.respondSocialError(c, err, "Failed to follow user.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully followed user"})
}

func (h *SocialHandler) Unfollow(c *gin.Context) {
	actorID, targetID, ok := h.actorAndParam(c, "targetId")
	if !ok {
		return
	}

	if err := h.social.Unfollow(c.Request.Context(), actorID, targetID); err != nil {
		h.respondSocialError(c, err, "Failed to unfollow user.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unfollowed successfully"})
}

func (h *SocialHandler) SendFriendRequest(c *gin.Context) {
	actorID, ok := requireUserID(c)
	if !ok {
		return
	}

	var body FriendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "friendId is required."})
		return
	}
	friendID, err := uuid.Parse(body.FriendID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID format."})
		return
	}

	if err := h.social.SendFriendRequest(c.Request.Context(), actorID, friendID); err != nil {
		h.respondSocialError(c, err, "Failed to send friend request.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request sent"})
}

func (h *SocialHandler) AcceptFriendRequest(c *gin.Context) {
	actorID, requesterID, ok := h.actorAndParam(c, "requestId")
	if !ok {
		return
	}

	if err := h.social.AcceptFriendRequest(c.Request.Context(), actorID, requesterID); err != nil {
		h.respondSocialError(c, err, "Failed to accept friend request.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted"})
}

func (h *SocialHandler) DeclineFriendRequest(c *gin.Context) {
	actorID, requesterID, ok := h.actorAndParam(c, "requestId")
	if !ok {
		return
	}

	if err := h.social.DeclineFriendRequest(c.Request.Context(), actorID, requesterID); err != nil {
		h.respondSocialError(c, err, "Failed to decline friend request.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request declined"})
}

func (h *SocialHandler) Suggestions(c *gin.Context) {
	h.respondList(c, "Failed to fetch suggestions.", h.social.Suggestions)
}

func (h *SocialHandler) Requests(c *gin.Context) {
	h.respondList(c, "Failed to get friend requests.", h.social.Requests)
}

func (h *SocialHandler) Friends(c *gin.Context) {
	h.respondList(c, "Failed to get friends.", h.social.Friends)
}

func (h *SocialHandler) Following(c *gin.Context) {
	h.respondList(c, "Failed to get following.", h.social.Following)
}

func (h *SocialHandler) Search(c *gin.Context) {
	actorID, ok := requireUserID(c)
	if !ok {
		return
	}

	users, err := h.social.Search(c.Request.Context(), actorID, c.Query("query"))
	if err != nil {
		h.respondSocialError(c, err, "Failed to search users.")
		return
	}
	c.JSON(http.StatusOK, users)
}

// respondList runs one of the social listing operations for the acting
// user and writes the result.
func (h *SocialHandler) respondList(c *gin.Context, fallback string, list func(ctx context.Context, actorID uuid.UUID) ([]models.UserSummary, error)) {
	actorID, ok := requireUserID(c)
	if !ok {
		return
	}

	users, err := list(c.Request.Context(), actorID)
	if err != nil {
		h.respondSocialError(c, err, fallback)
		return
	}
	c.JSON(http.StatusOK, users)
}

// actorAndParam resolves the acting user plus a user-ID path parameter.
func (h *SocialHandler) actorAndParam(c *gin.Context, param string) (uuid.UUID, uuid.UUID, bool) {
	actorID, ok := requireUserID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	otherID, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID format."})
		return uuid.Nil, uuid.Nil, false
	}
	return actorID, otherID, true
}

func (h *SocialHandler) respondSocialError(c *gin.Context, err error, fallback string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": ve.Message})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
	default:
		log.Printf("social handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
	}
}
