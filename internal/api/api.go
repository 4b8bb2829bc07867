package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/forkful/backend/internal/service"
)

// Services bundles everything the handlers need. Redis is optional; when
// nil the recipe rate limiters are simply not installed.
type Services struct {
	Auth    *service.AuthService
	Recipes *service.RecipeService
	Social  *service.SocialService
	Images  service.ImageStore
	Redis   *redis.Client
}

// SetupAPI registers every handler under /api.
func SetupAPI(router *gin.Engine, svcs Services) {
	api := router.Group("/api")
	{
		authHandler := NewAuthHandler(svcs.Auth, svcs.Images)
		recipeHandler := NewRecipeHandler(svcs.Recipes, svcs.Auth, svcs.Images, svcs.Redis)
		socialHandler := NewSocialHandler(svcs.Social, svcs.Auth)

		authHandler.RegisterRoutes(api)
		recipeHandler.RegisterRoutes(api)
		socialHandler.RegisterRoutes(api)
	}
}

// currentUserID reads the identity the auth middleware stored on the
// request context.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// requireUserID aborts with 401 when no identity is present. The auth
// middleware makes this unreachable on registered routes; the check is an
// invariant, not a code path.
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated."})
	}
	return id, ok
}
