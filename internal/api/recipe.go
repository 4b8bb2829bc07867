package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/forkful/backend/internal/metrics"
	"github.com/forkful/backend/internal/middleware"
	"github.com/forkful/backend/internal/service"
)

type RecipeHandler struct {
	recipes     *service.RecipeService
	authService middleware.TokenValidator
	images      service.ImageStore

	createLimiter *middleware.RateLimiter
	modifyLimiter *middleware.RateLimiter
}

// NewRecipeHandler wires the recipe routes. redisClient may be nil, in
// which case no rate limiting is applied.
func NewRecipeHandler(recipes *service.RecipeService, authService middleware.TokenValidator, images service.ImageStore, redisClient *redis.Client) *RecipeHandler {
	h := &RecipeHandler{
		recipes:     recipes,
		authService: authService,
		images:      images,
	}
	if redisClient != nil {
		h.createLimiter = middleware.NewRecipeCreationRateLimiter(redisClient)
		h.modifyLimiter = middleware.NewRecipeModificationRateLimiter(redisClient)
	}
	return h
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.authService))
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)

		if h.createLimiter != nil {
			recipes.POST("", h.createLimiter.RateLimitMiddleware(), h.CreateRecipe)
		} else {
			recipes.POST("", h.CreateRecipe)
		}
		if h.modifyLimiter != nil {
			recipes.PUT("/:id", h.modifyLimiter.PerRecipeRateLimitMiddleware(), h.UpdateRecipe)
		} else {
			recipes.PUT("/:id", h.UpdateRecipe)
		}

		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	recipes, err := h.recipes.List(c.Request.Context(), userID)
	if err != nil {
		h.respondRecipeError(c, err, "Failed to fetch recipes.")
		return
	}

	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid recipe ID format."})
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.respondRecipeError(c, err, "Failed to fetch recipe.")
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	in, err := h.bindRecipeForm(c)
	if err != nil {
		h.respondRecipeError(c, err, "Failed to read request.")
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), userID, *in)
	if err != nil {
		h.respondRecipeError(c, err, "Failed to create recipe.")
		return
	}

	metrics.IncrementRecipesCreated()
	c.JSON(http.StatusCreated, gin.H{
		"message": "Recipe created successfully",
		"recipe":  recipe,
	})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid recipe ID format."})
		return
	}

	in, err := h.bindRecipeForm(c)
	if err != nil {
		h.respondRecipeError(c, err, "Failed to read request.")
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), userID, id, *in)
	if err != nil {
		h.respondRecipeError(c, err, "Failed to update recipe.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe updated successfully",
		"recipe":  recipe,
	})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid recipe ID format."})
		return
	}

	recipe, err := h.recipes.Delete(c.Request.Context(), userID, id)
	if err != nil {
		h.respondRecipeError(c, err, "Failed to delete recipe.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"recipe":  recipe,
	})
}

// bindRecipeForm reads the multipart/form fields of a create or update
// request. An uploaded image file is stored first and its path takes the
// place of the image field unless an explicit URL was supplied.
func (h *RecipeHandler) bindRecipeForm(c *gin.Context) (*service.RecipeInput, error) {
	ingredients, err := parseIngredients(c.PostFormArray("ingredients"))
	if err != nil {
		return nil, err
	}

	isPrivate := false
	if raw := c.PostForm("isPrivate"); raw != "" {
		isPrivate, _ = strconv.ParseBool(raw)
	}

	image := strings.TrimSpace(c.PostForm("image"))
	if image == "" {
		image, err = saveUpload(c, h.images)
		if err != nil {
			return nil, err
		}
	}

	return &service.RecipeInput{
		Title:       c.PostForm("name"),
		Category:    c.PostForm("type"),
		Chef:        c.PostForm("chef"),
		PrepTime:    c.PostForm("prepTime"),
		CookTime:    c.PostForm("cookTime"),
		Servings:    c.PostForm("serves"),
		Ingredients: ingredients,
		Method:      c.PostForm("method"),
		Nutrition:   c.PostForm("nutrition"),
		Image:       image,
		IsPrivate:   isPrivate,
	}, nil
}

// parseIngredients accepts either repeated form values or a single
// JSON-encoded array, mirroring what the frontend actually sends.
func parseIngredients(vals []string) ([]string, error) {
	if len(vals) == 1 {
		s := strings.TrimSpace(vals[0])
		if strings.HasPrefix(s, "[") {
			var list []string
			if err := json.Unmarshal([]byte(s), &list); err != nil {
				return nil, &service.ValidationError{Message: "Ingredients format is invalid."}
			}
			return list, nil
		}
	}
	return vals, nil
}

func (h *RecipeHandler) respondRecipeError(c *gin.Context, err error, fallback string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": ve.Message})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Recipe not found."})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied."})
	default:
		log.Printf("recipe handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
	}
}
