package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/backend/internal/models"
)

// RecipeInput carries the wire fields of a create or update request. The
// handler resolves an uploaded image file into Image before calling the
// service; Servings arrives as the raw form value.
type RecipeInput struct {
	Title       string
	Category    string
	Chef        string
	PrepTime    string
	CookTime    string
	Servings    string
	Ingredients []string
	Method      string
	Nutrition   string
	Image       string
	IsPrivate   bool
}

// RecipeService owns the recipe CRUD contract: field validation,
// ownership and visibility.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// Create validates the input and stores a new recipe owned by userID.
// When no image was supplied the fallback asset is used.
func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, in RecipeInput) (*models.Recipe, error) {
	fields, err := validateRecipeInput(in)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Title:       fields.Title,
		Category:    fields.Category,
		Chef:        fields.Chef,
		PrepTime:    fields.PrepTime,
		CookTime:    fields.CookTime,
		Servings:    fields.Servings,
		Ingredients: fields.Ingredients,
		Method:      fields.Method,
		Nutrition:   fields.Nutrition,
		Image:       fields.Image,
		IsPrivate:   in.IsPrivate,
		UserID:      userID,
	}
	if recipe.Image == "" {
		recipe.Image = models.DefaultRecipeImage
	}

	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Get returns the recipe if it is public or owned by userID.
func (s *RecipeService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !recipe.VisibleTo(userID) {
		return nil, ErrForbidden
	}
	return &recipe, nil
}

// List returns every public recipe plus the caller's private ones. No
// pagination; full materialization is fine at this scale.
func (s *RecipeService) List(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("is_private = ? OR user_id = ?", false, userID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// Update overwrites the recipe fields after the same validation as Create.
// Only the owner may update. An omitted image keeps the stored value
// rather than reverting to the default; this asymmetry with Create is
// deliberate.
func (s *RecipeService) Update(ctx context.Context, userID, id uuid.UUID, in RecipeInput) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !recipe.OwnedBy(userID) {
		return nil, ErrForbidden
	}

	fields, err := validateRecipeInput(in)
	if err != nil {
		return nil, err
	}

	recipe.Title = fields.Title
	recipe.Category = fields.Category
	recipe.Chef = fields.Chef
	recipe.PrepTime = fields.PrepTime
	recipe.CookTime = fields.CookTime
	recipe.Servings = fields.Servings
	recipe.Ingredients = fields.Ingredients
	recipe.Method = fields.Method
	recipe.Nutrition = fields.Nutrition
	recipe.IsPrivate = in.IsPrivate
	if fields.Image != "" {
		recipe.Image = fields.Image
	}

	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Delete removes the recipe and returns the deleted document so the
// caller can confirm what was removed. Only the owner may delete.
func (s *RecipeService) Delete(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !recipe.OwnedBy(userID) {
		return nil, ErrForbidden
	}

	if err := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// validatedRecipe holds the trimmed, converted fields of a valid input.
type validatedRecipe struct {
	Title       string
	Category    string
	Chef        string
	PrepTime    string
	CookTime    string
	Servings    int
	Ingredients models.JSONBStringArray
	Method      string
	Nutrition   string
	Image       string
}

func validateRecipeInput(in RecipeInput) (*validatedRecipe, error) {
	out := &validatedRecipe{
		Title:     strings.TrimSpace(in.Title),
		Category:  strings.TrimSpace(in.Category),
		Chef:      strings.TrimSpace(in.Chef),
		PrepTime:  strings.TrimSpace(in.PrepTime),
		CookTime:  strings.TrimSpace(in.CookTime),
		Method:    strings.TrimSpace(in.Method),
		Nutrition: strings.TrimSpace(in.Nutrition),
		Image:     strings.TrimSpace(in.Image),
	}

	if out.Title == "" || out.Category == "" || out.PrepTime == "" || out.CookTime == "" || out.Method == "" {
		return nil, validation("Please provide all required fields with valid values.")
	}
	if out.Chef == "" {
		out.Chef = "Unknown"
	}

	servings, err := strconv.Atoi(strings.TrimSpace(in.Servings))
	if err != nil || servings <= 0 {
		return nil, validation("Servings must be a positive number.")
	}
	out.Servings = servings

	if len(in.Ingredients) == 0 {
		return nil, validation("Ingredients must be a non-empty list.")
	}
	out.Ingredients = make(models.JSONBStringArray, 0, len(in.Ingredients))
	for _, ingredient := range in.Ingredients {
		ingredient = strings.TrimSpace(ingredient)
		if ingredient == "" {
			return nil, validation("Ingredients must be an array of non-empty strings.")
		}
		out.Ingredients = append(out.Ingredients, ingredient)
	}

	return out, nil
}
