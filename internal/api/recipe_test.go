package api

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/backend/internal/models"
)

type recipeEnvelope struct {
	Message string        `json:"message"`
	Recipe  models.Recipe `json:"recipe"`
}

func TestCreateRecipeEndpoint(t *testing.T) {
	env := setupTestRouter(t)
	user, token := env.createUserAndToken(t, "Alice", "alice@example.com")

	w := env.doForm(t, http.MethodPost, "/api/recipes", token, recipeFields())
	require.Equal(t, http.StatusCreated, w.Code)

	var resp recipeEnvelope
	decodeBody(t, w, &resp)
	assert.Equal(t, "Recipe created successfully", resp.Message)
	assert.Equal(t, "Pancakes", resp.Recipe.Title)
	assert.Equal(t, 4, resp.Recipe.Servings)
	assert.Equal(t, models.JSONBStringArray{"egg", "flour"}, resp.Recipe.Ingredients)
	assert.Equal(t, models.DefaultRecipeImage, resp.Recipe.Image)
	assert.Equal(t, user.ID, resp.Recipe.UserID)
}

func TestCreateRecipeEndpointJSONIngredients(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createUserAndToken(t, "Alice", "alice@example.com")

	fields := recipeFields()
	fields["ingredients"] = []string{`["egg","flour","milk"]`}
	w := env.doForm(t, http.MethodPost, "/api/recipes", token, fields)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp recipeEnvelope
	decodeBody(t, w, &resp)
	assert.Equal(t, models.JSONBStringArray{"egg", "flour", "milk"}, resp.Recipe.Ingredients)
}

func TestCreateRecipeEndpointNegativeServings(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createUserAndToken(t, "Alice", "alice@example.com")

	fields := recipeFields()
	fields["serves"] = []string{"-1"}
	w := env.doForm(t, http.MethodPost, "/api/recipes", token, fields)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Servings must be a positive number.")

	var count int64
	require.NoError(t, env.db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRecipeEndpointWithUpload(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createUserAndToken(t, "Alice", "alice@example.com")

	w := env.doUpload(t, http.MethodPost, "/api/recipes", token, recipeFields(), "dish.jpg", []byte("fake-jpeg"))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp recipeEnvelope
	decodeBody(t, w, &resp)
	assert.Contains(t, resp.Recipe.Image, "/uploads/")
	assert.Contains(t, resp.Recipe.Image, ".jpg")
}

func TestCreateRecipeEndpointRejectsNonImage(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createUserAndToken(t, "Alice", "alice@example.com")

	w := env.doUpload(t, http.MethodPost, "/api/recipes", token, recipeFields(), "notes.txt", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Only image files are allowed.")
}

func TestCreateRecipeEndpointRejectsMismatchedContentType(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createUserAndToken(t, "Alice", "alice@example.com")

	// Image extension with a non-image declared media type.
	w := env.doUploadTyped(t, http.MethodPost, "/api/recipes", token, recipeFields(), "dish.png", "text/plain", []byte("not a png"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Only image files are allowed.")
}

func TestCreateRecipeEndpointRejectsOversizedImage(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createUserAndToken(t, "Alice", "alice@example.com")

	big := bytes.Repeat([]byte("x"), maxUploadBytes+1)
	w := env.doUpload(t, http.MethodPost, "/api/recipes", token, recipeFields(), "huge.png", big)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Image must be 2MB or smaller.")
}

func TestListRecipesEndpointHidesForeignPrivate(t *testing.T) {
	env := setupTestRouter(t)
	_, ownerToken := env.createUserAndToken(t, "Alice", "alice@example.com")
	_, otherToken := env.createUserAndToken(t, "Bob", "bob@example.com")

	fields := recipeFields()
	fields["isPrivate"] = []string{"true"}
	w := env.doForm(t, http.MethodPost, "/api/recipes", ownerToken, fields)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/recipes", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ownerList []models.Recipe
	decodeBody(t, w, &ownerList)
	assert.Len(t, ownerList, 1)

	w = env.doJSON(t, http.MethodGet, "/api/recipes", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var otherList []models.Recipe
	decodeBody(t, w, &otherList)
	assert.Empty(t, otherList)
}

func TestGetRecipeEndpointPrivateForbidden(t *testing.T) {
	env := setupTestRouter(t)
	_, ownerToken := env.createUserAndToken(t, "Alice", "alice@example.com")
	_, otherToken := env.createUserAndToken(t, "Bob", "bob@example.com")

	fields := recipeFields()
	fields["isPrivate"] = []string{"true"}
	w := env.doForm(t, http.MethodPost, "/api/recipes", ownerToken, fields)
	require.Equal(t, http.StatusCreated, w.Code)
	var created recipeEnvelope
	decodeBody(t, w, &created)

	w = env.doJSON(t, http.MethodGet, "/api/recipes/"+created.Recipe.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied.")

	w = env.doJSON(t, http.MethodGet, "/api/recipes/"+created.Recipe.ID.String(), ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetRecipeEndpointBadID(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createUserAndToken(t, "Alice", "alice@example.com")

	w := env.doJSON(t, http.MethodGet, "/api/recipes/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid recipe ID format.")
}

func TestUpdateRecipeEndpointOwnerOnly(t *testing.T) {
	env := setupTestRouter(t)
	_, ownerToken := env.createUserAndToken(t, "Alice", "alice@example.com")
	_, otherToken := env.createUserAndToken(t, "Bob", "bob@example.com")

	w := env.doForm(t, http.MethodPost, "/api/recipes", ownerToken, recipeFields())
	require.Equal(t, http.StatusCreated, w.Code)
	var created recipeEnvelope
	decodeBody(t, w, &created)

	fields := recipeFields()
	fields["name"] = []string{"Better Pancakes"}
	path := "/api/recipes/" + created.Recipe.ID.String()

	w = env.doForm(t, http.MethodPut, path, otherToken, fields)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.doForm(t, http.MethodPut, path, ownerToken, fields)
	require.Equal(t, http.StatusOK, w.Code)
	var updated recipeEnvelope
	decodeBody(t, w, &updated)
	assert.Equal(t, "Recipe updated successfully", updated.Message)
	assert.Equal(t, "Better Pancakes", updated.Recipe.Title)
}

func TestDeleteRecipeEndpoint(t *testing.T) {
	env := setupTestRouter(t)
	_, ownerToken := env.createUserAndToken(t, "Alice", "alice@example.com")
	_, otherToken := env.createUserAndToken(t, "Bob", "bob@example.com")

	w := env.doForm(t, http.MethodPost, "/api/recipes", ownerToken, recipeFields())
	require.Equal(t, http.StatusCreated, w.Code)
	var created recipeEnvelope
	decodeBody(t, w, &created)

	path := "/api/recipes/" + created.Recipe.ID.String()

	w = env.doJSON(t, http.MethodDelete, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.doJSON(t, http.MethodDelete, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Recipe deleted successfully")

	w = env.doJSON(t, http.MethodGet, path, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipesEndpointRequiresAuth(t *testing.T) {
	env := setupTestRouter(t)

	w := env.doJSON(t, http.MethodGet, "/api/recipes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
