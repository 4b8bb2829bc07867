package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/backend/internal/models"
)

func TestFollowAndUnfollowEndpoints(t *testing.T) {
	env := setupTestRouter(t)
	_, aliceToken := env.createUserAndToken(t, "Alice", "alice@example.com")
	bob, _ := env.createUserAndToken(t, "Bob", "bob@example.com")

	w := env.doJSON(t, http.MethodPost, "/api/social/follow/"+bob.ID.String(), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Successfully followed user")

	w = env.doJSON(t, http.MethodGet, "/api/social/following", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var following []models.UserSummary
	decodeBody(t, w, &following)
	require.Len(t, following, 1)
	assert.Equal(t, bob.ID, following[0].ID)

	w = env.doJSON(t, http.MethodPost, "/api/social/unfollow/"+bob.ID.String(), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User unfollowed successfully")

	w = env.doJSON(t, http.MethodGet, "/api/social/following", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &following)
	assert.Empty(t, following)
}

func TestFollowEndpointRepeatIsOK(t *testing.T) {
	env := setupTestRouter(t)
	_, aliceToken := env.createUserAndToken(t, "Alice", "alice@example.com")
	bob, _ := env.createUserAndToken(t, "Bob", "bob@example.com")

	path := "/api/social/follow/" + bob.ID.String()
	w := env.doJSON(t, http.MethodPost, path, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.doJSON(t, http.MethodPost, path, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var following []models.UserSummary
	w = env.doJSON(t, http.MethodGet, "/api/social/following", aliceToken, nil)
	decodeBody(t, w, &following)
	assert.Len(t, following, 1)
}

func TestFollowEndpointSelf(t *testing.T) {
	env := setupTestRouter(t)
	alice, aliceToken := env.createUserAndToken(t, "Alice", "alice@example.com")

	w := env.doJSON(t, http.MethodPost, "/api/social/follow/"+alice.ID.String(), aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "You can't follow yourself.")
}

func TestFollowEndpointBadID(t *testing.T) {
	env := setupTestRouter(t)
	_, aliceToken := env.createUserAndToken(t, "Alice", "alice@example.com")

	w := env.doJSON(t, http.MethodPost, "/api/social/follow/nope", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid user ID format.")
}

func TestFriendRequestEndpoints(t *testing.T) {
	env := setupTestRouter(t)
	alice, aliceToken := env.createUserAndToken(t, "Alice", "alice@example.com")
	bob, bobToken := env.createUserAndToken(t, "Bob", "bob@example.com")

	w := env.doJSON(t, http.MethodPost, "/api/social/add", aliceToken, map[string]string{
		"friendId": bob.ID.String(),
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Friend request sent")

	w = env.doJSON(t, http.MethodGet, "/api/social/requests", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var requests []models.UserSummary
	decodeBody(t, w, &requests)
	require.Len(t, requests, 1)
	assert.Equal(t, alice.ID, requests[0].ID)

	w = env.doJSON(t, http.MethodPost, "/api/social/accept/"+alice.ID.String(), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Friend request accepted")

	var friends []models.UserSummary
	w = env.doJSON(t, http.MethodGet, "/api/social/friends", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &friends)
	require.Len(t, friends, 1)
	assert.Equal(t, bob.ID, friends[0].ID)

	w = env.doJSON(t, http.MethodGet, "/api/social/friends", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &friends)
	require.Len(t, friends, 1)
	assert.Equal(t, alice.ID, friends[0].ID)
}

func TestDeclineFriendRequestEndpoint(t *testing.T) {
	env := setupTestRouter(t)
	alice, aliceToken := env.createUserAndToken(t, "Alice", "alice@example.com")
	bob, bobToken := env.createUserAndToken(t, "Bob", "bob@example.com")

	w := env.doJSON(t, http.MethodPost, "/api/social/add", aliceToken, map[string]string{
		"friendId": bob.ID.String(),
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/social/decline/"+alice.ID.String(), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Friend request declined")

	var friends []models.UserSummary
	w = env.doJSON(t, http.MethodGet, "/api/social/friends", bobToken, nil)
	decodeBody(t, w, &friends)
	assert.Empty(t, friends)
}

func TestSendFriendRequestEndpointValidation(t *testing.T) {
	env := setupTestRouter(t)
	_, aliceToken := env.createUserAndToken(t, "Alice", "alice@example.com")

	w := env.doJSON(t, http.MethodPost, "/api/social/add", aliceToken, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "friendId is required.")

	w = env.doJSON(t, http.MethodPost, "/api/social/add", aliceToken, map[string]string{
		"friendId": "nope",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid user ID format.")
}

func TestSuggestionsEndpoint(t *testing.T) {
	env := setupTestRouter(t)
	_, aliceToken := env.createUserAndToken(t, "Alice", "alice@example.com")
	bob, _ := env.createUserAndToken(t, "Bob", "bob@example.com")

	w := env.doJSON(t, http.MethodGet, "/api/social/suggestions", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var suggestions []models.UserSummary
	decodeBody(t, w, &suggestions)
	require.Len(t, suggestions, 1)
	assert.Equal(t, bob.ID, suggestions[0].ID)
}

func TestSearchEndpoint(t *testing.T) {
	env := setupTestRouter(t)
	_, aliceToken := env.createUserAndToken(t, "Alice", "alice@example.com")
	bob, _ := env.createUserAndToken(t, "Bob", "bob@example.com")

	w := env.doJSON(t, http.MethodGet, "/api/social/search?query=bob", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var results []models.UserSummary
	decodeBody(t, w, &results)
	require.Len(t, results, 1)
	assert.Equal(t, bob.ID, results[0].ID)
}

func TestSocialEndpointsRequireAuth(t *testing.T) {
	env := setupTestRouter(t)

	w := env.doJSON(t, http.MethodGet, "/api/social/friends", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
