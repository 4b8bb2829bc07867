package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/forkful/backend/internal/models"
	"github.com/forkful/backend/internal/service"
)

// testEnv is a fully wired router backed by an in-memory database, with
// uploads written to a temp directory and no Redis.
type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Recipe{}))

	images, err := service.NewLocalImageStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	auth := service.NewAuthService(db, "test-secret")
	router := gin.New()
	SetupAPI(router, Services{
		Auth:    auth,
		Recipes: service.NewRecipeService(db),
		Social:  service.NewSocialService(db),
		Images:  images,
	})

	return &testEnv{router: router, db: db, auth: auth}
}

// createUserAndToken registers a user directly through the service and
// returns it with a valid bearer token.
func (e *testEnv) createUserAndToken(t *testing.T, name, email string) (*models.User, string) {
	t.Helper()
	user, token, err := e.auth.Register(name, email, "password123")
	require.NoError(t, err)
	return user, token
}

// doJSON performs a request with an optional JSON body and bearer token.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// doForm performs a request with urlencoded form fields, the way the
// recipe endpoints are called without a file attachment.
func (e *testEnv) doForm(t *testing.T, method, path, token string, fields map[string][]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, vals := range fields {
		for _, val := range vals {
			require.NoError(t, mw.WriteField(key, val))
		}
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// doUpload is doForm plus one file part named "image", with the part's
// media type inferred from the filename the way a browser sends it.
func (e *testEnv) doUpload(t *testing.T, method, path, token string, fields map[string][]string, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return e.doUploadTyped(t, method, path, token, fields, filename, contentType, data)
}

// doUploadTyped is doUpload with an explicit part media type, for
// exercising the upload filter with mismatched declarations.
func (e *testEnv) doUploadTyped(t *testing.T, method, path, token string, fields map[string][]string, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, vals := range fields {
		for _, val := range vals {
			require.NoError(t, mw.WriteField(key, val))
		}
	}
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	partHeader.Set("Content-Type", contentType)
	part, err := mw.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals the recorded JSON response into out.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func recipeFields() map[string][]string {
	return map[string][]string{
		"name":        {"Pancakes"},
		"type":        {"Breakfast"},
		"chef":        {"Alice"},
		"prepTime":    {"10 minutes"},
		"cookTime":    {"15 minutes"},
		"serves":      {"4"},
		"ingredients": {"egg", "flour"},
		"method":      {"Mix and fry."},
	}
}
