package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/recipebox-dev/recipebox/db"
	"github.com/recipebox-dev/recipebox/internal/auth"
	"github.com/recipebox-dev/recipebox/internal/models"
	"github.com/recipebox-dev/recipebox/internal/router"
	"github.com/recipebox-dev/recipebox/internal/services"
	"github.com/recipebox-dev/recipebox/internal/storage"
	"github.com/recipebox-dev/recipebox/internal/testdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// setupAPI boots the full router against a fresh in-memory database and
// a throwaway media root.
func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	testdb.Open(t)
	require.NoError(t, auth.InitJWTSecret("test-secret"))
	require.NoError(t, storage.Init(t.TempDir()))

	return router.NewRouter([]string{"http://localhost:3000"})
}

func registerUser(t *testing.T, email, password string) (*models.User, string) {
	t.Helper()

	user, err := services.CreateUser(db.DB, email, password, "Test User")
	require.NoError(t, err)

	token, err := auth.GenerateJWT(user.ID, user.Email)
	require.NoError(t, err)

	return user, token
}

func doJSON(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func sampleRecipe(t *testing.T, userID uint, title string) *models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		UserID:      userID,
		Title:       title,
		Description: "recipe description",
		TimeMinutes: 22,
		Price:       decimal.RequireFromString("10.50"),
		Link:        "https://example.com/recipe.pdf",
	}
	require.NoError(t, db.DB.Create(&recipe).Error)
	return &recipe
}

func sampleTag(t *testing.T, userID uint, name string) *models.Tag {
	t.Helper()

	tag := models.Tag{Name: name, UserID: userID}
	require.NoError(t, db.DB.Create(&tag).Error)
	return &tag
}

func sampleIngredient(t *testing.T, userID uint, name string) *models.Ingredient {
	t.Helper()

	ingredient := models.Ingredient{Name: name, UserID: userID}
	require.NoError(t, db.DB.Create(&ingredient).Error)
	return &ingredient
}

func attachTags(t *testing.T, recipe *models.Recipe, tags ...*models.Tag) {
	t.Helper()

	for _, tag := range tags {
		require.NoError(t, db.DB.Model(recipe).Association("Tags").Append(tag))
	}
}

func attachIngredients(t *testing.T, recipe *models.Recipe, ingredients ...*models.Ingredient) {
	t.Helper()

	for _, ingredient := range ingredients {
		require.NoError(t, db.DB.Model(recipe).Association("Ingredients").Append(ingredient))
	}
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	require.Equal(t, expected, w.Code, "unexpected status, body: %s", w.Body.String())
}
