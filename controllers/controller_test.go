package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/Dead0End/foodgram/config"
	"github.com/Dead0End/foodgram/controllers"
	"github.com/Dead0End/foodgram/models"
	"github.com/Dead0End/foodgram/routes"
	"github.com/Dead0End/foodgram/services"
	"github.com/Dead0End/foodgram/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func fakeUpload(dataURL, prefix string) (string, error) {
	return fmt.Sprintf("https://media.example.com/%s/fake.png", prefix), nil
}

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "controller-test-secret")

	dsn := fmt.Sprintf("file:foodgram_ctl_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() { sqlDB.Close() })

	recipeSvc := services.NewRecipeService(db, 32767)
	relationSvc := services.NewRelationService(db)
	listSvc := services.NewShoppingListService(db)
	linkSvc := services.NewShortLinkService(db, "https://foodgram.example.com")

	r := routes.SetupRouter(routes.Controllers{
		Auth:      controllers.NewAuthController(services.NewAuthService(db)),
		Users:     controllers.NewUserController(services.NewUserService(db), relationSvc, fakeUpload),
		Recipes:   controllers.NewRecipeController(recipeSvc, relationSvc, listSvc, linkSvc, fakeUpload),
		Reference: controllers.NewReferenceController(services.NewReferenceService(db)),
	})
	return r, db
}

func seedUserWithToken(t *testing.T, db *gorm.DB, username string) (models.User, string) {
	t.Helper()
	user := models.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "hash",
	}
	require.NoError(t, db.Create(&user).Error)
	token, err := utils.GenerateJWT(user.ID, user.Email)
	require.NoError(t, err)
	return user, token
}

func seedReference(t *testing.T, db *gorm.DB) (models.Tag, models.Ingredient) {
	t.Helper()
	tag := models.Tag{Name: fmt.Sprintf("tag%d", testDBSeq.Add(1)), Slug: fmt.Sprintf("slug%d", testDBSeq.Add(1))}
	require.NoError(t, db.Create(&tag).Error)
	ing := models.Ingredient{Name: fmt.Sprintf("ing%d", testDBSeq.Add(1)), MeasurementUnit: "g"}
	require.NoError(t, db.Create(&ing).Error)
	return tag, ing
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
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

func recipeBody(tag models.Tag, ing models.Ingredient) map[string]any {
	return map[string]any{
		"name":         "Pancakes",
		"text":         "Mix and fry.",
		"image":        "data:image/png;base64,aGVsbG8=",
		"cooking_time": 15,
		"tags":         []uint{tag.ID},
		"ingredients":  []map[string]any{{"id": ing.ID, "amount": 2}},
	}
}

func createRecipe(t *testing.T, r *gin.Engine, db *gorm.DB, token string) uint {
	t.Helper()
	tag, ing := seedReference(t, db)
	w := doJSON(t, r, http.MethodPost, "/api/recipes", token, recipeBody(tag, ing))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}
