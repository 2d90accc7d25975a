package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"glimpse-api/config"
	"glimpse-api/database"
	"glimpse-api/models"
	"glimpse-api/routes"
	"glimpse-api/services"
)

var testConfig = &config.Config{
	JWTSecret:       "test-secret-key",
	AccessTokenTTL:  time.Hour,
	RefreshTokenTTL: 24 * time.Hour,
	FromEmail:       "noreply@test.local",
	FromName:        "Glimpse",
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty in-memory DB
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	return db
}

func setupTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.SetupRoutes(router, db, testConfig, services.NewEmailService(testConfig))
	return router
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
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
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

var userSeq int

// registerAndLogin creates an account through the API and returns its
// access token and id.
func registerAndLogin(t *testing.T, router *gin.Engine, username string) (string, string) {
	t.Helper()

	userSeq++
	w := doJSON(router, http.MethodPost, "/register", "", map[string]string{
		"username":     username,
		"password":     "Password123",
		"phone_number": fmt.Sprintf("+1555%07d", userSeq),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	userID, _ := decodeBody(t, w)["id"].(string)

	w = doJSON(router, http.MethodPost, "/login", "", map[string]string{
		"username": username,
		"password": "Password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decodeBody(t, w)["access"].(string)
	require.NotEmpty(t, token)

	return token, userID
}

func seedAdmin(t *testing.T, db *gorm.DB, router *gin.Engine) string {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	admin := models.User{
		ID:          uuid.New().String(),
		Username:    "admin",
		PhoneNumber: "+15550000000",
		Password:    string(hashed),
		IsAdmin:     true,
	}
	require.NoError(t, db.Create(&admin).Error)

	w := doJSON(router, http.MethodPost, "/login", "", map[string]string{
		"username": "admin",
		"password": "Admin123!",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decodeBody(t, w)["access"].(string)
	return token
}

func createPost(t *testing.T, router *gin.Engine, token, title, content string) string {
	t.Helper()

	w := doJSON(router, http.MethodPost, "/posts", token, map[string]string{
		"title":   title,
		"content": content,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	postID, _ := decodeBody(t, w)["id"].(string)
	require.NotEmpty(t, postID)
	return postID
}
