package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/racs-hpc/hpcadmin-server/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupRouter builds a router over an in-memory database with the
// entity routes mounted. Auth middleware is exercised in its own
// package; here the HTTP contracts are under test.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.Pirg{}, &models.Group{}, &models.APIKey{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	r := gin.New()
	r.RedirectTrailingSlash = false

	userHandler := NewUserHandler(db)
	r.GET("/users", userHandler.List)
	r.GET("/users/:id", userHandler.GetByID)
	r.POST("/users", userHandler.Create)
	r.PUT("/users/:id", userHandler.Update)

	pirgHandler := NewPirgHandler(db)
	r.GET("/pirgs", pirgHandler.List)
	r.GET("/pirgs/:id", pirgHandler.GetByID)
	r.POST("/pirgs", pirgHandler.Create)
	r.PUT("/pirgs/:id", pirgHandler.Update)
	r.POST("/pirgs/:id/users", pirgHandler.AddUser)
	r.DELETE("/pirgs/:id/users", pirgHandler.RemoveUser)
	r.POST("/pirgs/:id/admins", pirgHandler.AddAdmin)
	r.DELETE("/pirgs/:id/admins", pirgHandler.RemoveAdmin)
	r.GET("/pirgs/:id/groups", pirgHandler.ListGroups)
	r.POST("/pirgs/:id/groups", pirgHandler.AddGroup)
	r.POST("/pirgs/:id/groups/find", pirgHandler.FindGroup)

	groupHandler := NewGroupHandler(db)
	r.GET("/groups/:id", groupHandler.GetByID)
	r.POST("/groups", groupHandler.Create)

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func createUser(t *testing.T, r *gin.Engine, username string) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/users", gin.H{
		"username":  username,
		"firstname": "Test",
		"lastname":  "User",
		"email":     username + "@example.org",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create user %s: status %d, body %s", username, w.Code, w.Body.String())
	}
	var out struct {
		ID uint `json:"id"`
	}
	decode(t, w, &out)
	return out.ID
}
