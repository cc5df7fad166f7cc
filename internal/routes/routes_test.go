package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/servicedesk/backend/internal/models"
	"github.com/servicedesk/backend/internal/services"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Priority{},
		&models.Impact{},
		&models.Urgency{},
		&models.Category{},
		&models.ResolutionCode{},
		&models.PendingReason{},
		&models.Incident{},
	))

	users := services.NewUserService(db)
	require.NoError(t, users.EnsureSeedRoles(models.RoleUser, models.RoleAdmin))
	_, err = users.CreateUser(&models.User{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Doe",
		Password: "correct",
	})
	require.NoError(t, err)

	r := gin.New()
	SetupRoutes(r, db)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, username, password string) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestLoginReturnsSummaryAndToken(t *testing.T) {
	r, _ := setupRouter(t)

	w, resp := login(t, r, "alice", "correct")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", resp["message"])
	assert.Equal(t, "alice", resp["username"])
	assert.Equal(t, "Alice Doe", resp["fullName"])
	assert.Equal(t, "alice@example.com", resp["email"])
	assert.NotEmpty(t, resp["token"])
	assert.NotContains(t, w.Body.String(), "password")
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	r, _ := setupRouter(t)

	wWrong, respWrong := login(t, r, "alice", "wrong")
	wMissing, respMissing := login(t, r, "nobody", "x")

	assert.Equal(t, http.StatusUnauthorized, wWrong.Code)
	assert.Equal(t, http.StatusUnauthorized, wMissing.Code)
	assert.Equal(t, respWrong["error"], respMissing["error"])
	assert.Equal(t, "invalid username or password", respWrong["error"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/incidents", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIncidentResolveFlowOverHTTP(t *testing.T) {
	r, _ := setupRouter(t)

	w, resp := login(t, r, "alice", "correct")
	require.Equal(t, http.StatusOK, w.Code)
	token := resp["token"].(string)

	// Create a priority
	w = doJSON(t, r, http.MethodPost, "/api/v1/priorities", token, gin.H{"level": "High"})
	require.Equal(t, http.StatusCreated, w.Code)
	var priority models.Priority
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &priority))

	// Duplicate label conflicts
	w = doJSON(t, r, http.MethodPost, "/api/v1/priorities", token, gin.H{"level": "High"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Create a resolution code
	w = doJSON(t, r, http.MethodPost, "/api/v1/resolution-codes", token, gin.H{
		"code":        "FIXED",
		"description": "Root cause fixed",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var code models.ResolutionCode
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &code))

	// Create the incident
	w = doJSON(t, r, http.MethodPost, "/api/v1/incidents", token, gin.H{
		"title":      "Disk full",
		"status":     "NEW",
		"priorityId": priority.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var incident models.Incident
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &incident))
	assert.Equal(t, models.StatusNew, incident.Status)

	// Resolve it
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/incidents/%d/status", incident.ID), token, gin.H{
		"status":           "RESOLVED",
		"resolutionCodeId": code.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Read it back
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/incidents/%d", incident.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Incident
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.StatusResolved, got.Status)
	require.NotNil(t, got.ResolutionCode)
	assert.Equal(t, "FIXED", got.ResolutionCode.Code)
	require.NotNil(t, got.Priority)
	assert.Equal(t, "High", got.Priority.Level)
}

func TestIncidentInvalidReferenceOverHTTP(t *testing.T) {
	r, _ := setupRouter(t)

	_, resp := login(t, r, "alice", "correct")
	token := resp["token"].(string)

	w := doJSON(t, r, http.MethodPost, "/api/v1/incidents", token, gin.H{
		"title":      "Disk full",
		"priorityId": 9999,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "priority")
}

func TestIncidentListFilterOverHTTP(t *testing.T) {
	r, db := setupRouter(t)

	_, resp := login(t, r, "alice", "correct")
	token := resp["token"].(string)

	users := services.NewUserService(db)
	alice, err := users.GetUserByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, alice)

	w := doJSON(t, r, http.MethodPost, "/api/v1/incidents", token, gin.H{
		"title":       "Disk full",
		"createdById": alice.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/v1/incidents", token, gin.H{
		"title": "Mail outage",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/incidents?createdBy=%d", alice.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var filtered []models.Incident
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, "Disk full", filtered[0].Title)

	w = doJSON(t, r, http.MethodGet, "/api/v1/incidents?createdBy=nope", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserEndpointsHidePassword(t *testing.T) {
	r, _ := setupRouter(t)

	_, resp := login(t, r, "alice", "correct")
	token := resp["token"].(string)

	w := doJSON(t, r, http.MethodGet, "/api/v1/users", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.Contains(t, w.Body.String(), "alice@example.com")
}
