package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplecrud/internal/config"
	"simplecrud/internal/repository"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		Environment: "test",
		Security:    config.SecurityConfig{TokenSecret: "test-secret"},
	}

	engine := gin.New()
	h := NewHandlerSet(zerolog.Nop(), repository.NewUserDirectory(), cfg)
	h.Register(engine.Group("/api"))
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
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
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLogin_ValidCredentials(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "test@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body, "token")
	assert.Contains(t, body, "user")
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "test@example.com", user["email"])
	assert.Equal(t, float64(1), user["id"])
}

func TestLogin_SeededEmailCarriesDirectoryTimestamps(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "user@example.com",
		"password": "whatever",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2026-01-15T00:00:00Z", user["createdAt"])
}

func TestLogin_MissingCredentials(t *testing.T) {
	cases := []struct {
		name string
		body any
	}{
		{"empty object", gin.H{}},
		{"missing password", gin.H{"email": "test@example.com"}},
		{"missing email", gin.H{"password": "password123"}},
		{"empty fields", gin.H{"email": "", "password": ""}},
		{"no body", nil},
	}

	engine := newTestRouter(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, engine, http.MethodPost, "/api/auth/login", tc.body)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decodeBody(t, rec)
			assert.Contains(t, body, "error")
		})
	}
}

func TestLogout_AlwaysSucceeds(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	// A body, even a bogus one, changes nothing.
	rec = doJSON(t, engine, http.MethodPost, "/api/auth/logout", gin.H{"junk": 42})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])
}

func TestRegister_ValidFields(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", gin.H{
		"email":    "new@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "new@example.com", user["email"])
	assert.Equal(t, float64(2), user["id"])
}

func TestRegister_MissingFields(t *testing.T) {
	cases := []struct {
		name string
		body any
	}{
		{"empty object", gin.H{}},
		{"missing password", gin.H{"email": "new@example.com"}},
		{"no body", nil},
	}

	engine := newTestRouter(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeBody(t, rec), "error")
		})
	}
}

func TestGetUser_Seeded(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/users/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "user@example.com", body["email"])
	assert.Equal(t, "2026-01-15T00:00:00Z", body["createdAt"])
	assert.Equal(t, "2026-02-01T10:30:00Z", body["lastLogin"])
}

func TestGetUser_Unknown(t *testing.T) {
	engine := newTestRouter(t)

	for _, path := range []string{"/api/users/999", "/api/users/abc"} {
		rec := doJSON(t, engine, http.MethodGet, path, nil)
		require.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, decodeBody(t, rec), "error")
	}
}

func TestListUsers_ExactlySeeded(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "user@example.com", users[0]["email"])
}

func TestHealth(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["environment"])
	assert.Equal(t, float64(1), body["users"])
}
