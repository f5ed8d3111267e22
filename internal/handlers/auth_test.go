package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yukikurage/legal-case-api/internal/constants"
	"github.com/yukikurage/legal-case-api/internal/dto"
	"github.com/yukikurage/legal-case-api/internal/repository"
	"github.com/yukikurage/legal-case-api/internal/services"
	"github.com/yukikurage/legal-case-api/internal/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authTestEnv struct {
	repos       *repository.Repositories
	handler     *AuthHandler
	authService *services.AuthService
	tokens      *token.Authority
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	repos, err := repository.NewFileRepositories(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	tokens, err := token.NewAuthority("test-secret", 24*time.Hour)
	require.NoError(t, err)

	authService, err := services.NewAuthService(repos.Users, tokens, bcrypt.MinCost)
	require.NoError(t, err)

	return authTestEnv{
		repos:       repos,
		handler:     NewAuthHandler(authService),
		authService: authService,
		tokens:      tokens,
	}
}

func postJSON(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/register", env.handler.Register)

	w := postJSON(r, "/api/register", map[string]string{"email": "new@x.com", "password": "supersecret"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.JSONEq(t, `{"message":"User registered"}`, w.Body.String())

	w = postJSON(r, "/api/register", map[string]string{"email": "new@x.com", "password": "other"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"code":"ALREADY_EXISTS","message":"User already exists"}`, w.Body.String())
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/register", env.handler.Register)

	tests := []struct {
		name    string
		payload any
	}{
		{"missing password", map[string]string{"email": "a@x.com"}},
		{"missing email", map[string]string{"password": "pw"}},
		{"blank email", map[string]string{"email": "   ", "password": "pw"}},
		{"not an object", []string{"a@x.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/api/register", tt.payload)
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Contains(t, w.Body.String(), `"code":"INVALID_INPUT"`)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(context.Background(), services.RegisterInput{
		Email:    "existing@x.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/login", env.handler.Login)

	w := postJSON(r, "/api/login", map[string]string{"email": "existing@x.com", "password": "supersecret"})
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	userID, err := env.tokens.Validate(response.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)

	w = postJSON(r, "/api/login", map[string]string{"email": "existing@x.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"code":"INVALID_CREDENTIALS","message":"Invalid credentials"}`, w.Body.String())
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(context.Background(), services.RegisterInput{
		Email:    "current@x.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.ID, response.ID)
	require.Equal(t, "current@x.com", response.Email)
	require.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_GetCurrentUserUnknownAccount(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	c.Set(constants.ContextKeyUserID, "deleted-user")

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUserWithoutContext(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/me", nil)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
