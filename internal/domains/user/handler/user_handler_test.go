package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/user/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubService struct {
	registerErr error
	loginErr    error
}

func (s stubService) Register(_ context.Context, req model.RegisterRequest) (*model.RegisterResponse, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &model.RegisterResponse{Username: req.Username, Role: model.RoleMember, Message: "User registered successfully"}, nil
}

func (s stubService) Login(_ context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &model.LoginResponse{Token: "tok", Username: req.Username, Role: model.RoleMember, ExpiresAt: time.Now()}, nil
}

func serve(h *UserHandler, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	e, ok := body["error"].(map[string]any)
	require.True(t, ok)
	return e["code"].(string)
}

func TestLoginHandler(t *testing.T) {
	w, body := serve(NewUserHandler(stubService{}), "/api/auth/login", `{"username":"alice","password":"x"}`)
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "tok", data["token"])
	assert.Equal(t, "alice", data["username"])
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	w, body := serve(NewUserHandler(stubService{loginErr: model.ErrInvalidCredentials}), "/api/auth/login", `{"username":"alice","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, body))
}

func TestLoginHandlerLocked(t *testing.T) {
	w, body := serve(NewUserHandler(stubService{loginErr: model.ErrTooManyAttempts}), "/api/auth/login", `{"username":"alice","password":"x"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", errorCode(t, body))
}

func TestRegisterHandler(t *testing.T) {
	w, _ := serve(NewUserHandler(stubService{}), "/api/auth/register", `{"username":"alice","email":"a@b.co","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := serve(NewUserHandler(stubService{registerErr: model.ErrUsernameAlreadyExists}), "/api/auth/register", `{"username":"alice","email":"a@b.co","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, body))

	w, body = serve(NewUserHandler(stubService{}), "/api/auth/register", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, body))
}
