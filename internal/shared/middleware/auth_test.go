package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubValidator map[string]string

func (s stubValidator) Validate(token string) (string, error) {
	if subject, ok := s[token]; ok {
		return subject, nil
	}
	return "", errors.New("invalid token")
}

func newGatedRouter() *gin.Engine {
	r := gin.New()
	r.Use(Authenticate(stubValidator{"good": "alice"}, PublicRoutes))

	whoami := func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "subject": id.Subject})
	}
	r.GET("/api/books", whoami)
	r.GET("/api/books/:id", whoami)
	r.POST("/api/books", whoami)
	r.POST("/api/books/:id/borrow", whoami)
	return r
}

func do(r http.Handler, method, path, auth string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestAuthenticate(t *testing.T) {
	r := newGatedRouter()

	tests := []struct {
		name          string
		method, path  string
		auth          string
		status        int
		authenticated bool
	}{
		{"public anonymous", http.MethodGet, "/api/books", "", http.StatusOK, false},
		{"public route template with id", http.MethodGet, "/api/books/123", "", http.StatusOK, false},
		{"public with valid token keeps identity", http.MethodGet, "/api/books", "Bearer good", http.StatusOK, true},
		{"public with bad token stays anonymous", http.MethodGet, "/api/books", "Bearer bad", http.StatusOK, false},
		{"protected anonymous", http.MethodPost, "/api/books", "", http.StatusUnauthorized, false},
		{"protected invalid token", http.MethodPost, "/api/books/1/borrow", "Bearer bad", http.StatusUnauthorized, false},
		{"protected wrong scheme", http.MethodPost, "/api/books", "Basic good", http.StatusUnauthorized, false},
		{"protected empty bearer", http.MethodPost, "/api/books", "Bearer ", http.StatusUnauthorized, false},
		{"protected valid token", http.MethodPost, "/api/books/1/borrow", "Bearer good", http.StatusOK, true},
		{"scheme is case-insensitive", http.MethodPost, "/api/books", "bearer good", http.StatusOK, true},
		{"unknown route is protected", http.MethodGet, "/api/secret", "", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := do(r, tt.method, tt.path, tt.auth)
			require.Equal(t, tt.status, w.Code)

			if tt.status == http.StatusUnauthorized {
				assert.Equal(t, false, body["success"])
				errBody, ok := body["error"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "UNAUTHORIZED", errBody["code"])
				return
			}

			assert.Equal(t, tt.authenticated, body["authenticated"])
			if tt.authenticated {
				assert.Equal(t, "alice", body["subject"])
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tok, ok := bearerToken("Bearer  abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = bearerToken("abc")
	assert.False(t, ok)
}
