package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/shared/identity"
	"library-backend/internal/shared/response"
)

// TokenValidator turns a bearer token into its subject (the username)
type TokenValidator interface {
	Validate(token string) (string, error)
}

// PublicRoutes lists the routes an anonymous caller may reach, keyed by
// RouteKey. Anything not listed, including unmatched paths, requires identity.
var PublicRoutes = map[string]struct{}{
	RouteKey(http.MethodPost, "/api/auth/login"):     {},
	RouteKey(http.MethodPost, "/api/auth/register"):  {},
	RouteKey(http.MethodGet, "/api/books"):           {},
	RouteKey(http.MethodGet, "/api/books/available"): {},
	RouteKey(http.MethodGet, "/api/books/search"):    {},
	RouteKey(http.MethodGet, "/api/books/:id"):       {},
	RouteKey(http.MethodGet, "/health"):              {},
}

// RouteKey combines a method and a gin route template
func RouteKey(method, route string) string {
	return method + " " + route
}

// Authenticate resolves the caller's identity from the Authorization header
// and rejects anonymous callers on protected routes. A missing, malformed or
// invalid token leaves the caller anonymous; it is never an error by itself.
func Authenticate(validator TokenValidator, public map[string]struct{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Resolve identity
		id := identity.Identity{}
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			subject, err := validator.Validate(token)
			if err != nil {
				log.Debug().
					Str("request_id", c.GetString("request_id")).
					Err(err).
					Msg("bearer token rejected")
			} else {
				id = identity.Identity{Subject: subject}
				c.Request = c.Request.WithContext(identity.NewContext(c.Request.Context(), id))
			}
		}

		// 2. Allow-list check on the matched route template
		if _, open := public[RouteKey(c.Request.Method, c.FullPath())]; open {
			c.Next()
			return
		}

		if id.IsAnonymous() {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentIdentity returns the authenticated caller, if any
func CurrentIdentity(c *gin.Context) (identity.Identity, bool) {
	if c.Request == nil {
		return identity.Identity{}, false
	}
	return identity.FromContext(c.Request.Context())
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
