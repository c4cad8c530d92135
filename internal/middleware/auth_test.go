package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"ridemedia-backend/internal/apperrors"
	"ridemedia-backend/internal/services"
)

type fakeAuthenticator struct {
	token string
}

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*services.Session, error) {
	if token != f.token {
		return nil, apperrors.ErrUnauthorized
	}
	return &services.Session{ID: "s1", Username: "admin"}, nil
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", AdminAuth(fakeAuthenticator{token: "good"}), func(c *gin.Context) {
		session, ok := CurrentSession(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		fromCtx, ok := services.SessionFromContext(c.Request.Context())
		if !ok || fromCtx.ID != session.ID {
			c.AbortWithError(http.StatusInternalServerError, errors.New("session not in request context"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": session.Username})
	})
	return r
}

func TestAdminAuth(t *testing.T) {
	r := newAuthRouter()

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}
