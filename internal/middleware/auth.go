package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ridemedia-backend/internal/services"
)

const sessionKey = "admin_session"

// Authenticator проверяет токен админской сессии
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*services.Session, error)
}

// AdminAuth пропускает запрос только с токеном живой сессии.
// Сессия кладется и в gin.Context, и в context.Context запроса.
func AdminAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization token"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			return
		}

		session, err := auth.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			log.Printf("Отказ в доступе к %s: %v", c.FullPath(), err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set(sessionKey, session)
		c.Request = c.Request.WithContext(services.WithSession(c.Request.Context(), session))
		c.Next()
	}
}

// CurrentSession возвращает сессию, установленную AdminAuth
func CurrentSession(c *gin.Context) (*services.Session, bool) {
	value, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	session, ok := value.(*services.Session)
	return session, ok
}
