package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const adminRole = "admin"

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAdminJWT выпускает токен админской сессии. ID сессии лежит в jti,
// по нему сервер проверяет, что сессия не отозвана.
func GenerateAdminJWT(secret []byte, sessionID, username string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		Username: username,
		Role:     adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateToken(secret []byte, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	if claims.Role != adminRole || claims.ID == "" {
		return nil, errors.New("token is not an admin session")
	}
	return claims, nil
}
