package security

import (
	"errors"
	"time"
	"wings_cafe/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken mints a stateless session token for a logged-in user.
// The token is valid until iat + JWTExp; there is no revocation path.
func GenerateToken(userID int64, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       userID,
		"username": username,
		"jti":      uuid.NewString(),
		"exp":      now.Add(config.AppConfig.JWTExp).Unix(),
		"iat":      now.Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// Helper functions to extract claims, can be used in middleware or services
func GetUserIDFromClaims(claims jwt.MapClaims) (int64, error) {
	switch v := claims["id"].(type) {
	case float64: // JSON numbers decode as float64
		return int64(v), nil
	case int64:
		return v, nil
	}
	return 0, errors.New("id claim is missing or not numeric")
}

func GetUsernameFromClaims(claims jwt.MapClaims) (string, error) {
	username, ok := claims["username"].(string)
	if !ok {
		return "", errors.New("username claim is missing or not a string")
	}
	return username, nil
}
