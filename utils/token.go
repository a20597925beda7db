package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateOwnerToken creates a signed token for the owner dashboard.
// Tokens expire after 72 hours.
func GenerateOwnerToken(secret string, ownerID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"owner_id": ownerID,
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseOwnerToken validates a token and returns the owner id it carries.
func ParseOwnerToken(secret, tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}
	ownerID, ok := claims["owner_id"].(float64) // JWT numeric values are float64
	if !ok {
		return 0, errors.New("invalid owner id in token")
	}
	return uint(ownerID), nil
}
