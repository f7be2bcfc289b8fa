// Package auth implements the two credential primitives of the server:
// signed identity tokens (HS256 JWT) and bcrypt password hashing.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/quizhub/internal/common"
)

// TokenUser is the identity object embedded in the token payload.
type TokenUser struct {
	ID string `json:"id"`
}

// Claims is the token envelope: registered claims plus { user: { id } }.
type Claims struct {
	jwt.RegisteredClaims
	User TokenUser `json:"user"`
}

// GenerateToken issues a signed HS256 token for the given user id with the
// given validity horizon.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		User: TokenUser{ID: userID},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies signature and expiry and returns the embedded
// user id. Every failure mode collapses into common.ErrInvalidToken so that a
// caller cannot distinguish an expired token from a tampered or malformed one.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.User.ID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.User.ID, nil
}
