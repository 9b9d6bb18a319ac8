package tokens

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity assertion carried inside a signed token. It
// deliberately carries no expiry: a token stays valid until the signing
// secret rotates.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid token")

// Sign issues a compact HS256 token for the given identity.
func Sign(claims *Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Verify parses and checks a token, returning its claims only on full
// success. The signing method is pinned to HS256 and the signature
// check inside the library is constant-time. Malformed tokens, wrong
// segment counts, undecodable payloads, and signature mismatches all
// collapse to ErrInvalidToken.
func Verify(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
