package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

type TokenType string

const (
	TokenTypeUndefined TokenType = ""
	TokenTypeFounder   TokenType = "founder"
	TokenTypeAdmin     TokenType = "admin"
)

// TokenSecretKey signs and verifies tokens; main sets it from configuration.
var TokenSecretKey string

// TokenClaims identifies the caller. StartupID is the startup a founder edits;
// admin tokens usually leave it empty.
type TokenClaims struct {
	Type      TokenType `json:"type"`
	StartupID string    `json:"startup_id,omitempty"`
	jwt.RegisteredClaims
}

func GenerateToken(tokenType TokenType, startupID string, dur time.Duration) (string, error) {
	claims := TokenClaims{
		Type:      tokenType,
		StartupID: startupID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(dur)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(TokenSecretKey))
}

func VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			alg, _ := token.Header["alg"].(string)
			return nil, errors.Wrap(ErrInvalidSigningMethod, alg)
		}
		return []byte(TokenSecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		if claims.Type == TokenTypeFounder && claims.StartupID == "" {
			return nil, ErrMissingStartup
		}
		return claims, nil
	}

	return nil, ErrInvalidToken
}
