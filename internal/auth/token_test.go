package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "test-secret-key-for-predictable-results"

func TestGenerateToken(t *testing.T) {
	TokenSecretKey = testSecretKey

	tests := []struct {
		name      string
		tokenType TokenType
		startupID string
		duration  time.Duration
	}{
		{
			name:      "success: generate valid founder token",
			tokenType: TokenTypeFounder,
			startupID: "s1",
			duration:  time.Hour,
		},
		{
			name:      "success: generate valid admin token",
			tokenType: TokenTypeAdmin,
			duration:  30 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenString, err := GenerateToken(tt.tokenType, tt.startupID, tt.duration)
			require.NoError(t, err)
			require.NotEmpty(t, tokenString)

			claims, err := VerifyToken(tokenString)
			require.NoError(t, err)
			assert.Equal(t, tt.tokenType, claims.Type)
			assert.Equal(t, tt.startupID, claims.StartupID)
			assert.WithinDuration(t, time.Now().Add(tt.duration), claims.ExpiresAt.Time, time.Second*5)
		})
	}
}

func TestVerifyToken(t *testing.T) {
	TokenSecretKey = testSecretKey

	validFounderToken, _ := GenerateToken(TokenTypeFounder, "s1", time.Hour)
	expiredToken, _ := GenerateToken(TokenTypeFounder, "s1", -time.Hour)
	founderWithoutStartup, _ := GenerateToken(TokenTypeFounder, "", time.Hour)

	claimsWithWrongMethod := TokenClaims{
		Type:      TokenTypeFounder,
		StartupID: "s1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tokenWithWrongMethod := jwt.NewWithClaims(jwt.SigningMethodNone, claimsWithWrongMethod)
	wrongMethodTokenString, _ := tokenWithWrongMethod.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name              string
		tokenString       string
		secretSetup       func()
		secretRollback    func()
		expectError       bool
		expectedErrorType error
		expectedTokenType TokenType
	}{
		{
			name:              "success: verify valid token",
			tokenString:       validFounderToken,
			expectError:       false,
			expectedTokenType: TokenTypeFounder,
		},
		{
			name:              "failure: verify expired token",
			tokenString:       expiredToken,
			expectError:       true,
			expectedErrorType: jwt.ErrTokenExpired,
		},
		{
			name:              "failure: verify token with invalid signature",
			tokenString:       validFounderToken,
			secretSetup:       func() { TokenSecretKey = "different-secret-key" },
			secretRollback:    func() { TokenSecretKey = testSecretKey },
			expectError:       true,
			expectedErrorType: jwt.ErrTokenSignatureInvalid,
		},
		{
			name:              "failure: verify malformed token",
			tokenString:       "not-a-valid-jwt-token",
			expectError:       true,
			expectedErrorType: jwt.ErrTokenMalformed,
		},
		{
			name:              "failure: verify token with wrong signing method",
			tokenString:       wrongMethodTokenString,
			expectError:       true,
			expectedErrorType: ErrInvalidSigningMethod,
		},
		{
			name:              "failure: founder token without startup",
			tokenString:       founderWithoutStartup,
			expectError:       true,
			expectedErrorType: ErrMissingStartup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.secretSetup != nil {
				tt.secretSetup()
			}
			if tt.secretRollback != nil {
				defer tt.secretRollback()
			}

			claims, err := VerifyToken(tt.tokenString)

			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErrorType)
				assert.Nil(t, claims)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, claims)
				assert.Equal(t, tt.expectedTokenType, claims.Type)
			}
		})
	}
}
