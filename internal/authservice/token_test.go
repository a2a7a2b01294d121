package authservice

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewAuthService(t *testing.T) {
	_, err := NewAuthService("too-short", DefaultTokenTime)
	assert.Error(t, err)

	s, err := NewAuthService(testSecret, DefaultTokenTime)
	assert.NoError(t, err)
	assert.NotNil(t, s)
}

func TestIssueAndVerifyToken(t *testing.T) {
	s, err := NewAuthService(testSecret, DefaultTokenTime)
	assert.NoError(t, err)

	token, err := s.IssueToken(42, "testuser")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := s.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "testuser", claims.Username)
}

func TestVerifyTokenFailures(t *testing.T) {
	s, err := NewAuthService(testSecret, DefaultTokenTime)
	assert.NoError(t, err)

	token, err := s.IssueToken(1, "testuser")
	assert.NoError(t, err)

	other, err := NewAuthService("ffffffffffffffffffffffffffffffff", DefaultTokenTime)
	assert.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "garbage token",
			token: "not-a-token",
		},
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "tampered payload",
			token: tamper(token),
		},
		{
			name: "wrong signing key",
			token: func() string {
				tok, err := other.IssueToken(1, "testuser")
				assert.NoError(t, err)
				return tok
			}(),
		},
		{
			name: "wrong signing algorithm",
			token: func() string {
				claims := Claims{UserID: 1, Username: "testuser"}
				tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
				assert.NoError(t, err)
				return tok
			}(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := s.VerifyToken(tc.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	s, err := NewAuthService(testSecret, time.Minute)
	assert.NoError(t, err)

	token, err := s.IssueToken(7, "testuser")
	assert.NoError(t, err)

	// move the clock past the expiry
	s.timeFunc = func() time.Time { return time.Now().Add(2 * time.Minute) }

	claims, err := s.VerifyToken(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// tamper flips the payload segment of a JWT while keeping the signature.
func tamper(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return token
	}

	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}

	return parts[0] + "." + string(payload) + "." + parts[2]
}
