package authservice

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const DefaultTokenTime = 24 * time.Hour

// Claims is the identity carried by a signed token. Validity is determined
// purely by the signature and expiry; no token state is kept server side.
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService struct {
	secret   []byte
	ttl      time.Duration
	timeFunc func() time.Time
}

func NewAuthService(secret string, ttl time.Duration) (*AuthService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("token secret must be at least 32 bytes")
	}

	return &AuthService{
		secret:   []byte(secret),
		ttl:      ttl,
		timeFunc: time.Now,
	}, nil
}

// IssueToken signs an identity token for the given user using HMAC-SHA256.
func (s *AuthService) IssueToken(userID int, username string) (string, error) {
	now := s.timeFunc()

	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken parses and verifies a signed token and returns the identity it
// carries. Any failure (bad signature, malformed payload, wrong algorithm,
// expiry) is reported as ErrInvalidToken.
func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(func() time.Time { return s.timeFunc() }),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID <= 0 || claims.Username == "" {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
