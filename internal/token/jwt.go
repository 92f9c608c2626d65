package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkravets/todokeeper-server/internal/model"
)

// ErrNoSecret is returned when the manager is constructed without a
// signing secret. There is no default: running unsigned or with a baked-in
// secret is a startup failure, not a fallback.
var ErrNoSecret = errors.New("jwt signing secret is required")

// Claims are the JWT claims carried by issued tokens. The subject is the
// username.
type Claims struct {
	jwt.RegisteredClaims
}

// JWT implements model.TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
}

// NewJWT creates a JWT token manager. It fails when secretKey is empty.
func NewJWT(secretKey string, ttl time.Duration) (*JWT, error) {
	if secretKey == "" {
		return nil, ErrNoSecret
	}
	return &JWT{secretKey: secretKey, ttl: ttl}, nil
}

var _ model.TokenManager = (*JWT)(nil)

// Generate creates a signed token for the given username, expiring after
// the configured lifetime.
func (j *JWT) Generate(username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Parse validates a token's signature and expiry and extracts the subject.
// Malformed, mis-signed, expired and wrongly-signed-algorithm tokens all
// come back as errors, never panics.
func (j *JWT) Parse(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("token is invalid")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}
