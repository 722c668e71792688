// Package auth verifies the bearer tokens sent by the app. Tokens are HS256
// JWTs whose subject is the user id. Whether a request without a token is
// let through depends on Verifier.Required.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrMissingToken = errors.New("authorization token required")
	ErrInvalidToken = errors.New("invalid or expired token")
)

const issuer = "dialog-service"

type Claims struct {
	jwt.RegisteredClaims
	// Operator tokens may change service settings such as rate limits.
	Operator bool `json:"operator,omitempty"`
}

func (c *Claims) UserID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}

func (c *Claims) IsOperator() bool {
	return c != nil && c.Operator
}

type Verifier struct {
	secret   []byte
	Required bool
}

func NewVerifier(secret string, required bool) *Verifier {
	return &Verifier{secret: []byte(secret), Required: required}
}

// Sign issues a token for userID. Used by dialogctl and tests; the app gets
// its tokens from the session layer.
func (v *Verifier) Sign(userID string, ttl time.Duration) (string, error) {
	return v.sign(userID, ttl, false)
}

// SignOperator issues an operator token. Keep these off user devices.
func (v *Verifier) SignOperator(subject string, ttl time.Duration) (string, error) {
	return v.sign(subject, ttl, true)
}

func (v *Verifier) sign(userID string, ttl time.Duration, operator bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Operator: operator,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// BearerToken extracts the token of an "Authorization: Bearer <t>" header.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Authenticate checks an Authorization header value. An empty header gives
// (nil, nil) unless tokens are required; a malformed or invalid one is
// always an error.
func (v *Verifier) Authenticate(header string) (*Claims, error) {
	if strings.TrimSpace(header) == "" {
		if v.Required {
			return nil, ErrMissingToken
		}
		return nil, nil
	}
	token, ok := BearerToken(header)
	if !ok {
		return nil, ErrInvalidToken
	}
	return v.Verify(token)
}
