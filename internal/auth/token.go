// Package auth issues and validates the JWT bearer tokens used by the API.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the authenticated identity carried by a token.
type Claims struct {
	UserID  uint
	Role    string
	TokenID string
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *TokenIssuer) Issue(userID uint, role string) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(t.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	// JSON numbers decode as float64
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return nil, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	jti, _ := claims["jti"].(string)

	return &Claims{UserID: uint(id), Role: role, TokenID: jti}, nil
}
