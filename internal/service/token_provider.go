package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenProvider issues signed session tokens. Injected into the auth services
// so nothing reads signing material from ambient state.
type TokenProvider interface {
	Issue(userId uuid.UUID, email string) (token string, expiresAt time.Time, err error)
}

type jwtTokenProvider struct {
	secret []byte
	expiry time.Duration
}

func NewJwtTokenProvider(secret string, expiryHours int) TokenProvider {
	if expiryHours <= 0 {
		expiryHours = 24
	}
	return &jwtTokenProvider{
		secret: []byte(secret),
		expiry: time.Duration(expiryHours) * time.Hour,
	}
}

func (p *jwtTokenProvider) Issue(userId uuid.UUID, email string) (string, time.Time, error) {
	expiresAt := time.Now().Add(p.expiry)

	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"email":   email,
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}
