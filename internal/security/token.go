package security

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// ActorClaims carries the identity issued by the external auth service.
// This subsystem only validates tokens; it never issues them.
type ActorClaims struct {
	UserID  int32 `json:"user_id"`
	IsAdmin bool  `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

type TokenValidator interface {
	ValidateToken(tokenString string) (*ActorClaims, error)
}

type tokenValidator struct {
	secret []byte
}

func NewTokenValidator(secret string) TokenValidator {
	return &tokenValidator{secret: []byte(secret)}
}

func (v *tokenValidator) ValidateToken(tokenString string) (*ActorClaims, error) {
	claims := &ActorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
