package jwtauth

import (
	"context"
	"fmt"

	"github.com/dgrijalva/jwt-go"

	"github.com/vbonduro/imagestore/internal/auth"
	"github.com/vbonduro/imagestore/internal/domain"
)

// Claims is the token payload. The subject is the user id.
type Claims struct {
	jwt.StandardClaims
	Name        string   `json:"name,omitempty"`
	Login       string   `json:"login,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// HMACValidator verifies HS256/384/512 bearer tokens locally with a shared secret.
type HMACValidator struct {
	secret []byte
}

func NewHMACValidator(secret string) *HMACValidator {
	return &HMACValidator{secret: []byte(secret)}
}

func (v *HMACValidator) Validate(_ context.Context, authorization string) (*auth.Session, error) {
	raw := auth.BearerToken(authorization)
	if raw == "" {
		return nil, fmt.Errorf("%w: missing token", domain.ErrUnauthorized)
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}

	return &auth.Session{
		UserID:      claims.Subject,
		Name:        claims.Name,
		Login:       claims.Login,
		Permissions: claims.Permissions,
	}, nil
}
