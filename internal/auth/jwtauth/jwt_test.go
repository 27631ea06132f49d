package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/imagestore/internal/domain"
)

const testSecret = "s3cret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() Claims {
	return Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   "user-1",
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
		Name:        "Admin",
		Login:       "admin",
		Permissions: []string{"user"},
	}
}

func TestHMACValidate(t *testing.T) {
	v := NewHMACValidator(testSecret)
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())

	session, err := v.Validate(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, "Admin", session.Name)
	assert.Equal(t, "admin", session.Login)
	assert.Equal(t, []string{"user"}, session.Permissions)
}

func TestHMACValidateRejects(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = time.Now().Add(-time.Hour).Unix()

	noSubject := validClaims()
	noSubject.Subject = ""

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "garbage", header: "Bearer not.a.token"},
		{name: "wrong secret", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), validClaims())},
		{name: "expired", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), expired)},
		{name: "no subject", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), noSubject)},
		{name: "alg none", header: "Bearer " + sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims())},
	}

	v := NewHMACValidator(testSecret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(context.Background(), tt.header)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
