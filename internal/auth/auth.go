package auth

import (
	"context"
	"strings"
)

// Validator checks the raw Authorization header value of a request.
// Implementations return an error matching domain.ErrUnauthorized when the
// credential is missing or rejected; any other error is a server-side failure.
type Validator interface {
	Validate(ctx context.Context, authorization string) (*Session, error)
}

// Session identifies the caller behind a valid credential.
type Session struct {
	UserID      string   `json:"id"`
	Name        string   `json:"name"`
	Login       string   `json:"login"`
	Permissions []string `json:"permissions"`
}

// BearerToken extracts the token from a "Bearer <token>" Authorization
// header, matching the scheme case-insensitively. A lone word with no scheme
// is taken as the raw token. Any other shape yields "".
func BearerToken(authorization string) string {
	fields := strings.Fields(authorization)
	switch len(fields) {
	case 1:
		if strings.EqualFold(fields[0], "bearer") {
			return ""
		}
		return fields[0]
	case 2:
		if strings.EqualFold(fields[0], "bearer") {
			return fields[1]
		}
	}
	return ""
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored by WithSession, if any.
func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok
}
