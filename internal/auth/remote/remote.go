package remote

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/vbonduro/imagestore/internal/auth"
	"github.com/vbonduro/imagestore/internal/domain"
)

const currentUserPath = "/v1/users/current"

// RemoteValidator asks an auth service who owns a credential. Accepted
// sessions are cached per Authorization header until the cache TTL elapses.
type RemoteValidator struct {
	baseURL string
	client  *http.Client
	cache   *expirable.LRU[string, *auth.Session]
}

// NewRemoteValidator builds a validator for the auth service at baseURL.
// A non-positive cacheTTL or cacheSize disables caching.
func NewRemoteValidator(baseURL string, timeout time.Duration, cacheSize int, cacheTTL time.Duration) *RemoteValidator {
	v := &RemoteValidator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
	if cacheSize > 0 && cacheTTL > 0 {
		v.cache = expirable.NewLRU[string, *auth.Session](cacheSize, nil, cacheTTL)
	}
	return v
}

func (v *RemoteValidator) Validate(ctx context.Context, authorization string) (*auth.Session, error) {
	header := strings.TrimSpace(authorization)
	if header == "" || strings.EqualFold(header, "bearer") {
		return nil, fmt.Errorf("%w: missing token", domain.ErrUnauthorized)
	}

	key := cacheKey(header)
	if v.cache != nil {
		if s, ok := v.cache.Get(key); ok {
			return s, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+currentUserPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", header)
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call auth service: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: token rejected", domain.ErrUnauthorized)
	default:
		return nil, fmt.Errorf("auth service returned status %d", resp.StatusCode)
	}

	var session auth.Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	if v.cache != nil {
		v.cache.Add(key, &session)
	}
	return &session, nil
}

// cacheKey hashes the whole header as sent upstream, so the cache never
// holds raw credentials.
func cacheKey(header string) string {
	sum := sha256.Sum256([]byte(header))
	return hex.EncodeToString(sum[:])
}
