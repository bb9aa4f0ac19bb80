// Package session is the server-side session store: an opaque uuid token
// maps to the authenticated user's non-secret profile. The cookie carries
// token + HMAC so a forged or truncated cookie never reaches the backend.
package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-admin-console/internal/feature/user"
)

var ErrBadCookie = errors.New("malformed or tampered session cookie")

// Backend stores profiles by token with a TTL. Get returns (nil, nil)
// for an unknown or expired token.
type Backend interface {
	Put(ctx context.Context, token string, p user.Profile, ttl time.Duration) error
	Get(ctx context.Context, token string) (*user.Profile, error)
	Del(ctx context.Context, token string) error
}

type Manager struct {
	backend Backend
	secret  []byte
	ttl     time.Duration

	CookieName string
	Secure     bool
}

func NewManager(b Backend, secret, cookieName string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		backend:    b,
		secret:     []byte(secret),
		ttl:        ttl,
		CookieName: cookieName,
		Secure:     secure,
	}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue creates a session for the profile and returns the signed cookie
// value.
func (m *Manager) Issue(ctx context.Context, p user.Profile) (string, error) {
	token := uuid.NewString()
	if err := m.backend.Put(ctx, token, p, m.ttl); err != nil {
		return "", err
	}
	return token + "." + m.sign(token), nil
}

// Resolve maps a cookie value back to its profile. A bad signature is
// ErrBadCookie; a valid-but-unknown token is (nil, nil), same as an
// expired session.
func (m *Manager) Resolve(ctx context.Context, cookie string) (*user.Profile, error) {
	token, err := m.verify(cookie)
	if err != nil {
		return nil, err
	}
	return m.backend.Get(ctx, token)
}

// Revoke destroys the session server-side. Tolerates bad cookies: logout
// must always succeed.
func (m *Manager) Revoke(ctx context.Context, cookie string) error {
	token, err := m.verify(cookie)
	if err != nil {
		return nil
	}
	return m.backend.Del(ctx, token)
}

func (m *Manager) sign(token string) string {
	h := hmac.New(sha256.New, m.secret)
	h.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func (m *Manager) verify(cookie string) (string, error) {
	token, sig, ok := strings.Cut(cookie, ".")
	if !ok || !hmac.Equal([]byte(sig), []byte(m.sign(token))) {
		return "", ErrBadCookie
	}
	return token, nil
}
