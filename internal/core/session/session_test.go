package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-admin-console/internal/feature/user"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(NewMemoryBackend(), "test-secret", "test_session", ttl, false)
}

func TestIssueResolveRoundTrip(t *testing.T) {
	m := newTestManager(time.Minute)
	ctx := context.Background()

	cookie, err := m.Issue(ctx, user.Profile{ID: 1, Username: "alice", Email: "a@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, cookie)

	p, err := m.Resolve(ctx, cookie)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "alice", p.Username)
}

func TestResolveTamperedCookie(t *testing.T) {
	m := newTestManager(time.Minute)
	ctx := context.Background()

	cookie, err := m.Issue(ctx, user.Profile{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = m.Resolve(ctx, cookie+"x")
	assert.ErrorIs(t, err, ErrBadCookie)

	_, err = m.Resolve(ctx, "no-dot-at-all")
	assert.ErrorIs(t, err, ErrBadCookie)

	_, err = m.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrBadCookie)
}

func TestResolveForeignSignature(t *testing.T) {
	ctx := context.Background()
	a := newTestManager(time.Minute)
	b := NewManager(NewMemoryBackend(), "other-secret", "test_session", time.Minute, false)

	cookie, err := a.Issue(ctx, user.Profile{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = b.Resolve(ctx, cookie)
	assert.ErrorIs(t, err, ErrBadCookie, "cookie signed with a different secret must not verify")
}

func TestResolveExpiredSession(t *testing.T) {
	m := newTestManager(-time.Second)
	ctx := context.Background()

	cookie, err := m.Issue(ctx, user.Profile{ID: 1, Username: "alice"})
	require.NoError(t, err)

	p, err := m.Resolve(ctx, cookie)
	require.NoError(t, err)
	assert.Nil(t, p, "expired session resolves to nil, not an error")
}

func TestRevoke(t *testing.T) {
	m := newTestManager(time.Minute)
	ctx := context.Background()

	cookie, err := m.Issue(ctx, user.Profile{ID: 1, Username: "alice"})
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, cookie))

	p, err := m.Resolve(ctx, cookie)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestRevokeToleratesGarbage(t *testing.T) {
	m := newTestManager(time.Minute)

	assert.NoError(t, m.Revoke(context.Background(), "garbage"))
	assert.NoError(t, m.Revoke(context.Background(), ""))
}

func TestMemoryBackendUnknownToken(t *testing.T) {
	b := NewMemoryBackend()

	p, err := b.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, p)
}
