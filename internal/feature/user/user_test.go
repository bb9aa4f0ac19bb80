package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"go-admin-console/internal/store"
)

func newTestModule(t *testing.T) *Module {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&UserModel{}))
	return NewModule(db, zap.NewNop())
}

func TestCreateAndAuthenticate(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	id, err := m.Create(ctx, "alice", "s3cret", "alice@example.com")
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	p, err := m.Authenticate(ctx, "alice", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "alice@example.com", p.Email)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	_, err := m.Create(ctx, "alice", "s3cret", "alice@example.com")
	require.NoError(t, err)

	p, err := m.Authenticate(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.Nil(t, p, "wrong password is a branch, not an error")
}

func TestAuthenticateUnknownUser(t *testing.T) {
	m := newTestModule(t)

	p, err := m.Authenticate(context.Background(), "nobody", "whatever")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestCreateValidation(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	_, err := m.Create(ctx, "   ", "pw", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = m.Create(ctx, "bob", "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateDuplicateUsername(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	_, err := m.Create(ctx, "alice", "one", "a@example.com")
	require.NoError(t, err)

	_, err = m.Create(ctx, "alice", "two", "b@example.com")
	require.Error(t, err)
	var serr *store.StorageError
	assert.True(t, errors.As(err, &serr))
	assert.ErrorIs(t, err, store.ErrConstraint)
}

func TestPasswordHashNeverExposed(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	id, err := m.Create(ctx, "alice", "s3cret", "")
	require.NoError(t, err)

	p, err := m.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "alice", p.Username)
	// Profile has no password field at all; the round trip proves the
	// stored value is a hash, not the clear text.
	recs, err := m.store.FindAll(ctx, map[string]any{"username": "alice"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.NotEqual(t, "s3cret", recs[0].String("password"))
}

func TestFindByIDAbsent(t *testing.T) {
	m := newTestModule(t)

	p, err := m.FindByID(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, p)
}
