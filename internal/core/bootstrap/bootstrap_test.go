package bootstrap

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

	"go-admin-console/internal/core/config"
	"go-admin-console/internal/feature/user"
	"go-admin-console/pkg/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

var testSeed = config.Seed{Username: "admin", Password: "admin123", Email: "admin@example.com"}

func TestRunSeedsAdmin(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Run(context.Background(), db, zap.NewNop(), testSeed))

	var u user.UserModel
	require.NoError(t, db.Where("username = ?", "admin").First(&u).Error)
	assert.Equal(t, "admin@example.com", u.Email)
	assert.True(t, utils.CheckPassword("admin123", u.Password))
	assert.NotEqual(t, "admin123", u.Password, "seed password must be stored hashed")
}

func TestRunIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, Run(ctx, db, zap.NewNop(), testSeed))

	// change the password, then run again: the existing row must survive
	require.NoError(t, db.Model(&user.UserModel{}).
		Where("username = ?", "admin").
		Update("password", utils.HashPassword("rotated")).Error)

	require.NoError(t, Run(ctx, db, zap.NewNop(), testSeed))

	var count int64
	require.NoError(t, db.Model(&user.UserModel{}).Where("username = ?", "admin").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var u user.UserModel
	require.NoError(t, db.Where("username = ?", "admin").First(&u).Error)
	assert.True(t, utils.CheckPassword("rotated", u.Password), "reseeding must not reset the password")
}

func TestGuardRunsOnceOnSuccess(t *testing.T) {
	calls := 0
	g := NewGuard(func(context.Context) error {
		calls++
		return nil
	})

	assert.False(t, g.Ready())
	require.NoError(t, g.Ensure(context.Background()))
	require.NoError(t, g.Ensure(context.Background()))
	assert.Equal(t, 1, calls)
	assert.True(t, g.Ready())
}

func TestGuardRetriesAfterFailure(t *testing.T) {
	calls := 0
	g := NewGuard(func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("storage offline")
		}
		return nil
	})

	assert.Error(t, g.Ensure(context.Background()))
	assert.False(t, g.Ready())
	assert.Error(t, g.Ensure(context.Background()))
	require.NoError(t, g.Ensure(context.Background()))
	assert.True(t, g.Ready())
	assert.Equal(t, 3, calls)
}
