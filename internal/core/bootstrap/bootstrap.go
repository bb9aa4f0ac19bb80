// Package bootstrap initializes storage: idempotent schema migration plus
// an insert-if-absent administrative user. One routine serves every
// deployment shape; eager/lazy and fail-fast/degraded are configuration,
// not separate code paths.
package bootstrap

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-admin-console/internal/core/config"
	"go-admin-console/internal/feature/analysis"
	"go-admin-console/internal/feature/product"
	"go-admin-console/internal/feature/user"
	"go-admin-console/pkg/utils"
)

// Run migrates the schema and seeds the admin user. Safe to call any
// number of times.
func Run(ctx context.Context, db *gorm.DB, l *zap.Logger, seed config.Seed) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&user.UserModel{},
		&product.ProductModel{},
		&analysis.AnalysisModel{},
	); err != nil {
		return err
	}
	l.Info("schema migrated")

	// Insert-if-absent: a first-boot convenience login, not a credential
	// policy. Existing rows are left untouched so a changed password
	// survives restarts.
	admin := user.UserModel{
		Username: seed.Username,
		Password: utils.HashPassword(seed.Password),
		Email:    seed.Email,
	}
	res := db.WithContext(ctx).
		Where(&user.UserModel{Username: seed.Username}).
		Attrs(admin).
		FirstOrCreate(&user.UserModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		l.Info("seeded default admin user", zap.String("username", seed.Username))
	}
	return nil
}

// Guard runs initialization at most once successfully, retrying on each
// Ensure until it works. It backs the degraded mode: when eager startup
// fails non-fatally, every request gets one more chance to initialize.
type Guard struct {
	mu   sync.Mutex
	done bool
	run  func(ctx context.Context) error
}

func NewGuard(run func(ctx context.Context) error) *Guard {
	return &Guard{run: run}
}

func (g *Guard) Ensure(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.done {
		return nil
	}
	if err := g.run(ctx); err != nil {
		return err
	}
	g.done = true
	return nil
}

// Ready reports whether initialization has succeeded, without triggering
// an attempt.
func (g *Guard) Ready() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.done
}
