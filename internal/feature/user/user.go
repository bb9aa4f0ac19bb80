package user

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-admin-console/internal/store"
	"go-admin-console/pkg/utils"
)

var ErrInvalidInput = errors.New("username and password are required")

// Profile is the non-secret view of a user; it is what sessions hold and
// what Authenticate returns. The hash never leaves this package.
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Module struct {
	store *store.Store
}

func NewModule(db *gorm.DB, l *zap.Logger) *Module {
	return &Module{store: store.New(db, l, UserModel{}.TableName())}
}

// Authenticate verifies credentials against the stored bcrypt hash.
// Unknown username or wrong password yields (nil, nil): bad credentials
// are a branch, not an error.
func (m *Module) Authenticate(ctx context.Context, username, password string) (*Profile, error) {
	recs, err := m.store.FindAll(ctx, map[string]any{"username": username})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	rec := recs[0]
	if !utils.CheckPassword(password, rec.String("password")) {
		return nil, nil
	}
	return profileOf(&rec), nil
}

// Create hashes the password and inserts the user. A duplicate username
// surfaces as a *store.StorageError wrapping store.ErrConstraint.
func (m *Module) Create(ctx context.Context, username, password, email string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return 0, ErrInvalidInput
	}
	return m.store.Create(ctx, map[string]any{
		"username": username,
		"password": utils.HashPassword(password),
		"email":    email,
	})
}

// FindByID returns (nil, nil) when the user does not exist.
func (m *Module) FindByID(ctx context.Context, id int64) (*Profile, error) {
	rec, err := m.store.FindByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return profileOf(rec), nil
}

func (m *Module) Statistics(ctx context.Context) (store.Stats, error) {
	return m.store.Statistics(ctx)
}

func profileOf(rec *store.Record) *Profile {
	return &Profile{
		ID:       rec.ID,
		Username: rec.String("username"),
		Email:    rec.String("email"),
	}
}
