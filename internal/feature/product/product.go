package product

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-admin-console/internal/store"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNegativeStock = errors.New("stock must not be negative")
)

// Input is the validated create/update payload.
type Input struct {
	Name        string
	Description string
	Price       float64
	Stock       int64
}

func (in *Input) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return ErrEmptyName
	}
	if in.Price < 0 {
		return ErrNegativePrice
	}
	if in.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

type Module struct {
	store *store.Store
}

func NewModule(db *gorm.DB, l *zap.Logger) *Module {
	return &Module{store: store.New(db, l, ProductModel{}.TableName())}
}

func (m *Module) Create(ctx context.Context, in Input) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}
	return m.store.Create(ctx, in.fields())
}

// Update overwrites the product's fields; (false, nil) when the id does
// not exist.
func (m *Module) Update(ctx context.Context, id int64, in Input) (bool, error) {
	if err := in.validate(); err != nil {
		return false, err
	}
	return m.store.Update(ctx, id, in.fields())
}

func (m *Module) Delete(ctx context.Context, id int64) (bool, error) {
	return m.store.Delete(ctx, id)
}

// FindByID returns (nil, nil) when the product does not exist.
func (m *Module) FindByID(ctx context.Context, id int64) (*Product, error) {
	rec, err := m.store.FindByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	p := fromRecord(rec)
	return &p, nil
}

func (m *Module) FindAll(ctx context.Context) ([]Product, error) {
	recs, err := m.store.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

// Search matches name or description against %term%, ordered by name.
func (m *Module) Search(ctx context.Context, term string) ([]Product, error) {
	recs, err := m.store.FindLike(ctx, []string{"name", "description"}, term, "name")
	if err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func (m *Module) Statistics(ctx context.Context) (store.Stats, error) {
	return m.store.Statistics(ctx)
}

func (in Input) fields() map[string]any {
	return map[string]any{
		"name":        in.Name,
		"description": in.Description,
		"price":       in.Price,
		"stock":       in.Stock,
	}
}

func fromRecord(rec *store.Record) Product {
	return Product{
		ID:          rec.ID,
		Name:        rec.String("name"),
		Description: rec.String("description"),
		Price:       rec.Float("price"),
		Stock:       rec.Int("stock"),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func fromRecords(recs []store.Record) []Product {
	out := make([]Product, 0, len(recs))
	for i := range recs {
		out = append(out, fromRecord(&recs[i]))
	}
	return out
}
