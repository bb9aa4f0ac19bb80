// Package store implements generic persistence for a named table of
// integer-keyed records. Every entity module composes a Store instead of
// duplicating its own CRUD wiring.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Store struct {
	db    *gorm.DB
	log   *zap.Logger
	table string
	// touchUpdated is false for append-only tables without an updated_at
	// column (character_analysis).
	touchUpdated bool
}

func New(db *gorm.DB, l *zap.Logger, table string) *Store {
	return &Store{db: db, log: l, table: table, touchUpdated: true}
}

// NewAppendOnly is New for tables that carry created_at but no updated_at.
func NewAppendOnly(db *gorm.DB, l *zap.Logger, table string) *Store {
	return &Store{db: db, log: l, table: table, touchUpdated: false}
}

func (s *Store) Table() string { return s.table }

// sqlDB returns the pooled handle; every statement below checks a
// connection out of the pool and returns it before the call completes, so
// no connection is held across store operations.
func (s *Store) sqlDB() (*sql.DB, error) {
	return s.db.DB()
}

func (s *Store) dialect() string { return s.db.Dialector.Name() }

func (s *Store) placeholder(n int) string {
	if s.dialect() == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (s *Store) quote(ident string) string {
	if s.dialect() == "mysql" {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}

// Create inserts a record with the given fields, assigns created_at (and
// updated_at where the table has one) and returns the new id. A
// uniqueness violation or connectivity failure comes back as a
// *StorageError; errors.Is(err, ErrConstraint) distinguishes the former.
func (s *Store) Create(ctx context.Context, fields map[string]any) (int64, error) {
	db, err := s.sqlDB()
	if err != nil {
		return 0, s.fail("create", err)
	}

	now := time.Now()
	cols := sortedKeys(fields)
	names := make([]string, 0, len(cols)+2)
	marks := make([]string, 0, len(cols)+2)
	args := make([]any, 0, len(cols)+2)
	for _, c := range cols {
		names = append(names, s.quote(c))
		marks = append(marks, s.placeholder(len(args)+1))
		args = append(args, fields[c])
	}
	names = append(names, s.quote("created_at"))
	marks = append(marks, s.placeholder(len(args)+1))
	args = append(args, now)
	if s.touchUpdated {
		names = append(names, s.quote("updated_at"))
		marks = append(marks, s.placeholder(len(args)+1))
		args = append(args, now)
	}

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.quote(s.table), strings.Join(names, ", "), strings.Join(marks, ", "))

	if s.dialect() == "postgres" {
		var id int64
		if err := db.QueryRowContext(ctx, q+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, s.fail("create", err)
		}
		return id, nil
	}

	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, s.fail("create", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, s.fail("create", err)
	}
	return id, nil
}

// FindAll returns records whose fields equal every filter pair. An empty
// filter returns the whole table. Insertion (id) order.
func (s *Store) FindAll(ctx context.Context, filter map[string]any) ([]Record, error) {
	db, err := s.sqlDB()
	if err != nil {
		return nil, s.fail("findAll", err)
	}

	q := "SELECT * FROM " + s.quote(s.table)
	var args []any
	if len(filter) > 0 {
		var conds []string
		for _, k := range sortedKeys(filter) {
			conds = append(conds, fmt.Sprintf("%s = %s", s.quote(k), s.placeholder(len(args)+1)))
			args = append(args, filter[k])
		}
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY " + s.quote("id")

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, s.fail("findAll", err)
	}
	defer rows.Close()
	recs, err := s.scanRecords(rows)
	if err != nil {
		return nil, s.fail("findAll", err)
	}
	return recs, nil
}

// FindLike returns records where any of the given columns matches
// %term%, ordered by orderBy. Used for product search.
func (s *Store) FindLike(ctx context.Context, columns []string, term, orderBy string) ([]Record, error) {
	db, err := s.sqlDB()
	if err != nil {
		return nil, s.fail("findLike", err)
	}

	pattern := "%" + term + "%"
	var conds []string
	var args []any
	for _, c := range columns {
		conds = append(conds, fmt.Sprintf("%s LIKE %s", s.quote(c), s.placeholder(len(args)+1)))
		args = append(args, pattern)
	}
	q := fmt.Sprintf("SELECT * FROM %s WHERE %s ORDER BY %s",
		s.quote(s.table), strings.Join(conds, " OR "), s.quote(orderBy))

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, s.fail("findLike", err)
	}
	defer rows.Close()
	recs, err := s.scanRecords(rows)
	if err != nil {
		return nil, s.fail("findLike", err)
	}
	return recs, nil
}

// FindByID returns (nil, nil) when no record has the id; absence is a
// branch for the caller, not an error.
func (s *Store) FindByID(ctx context.Context, id int64) (*Record, error) {
	db, err := s.sqlDB()
	if err != nil {
		return nil, s.fail("findById", err)
	}

	q := fmt.Sprintf("SELECT * FROM %s WHERE %s = %s",
		s.quote(s.table), s.quote("id"), s.placeholder(1))
	rows, err := db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, s.fail("findById", err)
	}
	defer rows.Close()
	recs, err := s.scanRecords(rows)
	if err != nil {
		return nil, s.fail("findById", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// Update overwrites only the named fields and touches updated_at. It
// reports whether a row changed; a missing id yields (false, nil).
func (s *Store) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}
	db, err := s.sqlDB()
	if err != nil {
		return false, s.fail("update", err)
	}

	var sets []string
	var args []any
	for _, k := range sortedKeys(fields) {
		sets = append(sets, fmt.Sprintf("%s = %s", s.quote(k), s.placeholder(len(args)+1)))
		args = append(args, fields[k])
	}
	if s.touchUpdated {
		sets = append(sets, fmt.Sprintf("%s = %s", s.quote("updated_at"), s.placeholder(len(args)+1)))
		args = append(args, time.Now())
	}
	args = append(args, id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		s.quote(s.table), strings.Join(sets, ", "), s.quote("id"), s.placeholder(len(args)))

	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, s.fail("update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, s.fail("update", err)
	}
	return n > 0, nil
}

// Delete removes the record permanently. Idempotent: a missing id yields
// (false, nil).
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	db, err := s.sqlDB()
	if err != nil {
		return false, s.fail("delete", err)
	}

	q := fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
		s.quote(s.table), s.quote("id"), s.placeholder(1))
	res, err := db.ExecContext(ctx, q, id)
	if err != nil {
		return false, s.fail("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, s.fail("delete", err)
	}
	return n > 0, nil
}

// Statistics aggregates the table by id. An empty table yields Count 0
// and nil min/max/avg.
func (s *Store) Statistics(ctx context.Context) (Stats, error) {
	db, err := s.sqlDB()
	if err != nil {
		return Stats{}, s.fail("statistics", err)
	}

	q := fmt.Sprintf("SELECT COUNT(%[1]s), MIN(%[1]s), MAX(%[1]s), AVG(%[1]s) FROM %[2]s",
		s.quote("id"), s.quote(s.table))

	var count int64
	var minID, maxID sql.NullInt64
	var avgID sql.NullFloat64
	if err := db.QueryRowContext(ctx, q).Scan(&count, &minID, &maxID, &avgID); err != nil {
		return Stats{}, s.fail("statistics", err)
	}

	out := Stats{Count: count}
	if minID.Valid {
		v := minID.Int64
		out.MinID = &v
	}
	if maxID.Valid {
		v := maxID.Int64
		out.MaxID = &v
	}
	if avgID.Valid {
		v := avgID.Float64
		out.AvgID = &v
	}
	return out, nil
}

func (s *Store) scanRecords(rows *sql.Rows) ([]Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Record
	for rows.Next() {
		raw := make([]any, len(cols))
		dest := make([]any, len(cols))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		rec := Record{Fields: make(map[string]any, len(cols))}
		for i, c := range cols {
			switch c {
			case "id":
				if v, ok := toInt64(raw[i]); ok {
					rec.ID = v
				}
			case "created_at":
				if t, ok := toTime(raw[i]); ok {
					rec.CreatedAt = t
				}
			case "updated_at":
				if t, ok := toTime(raw[i]); ok {
					rec.UpdatedAt = t
				}
			default:
				if b, ok := raw[i].([]byte); ok {
					rec.Fields[c] = string(b)
				} else {
					rec.Fields[c] = raw[i]
				}
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// fail wraps and logs in one place; store errors always propagate to the
// caller.
func (s *Store) fail(op string, err error) error {
	werr := s.wrap(op, err)
	if s.log != nil {
		s.log.Error("store operation failed",
			zap.String("table", s.table), zap.String("op", op), zap.Error(err))
	}
	return werr
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
