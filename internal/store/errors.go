package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConstraint marks a StorageError caused by a uniqueness/constraint
// violation rather than connectivity. Test with errors.Is.
var ErrConstraint = errors.New("constraint violation")

// StorageError wraps any failure at the store boundary with the table and
// operation it happened in. Absent records are not errors; see FindByID,
// Update and Delete.
type StorageError struct {
	Table string
	Op    string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (s *Store) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if isDupKey(err) {
		err = fmt.Errorf("%w: %v", ErrConstraint, err)
	}
	return &StorageError{Table: s.table, Op: op, Err: err}
}

// isDupKey matches duplicate-key messages across mysql, postgres and
// sqlite instead of depending on driver-specific error types.
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
