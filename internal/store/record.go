package store

import (
	"fmt"
	"strconv"
	"time"
)

// Record is one persisted row: integer id, named scalar fields, and the
// server-assigned timestamps. Fields holds everything except id,
// created_at and updated_at.
type Record struct {
	ID        int64
	Fields    map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stats aggregates a whole table by id. Pointers are nil on an empty
// table: "no data" is not zero.
type Stats struct {
	Count int64
	MinID *int64
	MaxID *int64
	AvgID *float64
}

// String returns the field as a string, tolerating []byte from mysql.
func (r *Record) String(name string) string {
	switch v := r.Fields[name].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Float returns the field as float64. Decimal columns come back as
// strings or []byte from some drivers.
func (r *Record) Float(name string) float64 {
	switch v := r.Fields[name].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case []byte:
		f, _ := strconv.ParseFloat(string(v), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

// Int returns the field as int64.
func (r *Record) Int(name string) int64 {
	switch v := r.Fields[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case []byte:
		i, err := strconv.ParseInt(string(n), 10, 64)
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case []byte:
		return parseTime(string(t))
	case string:
		return parseTime(t)
	default:
		return time.Time{}, false
	}
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
