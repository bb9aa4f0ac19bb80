// Package analysis computes and persists character-overlap results: what
// fraction of the first string's distinct non-space characters also occur
// in the second, case-insensitively.
package analysis

import (
	"context"
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-admin-console/internal/store"
)

var ErrInputsRequired = errors.New("both input strings are required")

// Result carries the original-case inputs and the computed overlap.
// Percentage is rounded half away from zero to two decimals.
type Result struct {
	Input1           string
	Input2           string
	MatchingChars    []string
	MatchCount       int
	TotalUniqueChars int
	Percentage       float64
}

// SavedResult is a Result plus the id assigned on persistence.
type SavedResult struct {
	Result
	ID int64
}

// Analyze normalizes both inputs to upper case for comparison only (the
// originals are returned untouched), walks the distinct non-space
// characters of input1 in first-occurrence order, and counts those that
// occur anywhere in input2. The denominator is the distinct non-space
// character count of input1, never its length; a zero denominator yields
// percentage 0.
func Analyze(input1, input2 string) Result {
	s1 := strings.ToUpper(input1)
	s2 := strings.ToUpper(input2)

	seen := make(map[rune]bool)
	var matching []string
	total := 0
	matches := 0
	for _, r := range s1 {
		if r == ' ' || seen[r] {
			continue
		}
		seen[r] = true
		total++
		if strings.ContainsRune(s2, r) {
			matching = append(matching, string(r))
			matches++
		}
	}

	pct := 0.0
	if total > 0 {
		pct = float64(matches) / float64(total) * 100
	}

	return Result{
		Input1:           input1,
		Input2:           input2,
		MatchingChars:    matching,
		MatchCount:       matches,
		TotalUniqueChars: total,
		Percentage:       round2(pct),
	}
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type Module struct {
	store *store.Store
}

func NewModule(db *gorm.DB, l *zap.Logger) *Module {
	return &Module{store: store.NewAppendOnly(db, l, AnalysisModel{}.TableName())}
}

// Save runs Analyze and persists the outcome with the matching characters
// joined by ", ". It returns the full result merged with the new id.
func (m *Module) Save(ctx context.Context, input1, input2 string) (*SavedResult, error) {
	if input1 == "" || input2 == "" {
		return nil, ErrInputsRequired
	}
	res := Analyze(input1, input2)
	id, err := m.store.Create(ctx, map[string]any{
		"input1":         res.Input1,
		"input2":         res.Input2,
		"percentage":     res.Percentage,
		"matching_chars": strings.Join(res.MatchingChars, ", "),
	})
	if err != nil {
		return nil, err
	}
	return &SavedResult{Result: res, ID: id}, nil
}

// Saved is one persisted analysis as listed in views.
type Saved struct {
	ID            int64
	Input1        string
	Input2        string
	Percentage    float64
	MatchingChars string
	CreatedAt     string
}

// ListNewestFirst returns all persisted analyses, most recent first.
func (m *Module) ListNewestFirst(ctx context.Context) ([]Saved, error) {
	recs, err := m.store.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]Saved, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		rec := &recs[i]
		out = append(out, Saved{
			ID:            rec.ID,
			Input1:        rec.String("input1"),
			Input2:        rec.String("input2"),
			Percentage:    rec.Float("percentage"),
			MatchingChars: rec.String("matching_chars"),
			CreatedAt:     rec.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return out, nil
}

func (m *Module) Statistics(ctx context.Context) (store.Stats, error) {
	return m.store.Statistics(ctx)
}
