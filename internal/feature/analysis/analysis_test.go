package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

func TestAnalyzeAllMatch(t *testing.T) {
	res := Analyze("AAB", "ba")

	assert.Equal(t, 2, res.TotalUniqueChars, "distinct chars of AAB are A and B")
	assert.Equal(t, 2, res.MatchCount)
	assert.Equal(t, []string{"A", "B"}, res.MatchingChars)
	assert.Equal(t, 100.00, res.Percentage)
}

func TestAnalyzeHelloWorld(t *testing.T) {
	res := Analyze("hello world", "drow")

	// H,E,L,O,W,R,D: space excluded, first-occurrence order
	assert.Equal(t, 7, res.TotalUniqueChars)
	assert.Equal(t, 4, res.MatchCount)
	assert.Equal(t, []string{"O", "W", "R", "D"}, res.MatchingChars)
	assert.Equal(t, 57.14, res.Percentage)
}

func TestAnalyzeEmptyFirstInput(t *testing.T) {
	res := Analyze("", "anything")

	assert.Equal(t, 0, res.TotalUniqueChars)
	assert.Equal(t, 0, res.MatchCount)
	assert.Empty(t, res.MatchingChars)
	assert.Equal(t, 0.0, res.Percentage)
}

func TestAnalyzeSpacesOnlyFirstInput(t *testing.T) {
	res := Analyze("   ", "a b c")

	assert.Equal(t, 0, res.TotalUniqueChars)
	assert.Equal(t, 0.0, res.Percentage)
	assert.Empty(t, res.MatchingChars)
}

func TestAnalyzeCaseInsensitive(t *testing.T) {
	res := Analyze("Go", "OG")

	assert.Equal(t, 2, res.MatchCount)
	assert.Equal(t, 100.00, res.Percentage)
}

func TestAnalyzePreservesOriginalCase(t *testing.T) {
	res := Analyze("MiXeD", "mixed")

	assert.Equal(t, "MiXeD", res.Input1)
	assert.Equal(t, "mixed", res.Input2)
}

func TestAnalyzeIdempotent(t *testing.T) {
	a := Analyze("hello world", "drow")
	b := Analyze("hello world", "drow")

	assert.Equal(t, a, b, "same inputs must yield identical results")
}

func TestAnalyzePercentageBounds(t *testing.T) {
	for _, pair := range [][2]string{
		{"abc", "xyz"},
		{"abc", "abc"},
		{"a b c", "b"},
		{"日本語", "語"},
	} {
		res := Analyze(pair[0], pair[1])
		assert.GreaterOrEqual(t, res.Percentage, 0.0, "inputs %q/%q", pair[0], pair[1])
		assert.LessOrEqual(t, res.Percentage, 100.0, "inputs %q/%q", pair[0], pair[1])
	}
}

// 21/32 = 65.625 exactly; half away from zero gives 65.63 where
// half-to-even would give 65.62. Locks the documented rounding mode.
func TestAnalyzeRoundsHalfAwayFromZero(t *testing.T) {
	input1 := "abcdefghijklmnopqrstuvwxyz013456" // 32 distinct chars
	input2 := "abcdefghijklmnopqrstu"            // matches 21 of them

	res := Analyze(input1, input2)

	require.Equal(t, 32, res.TotalUniqueChars)
	require.Equal(t, 21, res.MatchCount)
	assert.Equal(t, 65.63, res.Percentage)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 57.14, round2(400.0/7))
	assert.Equal(t, 14.29, round2(100.0/7))
	assert.Equal(t, 65.63, round2(65.625))
	assert.Equal(t, 100.0, round2(100))
}

func newTestModule(t *testing.T) *Module {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&AnalysisModel{}))
	return NewModule(db, zap.NewNop())
}

func TestSavePersistsComputedResult(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	saved, err := m.Save(ctx, "hello world", "drow")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Greater(t, saved.ID, int64(0))
	assert.Equal(t, 57.14, saved.Percentage)

	items, err := m.ListNewestFirst(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "hello world", items[0].Input1)
	assert.Equal(t, "drow", items[0].Input2)
	assert.Equal(t, 57.14, items[0].Percentage)
	assert.Equal(t, strings.Join([]string{"O", "W", "R", "D"}, ", "), items[0].MatchingChars)
}

func TestSaveTwiceCreatesDistinctRecords(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	first, err := m.Save(ctx, "AAB", "ba")
	require.NoError(t, err)
	second, err := m.Save(ctx, "AAB", "ba")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Result, second.Result, "recomputation must be identical")
}

func TestSaveRequiresBothInputs(t *testing.T) {
	m := newTestModule(t)

	_, err := m.Save(context.Background(), "", "x")
	assert.ErrorIs(t, err, ErrInputsRequired)

	_, err = m.Save(context.Background(), "x", "")
	assert.ErrorIs(t, err, ErrInputsRequired)
}

func TestListNewestFirst(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	_, err := m.Save(ctx, "first", "f")
	require.NoError(t, err)
	_, err = m.Save(ctx, "second", "s")
	require.NoError(t, err)

	items, err := m.ListNewestFirst(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Input1)
	assert.Equal(t, "first", items[1].Input1)
}
