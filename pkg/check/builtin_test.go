package check_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/custodian/pkg/check"
	"github.com/wdm0006/custodian/pkg/frame"
)

func smallFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "id", Type: frame.KindInt},
		{Name: "score", Type: frame.KindFloat, Nullable: true},
		{Name: "grade", Type: frame.KindString},
	}})
	rows := []struct {
		id    int64
		score any
		grade string
	}{
		{1, 0.5, "A"},
		{2, 0.9, "B"},
		{3, nil, "C"},
		{4, 1.5, "A"},
	}
	for i, row := range rows {
		f.AppendNullRow()
		require.NoError(t, f.SetCell(i, "id", row.id))
		if row.score != nil {
			require.NoError(t, f.SetCell(i, "score", row.score))
		}
		require.NoError(t, f.SetCell(i, "grade", row.grade))
	}
	return f
}

func TestNotEmpty(t *testing.T) {
	assert.True(t, check.NotEmpty(smallFrame(t), nil).Passed)

	empty := frame.New(frame.Schema{Columns: []frame.ColumnSchema{{Name: "x", Type: frame.KindInt}}})
	assert.False(t, check.NotEmpty(empty, nil).Passed)
}

func TestDuplicateRowsThreshold(t *testing.T) {
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{{Name: "v", Type: frame.KindInt}}})
	for i := 0; i < 10; i++ {
		f.AppendNullRow()
		require.NoError(t, f.SetCell(i, "v", int64(i%9))) // one duplicate, 10%
	}
	assert.False(t, check.DuplicateRows(f, nil).Passed)
	assert.False(t, check.DuplicateRows(f, map[string]any{"threshold": 10.0}).Passed)
	assert.True(t, check.DuplicateRows(f, map[string]any{"threshold": 10.1}).Passed)

	// Zero duplicates passes even with threshold 0.
	clean := frame.New(frame.Schema{Columns: []frame.ColumnSchema{{Name: "v", Type: frame.KindInt}}})
	clean.AppendNullRow()
	require.NoError(t, clean.SetCell(0, "v", int64(1)))
	assert.True(t, check.DuplicateRows(clean, map[string]any{"threshold": 0}).Passed)
}

func TestDataTypesFlagsNumericStrings(t *testing.T) {
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "amount", Type: frame.KindString},
	}})
	for i := 0; i < 20; i++ {
		f.AppendNullRow()
		require.NoError(t, f.SetCell(i, "amount", "12.50"))
	}
	out := check.DataTypes(f, nil)
	assert.False(t, out.Passed)
	assert.Contains(t, out.Message, "amount")

	assert.True(t, check.DataTypes(smallFrame(t), nil).Passed)
}

func TestNoNulls(t *testing.T) {
	f := smallFrame(t)
	assert.True(t, check.NoNulls(f, map[string]any{"columns": []any{"id", "grade"}}).Passed)
	out := check.NoNulls(f, map[string]any{"columns": []any{"score"}})
	assert.False(t, out.Passed)
}

func TestUniqueKeys(t *testing.T) {
	f := smallFrame(t)
	assert.True(t, check.UniqueKeys(f, map[string]any{"columns": []any{"id"}}).Passed)
	assert.False(t, check.UniqueKeys(f, map[string]any{"columns": []any{"grade"}}).Passed)
}

func TestValueRange(t *testing.T) {
	f := smallFrame(t)
	assert.True(t, check.ValueRange(f, map[string]any{"column": "score", "min": 0, "max": 2}).Passed)

	out := check.ValueRange(f, map[string]any{"column": "score", "max": 1.0})
	assert.False(t, out.Passed)
	assert.Equal(t, 1, out.Details["out_of_range_count"])

	assert.False(t, check.ValueRange(f, map[string]any{"column": "missing"}).Passed)
}

func TestAllowedValues(t *testing.T) {
	f := smallFrame(t)
	assert.True(t, check.AllowedValues(f, map[string]any{
		"column": "grade", "values": []any{"A", "B", "C"},
	}).Passed)

	out := check.AllowedValues(f, map[string]any{"column": "grade", "values": []any{"A", "B"}})
	assert.False(t, out.Passed)
	assert.Equal(t, []string{"C"}, out.Details["invalid_values"])
}

func TestDateContinuity(t *testing.T) {
	mk := func(days ...int) *frame.Frame {
		f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
			{Name: "date", Type: frame.KindTime},
		}})
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for i, d := range days {
			f.AppendNullRow()
			require.NoError(t, f.SetCell(i, "date", start.AddDate(0, 0, d)))
		}
		return f
	}
	assert.True(t, check.DateContinuity(mk(0, 1, 2, 3), map[string]any{"column": "date"}).Passed)

	out := check.DateContinuity(mk(0, 1, 4), map[string]any{"column": "date"})
	assert.False(t, out.Passed)
	assert.Equal(t, 2, out.Details["missing_count"])

	notTime := smallFrame(t)
	assert.False(t, check.DateContinuity(notTime, map[string]any{"column": "grade"}).Passed)
}

func TestColumnNames(t *testing.T) {
	good := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "snake_case_1", Type: frame.KindInt},
	}})
	assert.True(t, check.ColumnNames(good, nil).Passed)

	bad := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "has space", Type: frame.KindInt},
		{Name: "pct%", Type: frame.KindInt},
	}})
	out := check.ColumnNames(bad, nil)
	assert.False(t, out.Passed)
	assert.Len(t, out.Details["issues"], 2)
}

func TestMLReady(t *testing.T) {
	assert.True(t, check.MLReady(smallFrame(t), nil).Passed)

	empty := frame.New(frame.Schema{})
	assert.False(t, check.MLReady(empty, nil).Passed)
}
