package check_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/custodian/pkg/check"
	"github.com/wdm0006/custodian/pkg/frame"
)

func floatFrame(t *testing.T, name string, values []float64) *frame.Frame {
	t.Helper()
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: name, Type: frame.KindFloat},
	}})
	for i, v := range values {
		f.AppendNullRow()
		require.NoError(t, f.SetCell(i, name, v))
	}
	return f
}

func TestOutliersZScore(t *testing.T) {
	// 100 tight values and one far outlier: 1% beyond 3 std devs
	values := make([]float64, 101)
	for i := 0; i < 100; i++ {
		values[i] = 10 + float64(i%5)
	}
	values[100] = 10000
	f := floatFrame(t, "v", values)

	out := check.OutliersZScore(f, map[string]any{"column": "v"})
	assert.True(t, out.Passed) // 1% <= default 5%
	assert.Equal(t, 1, out.Details["outlier_count"])

	out = check.OutliersZScore(f, map[string]any{"column": "v", "max_percentage": 0.5})
	assert.False(t, out.Passed)
}

func TestOutliersZScoreNoVariation(t *testing.T) {
	f := floatFrame(t, "v", []float64{7, 7, 7, 7})
	out := check.OutliersZScore(f, map[string]any{"column": "v"})
	assert.True(t, out.Passed)
	assert.Contains(t, out.Message, "no variation")
}

func TestOutliersZScoreBadColumn(t *testing.T) {
	f := smallFrame(t)
	assert.False(t, check.OutliersZScore(f, map[string]any{"column": "grade"}).Passed)
	assert.False(t, check.OutliersZScore(f, map[string]any{"column": "missing"}).Passed)
}

func TestCorrelation(t *testing.T) {
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "x", Type: frame.KindFloat, Nullable: true},
		{Name: "y", Type: frame.KindFloat, Nullable: true},
	}})
	for i := 0; i < 20; i++ {
		f.AppendNullRow()
		require.NoError(t, f.SetCell(i, "x", float64(i)))
		if i != 5 { // one unpaired row must be skipped
			require.NoError(t, f.SetCell(i, "y", float64(2*i+1)))
		}
	}

	out := check.Correlation(f, map[string]any{"column1": "x", "column2": "y"})
	assert.True(t, out.Passed)
	assert.InDelta(t, 1.0, out.Details["correlation"].(float64), 1e-9)

	out = check.Correlation(f, map[string]any{
		"column1": "x", "column2": "y", "max_correlation": 0.5,
	})
	assert.False(t, out.Passed)

	out = check.Correlation(f, map[string]any{
		"column1": "x", "column2": "y", "min_correlation": 0.9,
	})
	assert.True(t, out.Passed)
}

func TestCorrelationBadColumns(t *testing.T) {
	f := smallFrame(t)
	out := check.Correlation(f, map[string]any{"column1": "id", "column2": "grade"})
	assert.False(t, out.Passed)
}

func TestDistributionNormal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	normal := make([]float64, 500)
	for i := range normal {
		normal[i] = rng.NormFloat64()
	}
	out := check.DistributionNormal(floatFrame(t, "v", normal), map[string]any{"column": "v", "alpha": 0.001})
	assert.True(t, out.Passed, out.Message)

	// exponential data is strongly skewed and must be rejected
	skewed := make([]float64, 500)
	for i := range skewed {
		skewed[i] = math.Exp(rng.NormFloat64() * 2)
	}
	out = check.DistributionNormal(floatFrame(t, "v", skewed), map[string]any{"column": "v"})
	assert.False(t, out.Passed, out.Message)
}

func TestDistributionNormalTooFewValues(t *testing.T) {
	out := check.DistributionNormal(floatFrame(t, "v", []float64{1, 2}), map[string]any{"column": "v"})
	assert.False(t, out.Passed)
	assert.Contains(t, out.Message, "not enough data")
}

func TestStringColumnsTrimmed(t *testing.T) {
	clean := smallFrame(t)
	assert.True(t, check.StringColumnsTrimmed(clean, nil).Passed)

	dirty := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "s", Type: frame.KindString},
	}})
	dirty.AppendNullRow()
	require.NoError(t, dirty.SetCell(0, "s", " padded "))
	out := check.StringColumnsTrimmed(dirty, nil)
	assert.False(t, out.Passed)
	assert.Contains(t, out.Message, "s")
}

func TestReasonableNullPercentage(t *testing.T) {
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "mostly_null", Type: frame.KindFloat, Nullable: true},
		{Name: "dense", Type: frame.KindInt},
	}})
	for i := 0; i < 100; i++ {
		f.AppendNullRow()
		require.NoError(t, f.SetCell(i, "dense", int64(i)))
		if i < 4 { // 96% null
			require.NoError(t, f.SetCell(i, "mostly_null", 1.0))
		}
	}
	out := check.ReasonableNullPercentage(f, nil)
	assert.False(t, out.Passed)
	assert.Contains(t, out.Message, "mostly_null")

	assert.True(t, check.ReasonableNullPercentage(smallFrame(t), nil).Passed)
}
