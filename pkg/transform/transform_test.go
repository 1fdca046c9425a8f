package transform_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/custodian/pkg/frame"
	"github.com/wdm0006/custodian/pkg/transform"
)

func stringFrame(t *testing.T, values ...string) *frame.Frame {
	t.Helper()
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "s", Type: frame.KindString},
	}})
	for i, v := range values {
		f.AppendNullRow()
		require.NoError(t, f.SetCell(i, "s", v))
	}
	return f
}

func column(t *testing.T, f *frame.Frame, name string) []string {
	t.Helper()
	out := make([]string, f.Rows())
	for i := range out {
		out[i] = f.CellString(i, name)
	}
	return out
}

func TestTrim(t *testing.T) {
	f := stringFrame(t, "  a", "b  ", " c ")
	got, err := (&transform.Trim{Column: "s"}).Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, column(t, got, "s"))
}

func TestCase(t *testing.T) {
	f := stringFrame(t, "Ab", "cD")
	got, err := (&transform.Lower{Column: "s"}).Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "cd"}, column(t, got, "s"))

	got, err = (&transform.Upper{Column: "s"}).Apply(context.Background(), got)
	require.NoError(t, err)
	assert.Equal(t, []string{"AB", "CD"}, column(t, got, "s"))
}

func TestImputeConstant(t *testing.T) {
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "v", Type: frame.KindFloat, Nullable: true},
	}})
	f.AppendNullRow()
	f.AppendNullRow()
	require.NoError(t, f.SetCell(0, "v", 2.0))

	got, err := (&transform.ImputeConstant{Column: "v", Value: -1}).Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 0, got.NullCount("v"))
	assert.Equal(t, "-1", got.CellString(1, "v"))
}

func TestImputeMean(t *testing.T) {
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "v", Type: frame.KindFloat, Nullable: true},
	}})
	for i := 0; i < 3; i++ {
		f.AppendNullRow()
	}
	require.NoError(t, f.SetCell(0, "v", 1.0))
	require.NoError(t, f.SetCell(1, "v", 3.0))

	got, err := (&transform.ImputeMean{Column: "v"}).Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 0, got.NullCount("v"))
	assert.Equal(t, "2", got.CellString(2, "v"))
}

func TestImputeMeanAllNull(t *testing.T) {
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "v", Type: frame.KindFloat, Nullable: true},
	}})
	f.AppendNullRow()
	got, err := (&transform.ImputeMean{Column: "v"}).Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 1, got.NullCount("v"))
}

func TestCap(t *testing.T) {
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "v", Type: frame.KindFloat, Nullable: true},
	}})
	for i, v := range []float64{-5, 0.5, 99} {
		f.AppendNullRow()
		require.NoError(t, f.SetCell(i, "v", v))
	}
	f.AppendNullRow() // null stays null

	lo, hi := 0.0, 10.0
	got, err := (&transform.Cap{Column: "v", Min: &lo, Max: &hi}).Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "0.5", "10", ""}, column(t, got, "v"))
}

func TestCapOpenBounds(t *testing.T) {
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "v", Type: frame.KindInt},
	}})
	for i, v := range []int64{-3, 7} {
		f.AppendNullRow()
		require.NoError(t, f.SetCell(i, "v", v))
	}
	lo := 0.0
	got, err := (&transform.Cap{Column: "v", Min: &lo}).Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "7"}, column(t, got, "v"))
}

func TestDropDuplicates(t *testing.T) {
	f := stringFrame(t, "a", "b", "a", "c", "b")
	got, err := (&transform.DropDuplicates{}).Apply(context.Background(), f)
	require.NoError(t, err)
	// first occurrence wins, order preserved
	assert.Equal(t, []string{"a", "b", "c"}, column(t, got, "s"))
}

func TestPipelineOrder(t *testing.T) {
	f := stringFrame(t, " x ", "x", " X ")
	p := transform.NewPipeline().
		Add(&transform.Trim{Column: "s"}).
		Add(&transform.Upper{Column: "s"}).
		Add(&transform.DropDuplicates{})

	got, err := p.Run(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, column(t, got, "s"))
}
