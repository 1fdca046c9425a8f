package demo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/custodian/pkg/check"
	"github.com/wdm0006/custodian/pkg/cleaner"
	"github.com/wdm0006/custodian/pkg/frame"
)

func TestCapabilities(t *testing.T) {
	caps := cleaner.Probe(New())
	assert.True(t, caps.DownloadFrame)
	assert.True(t, caps.CleanFrame)
	assert.False(t, caps.DownloadPath)
	assert.False(t, caps.CleanPath)
	assert.True(t, caps.Runnable())
}

func TestDownloadFrame(t *testing.T) {
	c := &Cleaner{}
	raw, err := c.DownloadFrame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 180, raw.Rows()) // 30 days x 6 observations
	assert.Equal(t, 3, raw.Cols())
	assert.Greater(t, raw.NullCount("value"), 0)
}

func TestDownloadHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Cleaner{}).DownloadFrame(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCleanFrame(t *testing.T) {
	c := &Cleaner{}
	ctx := context.Background()
	raw, err := c.DownloadFrame(ctx)
	require.NoError(t, err)

	cleaned, err := c.CleanFrame(ctx, raw)
	require.NoError(t, err)

	// distinct values per row, so dedupe drops nothing
	assert.Equal(t, 180, cleaned.Rows())
	assert.Equal(t, 0, cleaned.NullCount("value"))
	assert.True(t, c.ValidateOutput(cleaned))

	col, ok := cleaned.ColumnByName("category")
	require.True(t, ok)
	sc, ok := col.(*frame.StringColumn)
	require.True(t, ok)
	for i := 0; i < sc.Len(); i++ {
		v, present := sc.Get(i)
		require.True(t, present)
		assert.Contains(t, []string{"A", "B", "C"}, v)
	}
}

func TestCustomChecks(t *testing.T) {
	c := &Cleaner{}
	ctx := context.Background()
	raw, err := c.DownloadFrame(ctx)
	require.NoError(t, err)
	cleaned, err := c.CleanFrame(ctx, raw)
	require.NoError(t, err)

	assert.True(t, checkExpectedColumns(cleaned, nil).Passed)
	assert.True(t, checkCategoriesABC(cleaned, nil).Passed)

	// raw categories still carry whitespace and case noise
	assert.False(t, checkCategoriesABC(mustDownload(t), nil).Passed)
}

func TestRegistration(t *testing.T) {
	reg := Registration()
	assert.Equal(t, "demo", reg.Meta.Name)
	require.NotNil(t, reg.New)
	assert.Len(t, reg.Checks, 2)
	assert.Contains(t, reg.Checks, "expected_columns")
	assert.Contains(t, reg.Checks, "categories_abc")
}

func TestDateContinuity(t *testing.T) {
	c := &Cleaner{}
	ctx := context.Background()
	raw, err := c.DownloadFrame(ctx)
	require.NoError(t, err)
	cleaned, err := c.CleanFrame(ctx, raw)
	require.NoError(t, err)

	out := check.DateContinuity(cleaned, map[string]any{"column": "date"})
	assert.True(t, out.Passed)
}

func mustDownload(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := (&Cleaner{}).DownloadFrame(context.Background())
	require.NoError(t, err)
	return f
}
