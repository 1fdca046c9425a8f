// Package demo is the reference cleaner shipped with custodian. It
// fabricates a small noisy dataset in memory and cleans it with the
// transform toolkit, so the full pipeline can be exercised without network
// access.
package demo

import (
	"context"
	"time"

	"github.com/wdm0006/custodian/pkg/check"
	"github.com/wdm0006/custodian/pkg/cleaner"
	"github.com/wdm0006/custodian/pkg/frame"
	"github.com/wdm0006/custodian/pkg/registry"
	"github.com/wdm0006/custodian/pkg/transform"
)

type Cleaner struct{}

func New() cleaner.Cleaner { return &Cleaner{} }

func (c *Cleaner) Metadata() cleaner.Metadata {
	return cleaner.Metadata{
		Name:            "demo",
		Source:          "synthetic",
		Description:     "30 days of synthetic category/value observations with injected noise",
		UpdateFrequency: "daily",
	}
}

// DownloadFrame fabricates the raw data: one row per day per category,
// with whitespace-damaged lowercase categories and occasional missing
// values, the kind of dirt the clean step exists to remove.
func (c *Cleaner) DownloadFrame(ctx context.Context) (*frame.Frame, error) {
	schema := frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "date", Type: frame.KindTime, Nullable: true},
		{Name: "value", Type: frame.KindFloat, Nullable: true},
		{Name: "category", Type: frame.KindString, Nullable: true},
	}}
	f := frame.New(schema)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cats := []string{" a ", "b", " C", "A", " b ", "c"}
	for day := 0; day < 30; day++ {
		for j, cat := range cats {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			f.AppendNullRow()
			row := f.Rows() - 1
			_ = f.SetCell(row, "date", start.AddDate(0, 0, day))
			if (day+j)%11 != 0 { // leave some values missing
				_ = f.SetCell(row, "value", float64(day*10+j)+0.5)
			}
			_ = f.SetCell(row, "category", cat)
		}
	}
	return f, nil
}

func (c *Cleaner) CleanFrame(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	floor := 0.0
	p := transform.NewPipeline().
		Add(&transform.Trim{Column: "category"}).
		Add(&transform.Upper{Column: "category"}).
		Add(&transform.ImputeMean{Column: "value"}).
		Add(&transform.Cap{Column: "value", Min: &floor}).
		Add(&transform.DropDuplicates{})
	return p.Run(ctx, f)
}

func (c *Cleaner) ValidateOutput(f *frame.Frame) bool {
	return f.Rows() > 0 && f.Cols() == 3
}

// Registration wires the cleaner and its custom checks into a registry
// source.
func Registration() registry.Registration {
	return registry.Registration{
		Meta: (&Cleaner{}).Metadata(),
		New:  New,
		Checks: map[string]check.Func{
			"expected_columns": checkExpectedColumns,
			"categories_abc":   checkCategoriesABC,
		},
	}
}
