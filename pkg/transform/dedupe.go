package transform

import (
	"context"

	"github.com/wdm0006/custodian/pkg/frame"
)

// DropDuplicates keeps the first occurrence of each distinct row.
type DropDuplicates struct{}

func (t *DropDuplicates) Name() string { return "drop_duplicates" }

func (t *DropDuplicates) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	out := frame.New(f.Schema())
	seen := make(map[string]struct{}, f.Rows())
	for i := 0; i < f.Rows(); i++ {
		k := f.RowKey(i)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out.AppendRowFrom(f, i)
	}
	return out, nil
}
