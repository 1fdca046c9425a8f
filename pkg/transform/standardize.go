package transform

import (
	"context"
	"strings"

	"github.com/wdm0006/custodian/pkg/frame"
)

type Trim struct{ Column string }

func (t *Trim) Name() string { return "trim" }

func (t *Trim) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	if c, ok := col.(*frame.StringColumn); ok {
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				continue
			}
			v, _ := c.Get(i)
			c.Set(i, strings.TrimSpace(v))
		}
	}
	return f, nil
}

type Lower struct{ Column string }

func (t *Lower) Name() string { return "lower" }

func (t *Lower) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	if c, ok := col.(*frame.StringColumn); ok {
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				continue
			}
			v, _ := c.Get(i)
			c.Set(i, strings.ToLower(v))
		}
	}
	return f, nil
}

type Upper struct{ Column string }

func (t *Upper) Name() string { return "upper" }

func (t *Upper) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	if c, ok := col.(*frame.StringColumn); ok {
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				continue
			}
			v, _ := c.Get(i)
			c.Set(i, strings.ToUpper(v))
		}
	}
	return f, nil
}
