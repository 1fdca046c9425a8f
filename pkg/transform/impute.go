package transform

import (
	"context"

	"github.com/wdm0006/custodian/pkg/frame"
)

type ImputeConstant struct {
	Column string
	// coerced per column kind
	Value any
}

func (t *ImputeConstant) Name() string { return "impute_constant" }

func (t *ImputeConstant) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	switch c := col.(type) {
	case *frame.FloatColumn:
		var vv float64
		switch v := t.Value.(type) {
		case int:
			vv = float64(v)
		case int64:
			vv = float64(v)
		case float64:
			vv = v
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, vv)
			}
		}
	case *frame.IntColumn:
		var vv int64
		switch v := t.Value.(type) {
		case int:
			vv = int64(v)
		case int64:
			vv = v
		case float64:
			vv = int64(v)
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, vv)
			}
		}
	case *frame.StringColumn:
		vv, _ := t.Value.(string)
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, vv)
			}
		}
	case *frame.BoolColumn:
		vv, _ := t.Value.(bool)
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, vv)
			}
		}
	}
	return f, nil
}

type ImputeMean struct{ Column string }

func (t *ImputeMean) Name() string { return "impute_mean" }

func (t *ImputeMean) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	switch c := col.(type) {
	case *frame.FloatColumn:
		var sum float64
		var n int
		for i := 0; i < c.Len(); i++ {
			if !c.IsNull(i) {
				v, _ := c.Get(i)
				sum += v
				n++
			}
		}
		if n == 0 {
			return f, nil
		}
		mean := sum / float64(n)
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, mean)
			}
		}
	case *frame.IntColumn:
		var sum int64
		var n int
		for i := 0; i < c.Len(); i++ {
			if !c.IsNull(i) {
				v, _ := c.Get(i)
				sum += v
				n++
			}
		}
		if n == 0 {
			return f, nil
		}
		mean := float64(sum) / float64(n)
		// round to nearest
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, int64(mean+0.5))
			}
		}
	}
	return f, nil
}
