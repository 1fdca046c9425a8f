// Package golearn converts a cleaned custodian Frame into
// github.com/sjwhitworth/golearn/base DenseInstances so downstream ML
// tooling can consume pipeline output directly. The ml_ready check uses
// this conversion to prove a dataset is model-consumable.
package golearn

import (
	"github.com/sjwhitworth/golearn/base"

	"github.com/wdm0006/custodian/pkg/frame"
)

// ToDenseInstances converts a Frame into golearn DenseInstances. Numeric
// columns map to float attributes, everything else to categorical. Null
// cells are left at the attribute's zero value.
func ToDenseInstances(f *frame.Frame) (*base.DenseInstances, error) {
	attrs := make([]base.Attribute, len(f.Schema().Columns))
	for i, cs := range f.Schema().Columns {
		switch cs.Type {
		case frame.KindFloat, frame.KindInt:
			attrs[i] = base.NewFloatAttribute(cs.Name)
		default:
			ca := new(base.CategoricalAttribute)
			ca.SetName(cs.Name)
			attrs[i] = ca
		}
	}
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}

	for r := 0; r < f.Rows(); r++ {
		for c, cs := range f.Schema().Columns {
			col, _ := f.ColumnByName(cs.Name)
			switch cs.Type {
			case frame.KindFloat:
				if v, ok := col.(*frame.FloatColumn).Get(r); ok {
					inst.Set(specs[c], r, base.PackFloatToBytes(v))
				}
			case frame.KindInt:
				if v, ok := col.(*frame.IntColumn).Get(r); ok {
					inst.Set(specs[c], r, base.PackFloatToBytes(float64(v)))
				}
			default:
				// categorical attributes index by string representation
				v := f.CellString(r, cs.Name)
				if v != "" {
					inst.Set(specs[c], r, attrs[c].GetSysValFromString(v))
				}
			}
		}
	}
	if len(attrs) > 0 {
		if err := inst.AddClassAttribute(attrs[len(attrs)-1]); err != nil {
			return nil, err
		}
	}
	return inst, nil
}
