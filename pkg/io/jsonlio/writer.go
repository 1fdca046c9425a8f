// Package jsonlio persists Frames as newline-delimited JSON.
package jsonlio

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/wdm0006/custodian/pkg/frame"
)

// WriteAll writes one JSON object per row, omitting null cells.
func WriteAll(path string, f *frame.Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	w := bufio.NewWriter(out)
	enc := json.NewEncoder(w)
	for r := 0; r < f.Rows(); r++ {
		m := make(map[string]any, f.Cols())
		for _, cs := range f.Schema().Columns {
			col, _ := f.ColumnByName(cs.Name)
			switch c := col.(type) {
			case *frame.FloatColumn:
				if v, ok := c.Get(r); ok {
					m[cs.Name] = v
				}
			case *frame.IntColumn:
				if v, ok := c.Get(r); ok {
					m[cs.Name] = v
				}
			case *frame.BoolColumn:
				if v, ok := c.Get(r); ok {
					m[cs.Name] = v
				}
			case *frame.TimeColumn:
				if v, ok := c.Get(r); ok {
					m[cs.Name] = v
				}
			case *frame.StringColumn:
				if v, ok := c.Get(r); ok {
					m[cs.Name] = v
				}
			}
		}
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return w.Flush()
}
