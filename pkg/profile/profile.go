// Package profile computes per-column statistics over a cleaned frame.
// The run summary printed after a successful clean and the data_types
// check both feed off these stats.
package profile

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/wdm0006/custodian/pkg/frame"
)

type NumStats struct {
	Count int
	Nulls int
	Min   float64
	Max   float64
	Sum   float64
}

func (s NumStats) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

type BoolStats struct {
	Count int
	Nulls int
	True  int
	False int
}

type StringStats struct {
	Count int
	Nulls int
	// NumericLike counts non-null values that parse as numbers. A string
	// column where nearly every value is numeric-looking was probably
	// mistyped during cleaning.
	NumericLike int
	Freqs       map[string]int
}

type ColumnProfile struct {
	Name string
	Kind frame.Kind
	Num  *NumStats
	Bool *BoolStats
	Str  *StringStats
}

var numericRe = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

// Collect walks every column of f once and returns its profile.
func Collect(f *frame.Frame) []ColumnProfile {
	cols := make([]ColumnProfile, 0, f.Cols())
	for _, cs := range f.Schema().Columns {
		cp := ColumnProfile{Name: cs.Name, Kind: cs.Type}
		col, _ := f.ColumnByName(cs.Name)
		switch c := col.(type) {
		case *frame.FloatColumn:
			st := &NumStats{Min: math.Inf(1), Max: math.Inf(-1)}
			for i := 0; i < c.Len(); i++ {
				if c.IsNull(i) {
					st.Nulls++
					continue
				}
				v, _ := c.Get(i)
				st.Count++
				st.Sum += v
				if v < st.Min {
					st.Min = v
				}
				if v > st.Max {
					st.Max = v
				}
			}
			cp.Num = st
		case *frame.IntColumn:
			st := &NumStats{Min: math.Inf(1), Max: math.Inf(-1)}
			for i := 0; i < c.Len(); i++ {
				if c.IsNull(i) {
					st.Nulls++
					continue
				}
				v, _ := c.Get(i)
				fv := float64(v)
				st.Count++
				st.Sum += fv
				if fv < st.Min {
					st.Min = fv
				}
				if fv > st.Max {
					st.Max = fv
				}
			}
			cp.Num = st
		case *frame.BoolColumn:
			st := &BoolStats{}
			for i := 0; i < c.Len(); i++ {
				if c.IsNull(i) {
					st.Nulls++
					continue
				}
				v, _ := c.Get(i)
				st.Count++
				if v {
					st.True++
				} else {
					st.False++
				}
			}
			cp.Bool = st
		case *frame.StringColumn:
			st := &StringStats{Freqs: make(map[string]int)}
			for i := 0; i < c.Len(); i++ {
				if c.IsNull(i) {
					st.Nulls++
					continue
				}
				v, _ := c.Get(i)
				st.Count++
				st.Freqs[v]++
				if numericRe.MatchString(strings.TrimSpace(v)) {
					st.NumericLike++
				}
			}
			cp.Str = st
		case *frame.TimeColumn:
			st := &StringStats{Freqs: make(map[string]int)}
			for i := 0; i < c.Len(); i++ {
				if c.IsNull(i) {
					st.Nulls++
					continue
				}
				st.Count++
			}
			cp.Str = st
		}
		cols = append(cols, cp)
	}
	return cols
}

// Summary renders one line per column for console output.
func Summary(cols []ColumnProfile) string {
	var b strings.Builder
	for _, cp := range cols {
		fmt.Fprintf(&b, "  %s (%s): ", cp.Name, cp.Kind)
		switch {
		case cp.Num != nil:
			fmt.Fprintf(&b, "count=%d nulls=%d min=%.6g max=%.6g mean=%.6g\n",
				cp.Num.Count, cp.Num.Nulls, cp.Num.Min, cp.Num.Max, cp.Num.Mean())
		case cp.Bool != nil:
			fmt.Fprintf(&b, "count=%d nulls=%d true=%d false=%d\n",
				cp.Bool.Count, cp.Bool.Nulls, cp.Bool.True, cp.Bool.False)
		case cp.Str != nil:
			fmt.Fprintf(&b, "count=%d nulls=%d distinct=%d\n",
				cp.Str.Count, cp.Str.Nulls, len(cp.Str.Freqs))
		default:
			b.WriteString("empty\n")
		}
	}
	return b.String()
}
