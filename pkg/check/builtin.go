package check

import (
	"fmt"
	"sort"
	"strings"
	"time"

	gladapter "github.com/wdm0006/custodian/adapters/golearn"
	"github.com/wdm0006/custodian/pkg/frame"
	"github.com/wdm0006/custodian/pkg/profile"
)

// Builtins returns a registry populated with every built-in check. Called
// once from the composition root; the result is treated as read-only.
func Builtins() *Registry {
	r := NewRegistry()
	for name, fn := range map[string]Func{
		"not_empty":                  NotEmpty,
		"no_null_columns":            NoNullColumns,
		"duplicate_rows":             DuplicateRows,
		"data_types":                 DataTypes,
		"no_nulls":                   NoNulls,
		"unique_keys":                UniqueKeys,
		"value_range":                ValueRange,
		"allowed_values":             AllowedValues,
		"date_continuity":            DateContinuity,
		"column_names":               ColumnNames,
		"ml_ready":                   MLReady,
		"outliers_zscore":            OutliersZScore,
		"correlation":                Correlation,
		"distribution_normal":        DistributionNormal,
		"string_columns_trimmed":     StringColumnsTrimmed,
		"reasonable_null_percentage": ReasonableNullPercentage,
	} {
		// names are distinct by construction
		_ = r.Register(name, fn)
	}
	return r
}

// NotEmpty fails on a dataset with zero rows or zero columns.
func NotEmpty(f *frame.Frame, _ map[string]any) Outcome {
	passed := f.Rows() > 0 && f.Cols() > 0
	return Outcome{
		Passed:  passed,
		Message: fmt.Sprintf("dataset has %d rows, %d columns", f.Rows(), f.Cols()),
		Details: map[string]any{"row_count": f.Rows(), "column_count": f.Cols()},
	}
}

// NoNullColumns fails if any column is entirely null.
func NoNullColumns(f *frame.Frame, _ map[string]any) Outcome {
	var nullCols []string
	for _, cs := range f.Schema().Columns {
		if f.Rows() > 0 && f.NullCount(cs.Name) == f.Rows() {
			nullCols = append(nullCols, cs.Name)
		}
	}
	msg := "no all-null columns"
	if len(nullCols) > 0 {
		msg = fmt.Sprintf("columns are entirely null: %s", strings.Join(nullCols, ", "))
	}
	return Outcome{
		Passed:  len(nullCols) == 0,
		Message: msg,
		Details: map[string]any{"null_columns": nullCols},
	}
}

// DuplicateRows fails when the duplicate percentage reaches the threshold
// param (percent, default 0: any duplicate fails).
func DuplicateRows(f *frame.Frame, params map[string]any) Outcome {
	threshold := floatParam(params, "threshold", 0)
	seen := make(map[string]struct{}, f.Rows())
	dups := 0
	for i := 0; i < f.Rows(); i++ {
		k := f.RowKey(i)
		if _, ok := seen[k]; ok {
			dups++
			continue
		}
		seen[k] = struct{}{}
	}
	pct := 0.0
	if f.Rows() > 0 {
		pct = float64(dups) / float64(f.Rows()) * 100
	}
	return Outcome{
		Passed:  pct < threshold || dups == 0,
		Message: fmt.Sprintf("found %d duplicate rows (%.1f%%)", dups, pct),
		Details: map[string]any{"duplicate_count": dups, "duplicate_percentage": pct},
	}
}

// DataTypes flags string columns whose values are nearly all numeric,
// a sign the cleaner left a numeric column mistyped.
func DataTypes(f *frame.Frame, _ map[string]any) Outcome {
	var issues []string
	for _, cp := range profile.Collect(f) {
		if cp.Str == nil || cp.Kind != frame.KindString || cp.Str.Count == 0 {
			continue
		}
		if float64(cp.Str.NumericLike)/float64(cp.Str.Count) > 0.9 {
			issues = append(issues, fmt.Sprintf("%s appears numeric but is typed string", cp.Name))
		}
	}
	msg := "no data type issues"
	if len(issues) > 0 {
		msg = strings.Join(issues, "; ")
	}
	return Outcome{
		Passed:  len(issues) == 0,
		Message: msg,
		Details: map[string]any{"issues": issues},
	}
}

// NoNulls fails if any of the columns named by the "columns" param contains
// a null value.
func NoNulls(f *frame.Frame, params map[string]any) Outcome {
	columns := stringsParam(params, "columns")
	nulls := map[string]int{}
	for _, name := range columns {
		if n := f.NullCount(name); n > 0 {
			nulls[name] = n
		}
	}
	msg := "no nulls in required columns"
	if len(nulls) > 0 {
		msg = fmt.Sprintf("null values found in %v", nulls)
	}
	return Outcome{
		Passed:  len(nulls) == 0,
		Message: msg,
		Details: map[string]any{"null_counts": nulls},
	}
}

// UniqueKeys fails if the combination of the "columns" param values repeats.
func UniqueKeys(f *frame.Frame, params map[string]any) Outcome {
	columns := stringsParam(params, "columns")
	seen := make(map[string]struct{}, f.Rows())
	dups := 0
	for i := 0; i < f.Rows(); i++ {
		parts := make([]string, len(columns))
		for j, name := range columns {
			parts[j] = f.CellString(i, name)
		}
		k := strings.Join(parts, "\x1f")
		if _, ok := seen[k]; ok {
			dups++
			continue
		}
		seen[k] = struct{}{}
	}
	return Outcome{
		Passed:  dups == 0,
		Message: fmt.Sprintf("found %d duplicate key combinations in %v", dups, columns),
		Details: map[string]any{"duplicate_count": dups, "columns": columns},
	}
}

// ValueRange fails when values of the "column" param fall outside
// [min, max]; either bound may be omitted.
func ValueRange(f *frame.Frame, params map[string]any) Outcome {
	column := stringParam(params, "column")
	col, ok := f.ColumnByName(column)
	if !ok {
		return Outcome{Passed: false, Message: fmt.Sprintf("unknown column %q", column), Details: map[string]any{}}
	}
	min, hasMin := lookupFloat(params, "min")
	max, hasMax := lookupFloat(params, "max")
	bad := 0
	get := func(i int) (float64, bool) {
		switch c := col.(type) {
		case *frame.FloatColumn:
			return c.Get(i)
		case *frame.IntColumn:
			v, ok := c.Get(i)
			return float64(v), ok
		}
		return 0, false
	}
	for i := 0; i < col.Len(); i++ {
		v, ok := get(i)
		if !ok {
			continue
		}
		if (hasMin && v < min) || (hasMax && v > max) {
			bad++
		}
	}
	return Outcome{
		Passed:  bad == 0,
		Message: fmt.Sprintf("%d values in %q outside range", bad, column),
		Details: map[string]any{"out_of_range_count": bad, "column": column},
	}
}

// AllowedValues fails when the "column" param contains values outside the
// "values" param list.
func AllowedValues(f *frame.Frame, params map[string]any) Outcome {
	column := stringParam(params, "column")
	allowed := make(map[string]struct{})
	for _, v := range stringsParam(params, "values") {
		allowed[v] = struct{}{}
	}
	col, ok := f.ColumnByName(column)
	if !ok {
		return Outcome{Passed: false, Message: fmt.Sprintf("unknown column %q", column), Details: map[string]any{}}
	}
	invalid := make(map[string]struct{})
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			continue
		}
		v := f.CellString(i, column)
		if _, ok := allowed[v]; !ok {
			invalid[v] = struct{}{}
		}
	}
	var bad []string
	for v := range invalid {
		bad = append(bad, v)
	}
	sort.Strings(bad)
	msg := fmt.Sprintf("all values in %q allowed", column)
	if len(bad) > 0 {
		msg = fmt.Sprintf("invalid values in %q: %s", column, strings.Join(bad, ", "))
	}
	return Outcome{
		Passed:  len(bad) == 0,
		Message: msg,
		Details: map[string]any{"invalid_values": bad},
	}
}

// DateContinuity fails when a daily time series in the "column" param has
// gaps between its first and last day.
func DateContinuity(f *frame.Frame, params map[string]any) Outcome {
	column := stringParam(params, "column")
	col, ok := f.ColumnByName(column)
	if !ok {
		return Outcome{Passed: false, Message: fmt.Sprintf("unknown column %q", column), Details: map[string]any{}}
	}
	tc, ok := col.(*frame.TimeColumn)
	if !ok {
		return Outcome{Passed: false, Message: fmt.Sprintf("column %q is not a time column", column), Details: map[string]any{}}
	}
	days := make(map[time.Time]struct{})
	var lo, hi time.Time
	for i := 0; i < tc.Len(); i++ {
		v, ok := tc.Get(i)
		if !ok {
			continue
		}
		d := v.UTC().Truncate(24 * time.Hour)
		days[d] = struct{}{}
		if lo.IsZero() || d.Before(lo) {
			lo = d
		}
		if hi.IsZero() || d.After(hi) {
			hi = d
		}
	}
	missing := 0
	for d := lo; !d.After(hi) && !lo.IsZero(); d = d.Add(24 * time.Hour) {
		if _, ok := days[d]; !ok {
			missing++
		}
	}
	return Outcome{
		Passed:  missing == 0,
		Message: fmt.Sprintf("found %d missing days in %q", missing, column),
		Details: map[string]any{"missing_count": missing},
	}
}

// ColumnNames fails on column names with spaces or characters outside
// [a-zA-Z0-9_].
func ColumnNames(f *frame.Frame, _ map[string]any) Outcome {
	var issues []string
	for _, cs := range f.Schema().Columns {
		if strings.ContainsRune(cs.Name, ' ') {
			issues = append(issues, fmt.Sprintf("column %q contains spaces", cs.Name))
			continue
		}
		for _, r := range cs.Name {
			if r != '_' && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9') {
				issues = append(issues, fmt.Sprintf("column %q contains special characters", cs.Name))
				break
			}
		}
	}
	msg := "all column names valid"
	if len(issues) > 0 {
		msg = strings.Join(issues, "; ")
	}
	return Outcome{
		Passed:  len(issues) == 0,
		Message: msg,
		Details: map[string]any{"issues": issues},
	}
}

// MLReady verifies the dataset converts cleanly into golearn instances,
// i.e. downstream model tooling can consume it as-is.
func MLReady(f *frame.Frame, _ map[string]any) Outcome {
	if f.Rows() == 0 || f.Cols() == 0 {
		return Outcome{Passed: false, Message: "empty dataset cannot be converted", Details: map[string]any{}}
	}
	if _, err := gladapter.ToDenseInstances(f); err != nil {
		return Outcome{
			Passed:  false,
			Message: "conversion to instances failed",
			Details: map[string]any{"error": err.Error()},
		}
	}
	return Outcome{Passed: true, Message: "dataset converts to ML instances", Details: map[string]any{}}
}

func floatParam(params map[string]any, key string, def float64) float64 {
	if v, ok := lookupFloat(params, key); ok {
		return v
	}
	return def
}

func lookupFloat(params map[string]any, key string) (float64, bool) {
	if params == nil {
		return 0, false
	}
	switch v := params[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func stringParam(params map[string]any, key string) string {
	if params == nil {
		return ""
	}
	s, _ := params[key].(string)
	return s
}

func stringsParam(params map[string]any, key string) []string {
	if params == nil {
		return nil
	}
	switch v := params[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, fmt.Sprint(e))
		}
		return out
	}
	return nil
}
