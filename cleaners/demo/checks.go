package demo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wdm0006/custodian/pkg/check"
	"github.com/wdm0006/custodian/pkg/frame"
)

// checkExpectedColumns verifies the cleaned dataset has exactly the three
// columns this cleaner promises.
func checkExpectedColumns(f *frame.Frame, _ map[string]any) check.Outcome {
	expected := []string{"date", "value", "category"}
	var actual []string
	for _, cs := range f.Schema().Columns {
		actual = append(actual, cs.Name)
	}
	passed := len(actual) == len(expected)
	if passed {
		for i := range expected {
			if actual[i] != expected[i] {
				passed = false
				break
			}
		}
	}
	return check.Outcome{
		Passed:  passed,
		Message: fmt.Sprintf("expected columns %v, got %v", expected, actual),
		Details: map[string]any{"expected": expected, "actual": actual},
	}
}

// checkCategoriesABC verifies categories normalized to exactly A, B, C.
func checkCategoriesABC(f *frame.Frame, _ map[string]any) check.Outcome {
	col, ok := f.ColumnByName("category")
	if !ok {
		return check.Outcome{Passed: false, Message: "category column missing", Details: map[string]any{}}
	}
	sc, ok := col.(*frame.StringColumn)
	if !ok {
		return check.Outcome{Passed: false, Message: "category column is not a string column", Details: map[string]any{}}
	}
	uniq := make(map[string]struct{})
	for i := 0; i < sc.Len(); i++ {
		if v, ok := sc.Get(i); ok {
			uniq[v] = struct{}{}
		}
	}
	var got []string
	for v := range uniq {
		got = append(got, v)
	}
	sort.Strings(got)
	passed := strings.Join(got, ",") == "A,B,C"
	return check.Outcome{
		Passed:  passed,
		Message: fmt.Sprintf("categories are %v", got),
		Details: map[string]any{"actual": got},
	}
}
