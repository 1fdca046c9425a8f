package check

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/wdm0006/custodian/pkg/frame"
)

// numericValues extracts the non-null values of a numeric column as
// float64s. ok is false when the column is missing or not numeric.
func numericValues(f *frame.Frame, name string) ([]float64, bool) {
	col, found := f.ColumnByName(name)
	if !found {
		return nil, false
	}
	var out []float64
	switch c := col.(type) {
	case *frame.FloatColumn:
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				out = append(out, v)
			}
		}
	case *frame.IntColumn:
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				out = append(out, float64(v))
			}
		}
	default:
		return nil, false
	}
	return out, true
}

// OutliersZScore fails when more than "max_percentage" percent of the
// "column" param's values sit further than "threshold" standard deviations
// from the mean. A column with no variation passes.
func OutliersZScore(f *frame.Frame, params map[string]any) Outcome {
	column := stringParam(params, "column")
	threshold := floatParam(params, "threshold", 3)
	maxPct := floatParam(params, "max_percentage", 5)

	data, ok := numericValues(f, column)
	if !ok {
		return Outcome{Passed: false, Message: fmt.Sprintf("column %q missing or not numeric", column), Details: map[string]any{}}
	}
	if len(data) == 0 {
		return Outcome{Passed: true, Message: fmt.Sprintf("column %q has no values", column), Details: map[string]any{}}
	}
	mean := stat.Mean(data, nil)
	std := stat.StdDev(data, nil)
	if std == 0 {
		return Outcome{
			Passed:  true,
			Message: fmt.Sprintf("column %q has no variation (std=0)", column),
			Details: map[string]any{"std": 0.0},
		}
	}
	outliers := 0
	for _, v := range data {
		z := (v - mean) / std
		if z < 0 {
			z = -z
		}
		if z > threshold {
			outliers++
		}
	}
	pct := float64(outliers) / float64(len(data)) * 100
	return Outcome{
		Passed:  pct <= maxPct,
		Message: fmt.Sprintf("column %q has %d outliers (%.1f%% beyond %.3g std devs)", column, outliers, pct, threshold),
		Details: map[string]any{
			"outlier_count":          outliers,
			"outlier_percentage":     pct,
			"threshold":              threshold,
			"max_allowed_percentage": maxPct,
		},
	}
}

// Correlation computes the Pearson correlation of "column1" and "column2"
// over rows where both are present and fails when it falls outside the
// optional [min_correlation, max_correlation] bounds.
func Correlation(f *frame.Frame, params map[string]any) Outcome {
	name1 := stringParam(params, "column1")
	name2 := stringParam(params, "column2")
	x, y, ok := pairedValues(f, name1, name2)
	if !ok {
		return Outcome{Passed: false, Message: fmt.Sprintf("columns %q, %q must both be numeric", name1, name2), Details: map[string]any{}}
	}
	if len(x) < 2 {
		return Outcome{Passed: false, Message: fmt.Sprintf("not enough paired values in %q, %q", name1, name2), Details: map[string]any{"pair_count": len(x)}}
	}
	corr := stat.Correlation(x, y, nil)

	minCorr, hasMin := lookupFloat(params, "min_correlation")
	maxCorr, hasMax := lookupFloat(params, "max_correlation")
	passed := true
	var reasons []string
	if hasMin && corr < minCorr {
		passed = false
		reasons = append(reasons, fmt.Sprintf("correlation %.3f < minimum %.3g", corr, minCorr))
	}
	if hasMax && corr > maxCorr {
		passed = false
		reasons = append(reasons, fmt.Sprintf("correlation %.3f > maximum %.3g", corr, maxCorr))
	}
	msg := fmt.Sprintf("correlation between %q and %q is %.3f", name1, name2, corr)
	if len(reasons) > 0 {
		msg += " (" + strings.Join(reasons, "; ") + ")"
	}
	return Outcome{
		Passed:  passed,
		Message: msg,
		Details: map[string]any{"correlation": corr},
	}
}

// pairedValues collects rows where both numeric columns are non-null.
func pairedValues(f *frame.Frame, name1, name2 string) (x, y []float64, ok bool) {
	get := func(name string) (func(i int) (float64, bool), bool) {
		col, found := f.ColumnByName(name)
		if !found {
			return nil, false
		}
		switch c := col.(type) {
		case *frame.FloatColumn:
			return c.Get, true
		case *frame.IntColumn:
			return func(i int) (float64, bool) {
				v, ok := c.Get(i)
				return float64(v), ok
			}, true
		}
		return nil, false
	}
	g1, ok1 := get(name1)
	g2, ok2 := get(name2)
	if !ok1 || !ok2 {
		return nil, nil, false
	}
	for i := 0; i < f.Rows(); i++ {
		v1, p1 := g1(i)
		v2, p2 := g2(i)
		if p1 && p2 {
			x = append(x, v1)
			y = append(y, v2)
		}
	}
	return x, y, true
}

// DistributionNormal runs a Jarque-Bera normality test on the "column"
// param and fails when the null hypothesis of normality is rejected at the
// "alpha" level (default 0.05).
func DistributionNormal(f *frame.Frame, params map[string]any) Outcome {
	column := stringParam(params, "column")
	alpha := floatParam(params, "alpha", 0.05)

	data, ok := numericValues(f, column)
	if !ok {
		return Outcome{Passed: false, Message: fmt.Sprintf("column %q missing or not numeric", column), Details: map[string]any{}}
	}
	if len(data) < 3 {
		return Outcome{
			Passed:  false,
			Message: fmt.Sprintf("not enough data in %q for normality test", column),
			Details: map[string]any{"sample_size": len(data)},
		}
	}
	skew := stat.Skew(data, nil)
	kurt := stat.ExKurtosis(data, nil)
	n := float64(len(data))
	jb := n / 6 * (skew*skew + kurt*kurt/4)
	pValue := distuv.ChiSquared{K: 2}.Survival(jb)

	verdict := "appears"
	if pValue <= alpha {
		verdict = "does not appear"
	}
	return Outcome{
		Passed:  pValue > alpha,
		Message: fmt.Sprintf("column %q %s normally distributed (p=%.4f)", column, verdict, pValue),
		Details: map[string]any{
			"p_value":     pValue,
			"statistic":   jb,
			"alpha":       alpha,
			"sample_size": len(data),
		},
	}
}

// StringColumnsTrimmed fails when a string column carries leading or
// trailing whitespace, sampling the first 100 non-null values per column.
func StringColumnsTrimmed(f *frame.Frame, _ map[string]any) Outcome {
	const sampleSize = 100
	var issues []string
	for _, cs := range f.Schema().Columns {
		col, _ := f.ColumnByName(cs.Name)
		sc, ok := col.(*frame.StringColumn)
		if !ok {
			continue
		}
		seen := 0
		for i := 0; i < sc.Len() && seen < sampleSize; i++ {
			v, present := sc.Get(i)
			if !present {
				continue
			}
			seen++
			if v != strings.TrimSpace(v) {
				issues = append(issues, fmt.Sprintf("column %q has untrimmed values", cs.Name))
				break
			}
		}
	}
	msg := "all string columns properly trimmed"
	if len(issues) > 0 {
		msg = strings.Join(issues, "; ")
	}
	return Outcome{
		Passed:  len(issues) == 0,
		Message: msg,
		Details: map[string]any{"columns_with_whitespace": issues},
	}
}

// ReasonableNullPercentage fails when any column is more than 95% null.
func ReasonableNullPercentage(f *frame.Frame, _ map[string]any) Outcome {
	const thresholdPct = 95.0
	highNull := map[string]float64{}
	if f.Rows() > 0 {
		for _, cs := range f.Schema().Columns {
			pct := float64(f.NullCount(cs.Name)) / float64(f.Rows()) * 100
			if pct > thresholdPct {
				highNull[cs.Name] = pct
			}
		}
	}
	msg := "no excessively null columns"
	if len(highNull) > 0 {
		names := make([]string, 0, len(highNull))
		for name := range highNull {
			names = append(names, name)
		}
		sort.Strings(names)
		msg = fmt.Sprintf("columns over %.0f%% null: %s", thresholdPct, strings.Join(names, ", "))
	}
	return Outcome{
		Passed:  len(highNull) == 0,
		Message: msg,
		Details: map[string]any{"high_null_columns": highNull, "threshold_percent": thresholdPct},
	}
}
