package check

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/wdm0006/custodian/pkg/frame"
)

// suiteEntry is one always-on standard check.
type suiteEntry struct {
	Name     string
	Type     string
	Params   map[string]any
	Severity Severity
}

// standardSuite runs against every cleaner's output regardless of
// configuration. duplicate_rows and data_types are warnings: noisy source
// data should not block persistence on its own.
var standardSuite = []suiteEntry{
	{Name: "not_empty", Type: "not_empty", Severity: SeverityError},
	{Name: "no_null_columns", Type: "no_null_columns", Severity: SeverityError},
	{Name: "duplicate_rows", Type: "duplicate_rows", Params: map[string]any{"threshold": 1.0}, Severity: SeverityWarning},
	{Name: "data_types", Type: "data_types", Severity: SeverityWarning},
}

// Options selects which checks a run executes.
type Options struct {
	SkipStandard bool
	SkipCustom   bool
	// Subset, when non-empty, keeps only checks whose name matches one of
	// the entries (exact or suffix match on the bare name).
	Subset []string
}

// Runner executes checks against a dataset. It holds no per-run state, so
// running the same dataset twice yields identical reports.
type Runner struct {
	reg *Registry
	log *zap.SugaredLogger
}

func NewRunner(reg *Registry, log *zap.SugaredLogger) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{reg: reg, log: log}
}

// Run executes the standard suite, the per-cleaner custom checks, and any
// spec-driven entries against f. Custom checks are reported under the
// "custom." namespace so they can never shadow a standard check name.
func (r *Runner) Run(f *frame.Frame, custom map[string]Func, spec *Spec, opts Options) Report {
	report := Report{
		Passed:   true,
		Standard: make(map[string]Outcome),
		Custom:   make(map[string]Outcome),
	}

	if !opts.SkipStandard {
		for _, e := range standardSuite {
			if !selected(e.Name, opts.Subset) {
				continue
			}
			fn, ok := r.reg.Get(e.Type)
			if !ok {
				r.log.Warnw("standard check missing from registry", "check", e.Type)
				continue
			}
			out := r.invoke(f, e.Name, fn, e.Params, e.Severity)
			report.record(report.Standard, out)
			r.logOutcome(out)
		}
	}

	if !opts.SkipCustom {
		for _, name := range sortedFuncKeys(custom) {
			qual := "custom." + name
			if !selected(name, opts.Subset) {
				continue
			}
			out := r.invoke(f, qual, custom[name], nil, SeverityError)
			report.record(report.Custom, out)
			r.logOutcome(out)
		}
		if spec != nil {
			for _, name := range sortedSpecKeys(spec.Tests) {
				if !selected(name, opts.Subset) {
					continue
				}
				e := spec.Tests[name]
				sev := e.Severity
				if sev == "" {
					sev = SeverityError
				}
				fn, ok := r.reg.Get(e.Type)
				if !ok {
					out := Outcome{
						Name:     name,
						Passed:   false,
						Message:  fmt.Sprintf("unknown check type %q", e.Type),
						Severity: SeverityError,
						Details:  map[string]any{},
					}
					report.record(report.Custom, out)
					r.logOutcome(out)
					continue
				}
				out := r.invoke(f, name, fn, e.Params, sev)
				report.record(report.Custom, out)
				r.logOutcome(out)
			}
		}
	}

	r.log.Infow("check run complete",
		"total", report.Total, "passed", report.PassedCount, "failed", report.FailedCount)
	return report
}

// invoke runs one check with crash isolation: a panicking check yields a
// single failed error-severity outcome and the run continues.
func (r *Runner) invoke(f *frame.Frame, name string, fn Func, params map[string]any, sev Severity) (out Outcome) {
	defer func() {
		if p := recover(); p != nil {
			out = Outcome{
				Name:     name,
				Passed:   false,
				Message:  fmt.Sprintf("check crashed: %v", p),
				Severity: SeverityError,
				Details:  map[string]any{"error": fmt.Sprint(p)},
			}
		}
	}()
	out = fn(f, params)
	out.Name = name
	out.Severity = sev
	if out.Details == nil {
		out.Details = map[string]any{}
	}
	return out
}

func (r *Runner) logOutcome(o Outcome) {
	if o.Passed {
		r.log.Debugw("check passed", "check", o.Name)
		return
	}
	if o.Severity == SeverityWarning {
		r.log.Warnw("check failed", "check", o.Name, "message", o.Message)
		return
	}
	r.log.Errorw("check failed", "check", o.Name, "message", o.Message)
}

func selected(name string, subset []string) bool {
	if len(subset) == 0 {
		return true
	}
	for _, s := range subset {
		if name == s || strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

func sortedFuncKeys(m map[string]Func) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSpecKeys(m map[string]SpecEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
