// Package registry holds the set of known cleaners. Cleaners register
// explicitly from the composition root in ordered sources; the registry is
// built once and read-only afterwards.
package registry

import (
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/wdm0006/custodian/pkg/check"
	"github.com/wdm0006/custodian/pkg/cleaner"
)

var (
	// ErrNotFound reports an unknown cleaner name.
	ErrNotFound = errors.New("cleaner not found")
	// ErrUnavailable reports a known cleaner whose external requirements
	// are missing from the environment.
	ErrUnavailable = errors.New("cleaner unavailable")
)

// Registration binds a cleaner constructor to its metadata and any custom
// checks shipped alongside the implementation.
type Registration struct {
	Meta   cleaner.Metadata
	New    func() cleaner.Cleaner
	Checks map[string]check.Func
}

// Source is an ordered batch of registrations. A later source's entry
// shadows an earlier source's entry of the same name, so an external
// source can override a built-in cleaner.
type Source struct {
	Name          string
	Registrations []Registration
}

// Failure records one registration that was rejected during construction.
// A bad registration never aborts construction of the rest.
type Failure struct {
	Name   string
	Source string
	Reason string
}

// baselineTools are assumed present in any environment we run in and are
// never reported as missing requirements.
var baselineTools = map[string]struct{}{
	"sh": {}, "env": {}, "cp": {}, "mv": {},
}

type entry struct {
	reg     Registration
	source  string
	missing []string // unmet external requirements
}

type Registry struct {
	entries  map[string]entry
	failures []Failure
	log      *zap.SugaredLogger
}

// Options tunes registry construction. LookPath defaults to exec.LookPath
// and exists so tests can fake tool availability.
type Options struct {
	Log      *zap.SugaredLogger
	LookPath func(string) (string, error)
}

func New(log *zap.SugaredLogger, sources ...Source) *Registry {
	return NewWith(Options{Log: log}, sources...)
}

func NewWith(opts Options, sources ...Source) *Registry {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	lookPath := opts.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	r := &Registry{entries: make(map[string]entry), log: log}
	for _, src := range sources {
		for _, reg := range src.Registrations {
			name := reg.Meta.Name
			if name == "" {
				r.reject(Failure{Source: src.Name, Reason: "registration without a name"})
				continue
			}
			if reg.New == nil {
				r.reject(Failure{Name: name, Source: src.Name, Reason: "registration without a constructor"})
				continue
			}
			caps := cleaner.Probe(reg.New())
			if !caps.Runnable() {
				r.reject(Failure{
					Name:   name,
					Source: src.Name,
					Reason: fmt.Sprintf("not runnable: needs at least one download and one clean operation (got %+v)", caps),
				})
				continue
			}
			var missing []string
			for _, tool := range reg.Meta.Requires {
				if _, ok := baselineTools[tool]; ok {
					continue
				}
				if _, err := lookPath(tool); err != nil {
					missing = append(missing, tool)
				}
			}
			if prev, ok := r.entries[name]; ok {
				log.Infow("cleaner shadowed", "cleaner", name, "old_source", prev.source, "new_source", src.Name)
			}
			r.entries[name] = entry{reg: reg, source: src.Name, missing: missing}
		}
	}
	return r
}

func (r *Registry) reject(f Failure) {
	r.failures = append(r.failures, f)
	r.log.Warnw("cleaner registration rejected", "cleaner", f.Name, "source", f.Source, "reason", f.Reason)
}

// Names lists registered cleaners, sorted. Cleaners with unmet external
// requirements are excluded unless includeUnavailable is set.
func (r *Registry) Names(includeUnavailable bool) []string {
	names := make([]string, 0, len(r.entries))
	for name, e := range r.entries {
		if len(e.missing) > 0 && !includeUnavailable {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get resolves a cleaner by name. An unknown name fails with ErrNotFound
// carrying the currently available names; a gated cleaner fails with
// ErrUnavailable naming the missing tools and how to remedy them.
func (r *Registry) Get(name string) (Registration, error) {
	e, ok := r.entries[name]
	if !ok {
		return Registration{}, errors.Wrapf(ErrNotFound,
			"%q (available: %s)", name, strings.Join(r.Names(true), ", "))
	}
	if len(e.missing) > 0 {
		err := errors.Wrapf(ErrUnavailable,
			"%q requires missing tools: %s", name, strings.Join(e.missing, ", "))
		return Registration{}, errors.WithHintf(err,
			"install them first, e.g.: apt-get install %s", strings.Join(e.missing, " "))
	}
	return e.reg, nil
}

// Describe returns a cleaner's declared metadata.
func (r *Registry) Describe(name string) (cleaner.Metadata, error) {
	e, ok := r.entries[name]
	if !ok {
		return cleaner.Metadata{}, errors.Wrapf(ErrNotFound,
			"%q (available: %s)", name, strings.Join(r.Names(true), ", "))
	}
	return e.reg.Meta, nil
}

// MissingRequirements reports unmet external requirements for a cleaner,
// empty for available or unknown names.
func (r *Registry) MissingRequirements(name string) []string {
	return r.entries[name].missing
}

// Failures lists registrations rejected during construction.
func (r *Registry) Failures() []Failure {
	return r.failures
}
