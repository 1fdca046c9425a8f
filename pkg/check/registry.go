package check

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// ErrDuplicate marks a second registration of the same check name. Two
// definitions silently shadowing each other is a configuration defect, so
// it surfaces at registration time instead of last-wins.
var ErrDuplicate = errors.New("check already registered")

// Registry is a name -> check function table. It is populated once at the
// composition root and read-only afterwards; no registration happens after
// construction.
type Registry struct {
	checks map[string]Func
}

func NewRegistry() *Registry {
	return &Registry{checks: make(map[string]Func)}
}

func (r *Registry) Register(name string, fn Func) error {
	if _, ok := r.checks[name]; ok {
		return errors.Wrapf(ErrDuplicate, "%s", name)
	}
	r.checks[name] = fn
	return nil
}

func (r *Registry) Get(name string) (Func, bool) {
	fn, ok := r.checks[name]
	return fn, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string]Outcome) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
