package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/wdm0006/custodian/pkg/check"
	"github.com/wdm0006/custodian/pkg/cleaner"
	"github.com/wdm0006/custodian/pkg/pipeline"
	"github.com/wdm0006/custodian/pkg/registry"
)

// batchRegistrations builds three working cleaners and two whose download
// always fails.
func batchRegistrations(t *testing.T) []registry.Registration {
	t.Helper()
	regs := make([]registry.Registration, 0, 5)
	for _, name := range []string{"alpha", "beta", "gamma"} {
		name := name
		regs = append(regs, registration(name, func() cleaner.Cleaner {
			return memCleaner{meta{name: name, calls: &calls{}, t: t}}
		}))
	}
	for _, name := range []string{"broken", "flaky"} {
		name := name
		regs = append(regs, registration(name, func() cleaner.Cleaner {
			return failingDownload{meta{name: name, t: t}}
		}))
	}
	return regs
}

// Five requested, two with failing downloads: the batch returns exactly
// the three survivors.
func TestRunManySequential(t *testing.T) {
	r := newRunner(t, batchRegistrations(t)...)
	names := []string{"alpha", "beta", "gamma", "broken", "flaky"}

	results := r.RunMany(context.Background(), names, false, pipeline.Options{})
	assert.Len(t, results, 3)
	for _, name := range []string{"alpha", "beta", "gamma"} {
		f, ok := results[name]
		assert.True(t, ok, name)
		assert.Equal(t, 3, f.Rows())
	}
	assert.NotContains(t, results, "broken")
	assert.NotContains(t, results, "flaky")
}

func TestRunManyUnknownName(t *testing.T) {
	r := newRunner(t, batchRegistrations(t)...)
	results := r.RunMany(context.Background(), []string{"alpha", "ghost"}, false, pipeline.Options{})
	assert.Len(t, results, 1)
	assert.Contains(t, results, "alpha")
}

func TestRunManyParallel(t *testing.T) {
	r := newRunner(t, batchRegistrations(t)...)
	names := []string{"alpha", "beta", "gamma", "broken", "flaky"}

	results := r.RunMany(context.Background(), names, true, pipeline.Options{})
	assert.Len(t, results, 3)
	assert.Contains(t, results, "alpha")
	assert.Contains(t, results, "beta")
	assert.Contains(t, results, "gamma")
}

func TestRunManyEmpty(t *testing.T) {
	r := newRunner(t)
	assert.Empty(t, r.RunMany(context.Background(), nil, true, pipeline.Options{}))
}

// A zero-value Config must not zero out the worker pool limit and stall
// the parallel batch.
func TestRunManyParallelZeroValueConfig(t *testing.T) {
	log := zaptest.NewLogger(t).Sugar()
	reg := registry.New(log, registry.Source{Name: "test", Registrations: []registry.Registration{
		registration("alpha", func() cleaner.Cleaner {
			return memCleaner{meta{name: "alpha", calls: &calls{}, t: t}}
		}),
	}})
	r := pipeline.New(reg, check.NewRunner(check.Builtins(), log), pipeline.Config{}, log)
	assert.Equal(t, 4, r.Config().Workers)

	results := r.RunMany(context.Background(), []string{"alpha"}, true, pipeline.Options{CheckOnly: true})
	assert.Len(t, results, 1)
}
