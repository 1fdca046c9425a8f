// Package pipeline runs cleaners end to end: resolve, probe, download,
// clean, validate, persist. Capability selection is deterministic and a
// mismatch surfaces as ErrCapability rather than a silent fallback, with
// one exception: a path download may be read into memory when only an
// in-memory clean exists, since that direction is always semantically
// valid.
package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/wdm0006/custodian/pkg/check"
	"github.com/wdm0006/custodian/pkg/cleaner"
	"github.com/wdm0006/custodian/pkg/frame"
	"github.com/wdm0006/custodian/pkg/io/csvio"
	"github.com/wdm0006/custodian/pkg/registry"
)

var (
	// ErrCapability reports that a cleaner's declared operations cannot
	// satisfy the requested execution path.
	ErrCapability = errors.New("capability mismatch")
	// ErrValidation reports an error-severity check failure; the run halts
	// before persistence.
	ErrValidation = errors.New("validation failed")
)

// Options tune a single run.
type Options struct {
	// PreferDisk picks the path download when the cleaner offers both.
	PreferDisk bool
	// SkipChecks persists the output without validating it.
	SkipChecks bool
	// CheckOnly validates without persisting.
	CheckOnly bool
}

// Result is the outcome of one successful (or check-failed) run.
type Result struct {
	Frame      *frame.Frame
	Report     check.Report
	OutputPath string
}

// Runner is the execution dispatcher.
type Runner struct {
	reg    *registry.Registry
	checks *check.Runner
	cfg    Config
	log    *zap.SugaredLogger
}

func New(reg *registry.Registry, checks *check.Runner, cfg Config, log *zap.SugaredLogger) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	// errgroup.SetLimit(0) would make the parallel batch block forever
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	return &Runner{reg: reg, checks: checks, cfg: cfg, log: log}
}

// Config returns the runner's effective configuration.
func (r *Runner) Config() Config { return r.cfg }

// Run executes one cleaner. Errors from the cleaner's own download/clean
// code propagate wrapped with its name; they are never swallowed.
func (r *Runner) Run(ctx context.Context, name string, opts Options) (*Result, error) {
	reg, err := r.reg.Get(name)
	if err != nil {
		return nil, err
	}
	c := reg.New()
	caps := cleaner.Probe(c)
	r.log.Infow("running cleaner", "cleaner", name, "source", reg.Meta.Source)

	raw, err := r.download(ctx, name, c, caps, opts.PreferDisk)
	if err != nil {
		return nil, err
	}
	cleaned, err := r.clean(ctx, name, c, caps, raw)
	if err != nil {
		return nil, err
	}
	r.log.Infow("cleaned dataset", "cleaner", name, "rows", cleaned.Rows(), "columns", cleaned.Cols())

	if v, ok := c.(cleaner.Validator); ok {
		if !v.ValidateOutput(cleaned) {
			return nil, errors.Wrapf(ErrValidation, "cleaner %s: ValidateOutput rejected the dataset", name)
		}
	}

	res := &Result{Frame: cleaned}
	if !opts.SkipChecks {
		spec, err := check.LoadSpecFor(r.cfg.SpecDir, name)
		if err != nil {
			r.log.Warnw("check spec unreadable, running without it", "cleaner", name, "error", err)
		}
		res.Report = r.checks.Run(cleaned, reg.Checks, spec, check.Options{})
		if !res.Report.Passed {
			return res, errors.Wrapf(ErrValidation,
				"cleaner %s: %d of %d checks failed", name, res.Report.FailedCount, res.Report.Total)
		}
	}

	if !opts.CheckOnly {
		path, err := r.persist(name, cleaned)
		if err != nil {
			return res, errors.Wrapf(err, "persisting output for %s", name)
		}
		res.OutputPath = path
		r.log.Infow("saved cleaned dataset", "cleaner", name, "path", path)
	}
	return res, nil
}

// download picks the download path: both ops present means the preference
// decides, a single op is used regardless of preference, none fails.
func (r *Runner) download(ctx context.Context, name string, c cleaner.Cleaner, caps cleaner.Capabilities, preferDisk bool) (cleaner.RawData, error) {
	useDisk := false
	switch {
	case caps.DownloadFrame && caps.DownloadPath:
		useDisk = preferDisk
	case caps.DownloadPath:
		useDisk = true
	case caps.DownloadFrame:
		if preferDisk {
			r.log.Debugw("disk preference ignored: cleaner only downloads to memory", "cleaner", name)
		}
	default:
		return cleaner.RawData{}, errors.Wrapf(ErrCapability, "cleaner %s implements no download operation", name)
	}

	if useDisk {
		dir := filepath.Join(r.cfg.StagingDir, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return cleaner.RawData{}, errors.Wrapf(err, "creating staging dir for %s", name)
		}
		p, err := c.(cleaner.PathDownloader).DownloadToPath(ctx, dir)
		if err != nil {
			return cleaner.RawData{}, errors.Wrapf(err, "cleaner %s: download to path", name)
		}
		r.log.Infow("downloaded to disk", "cleaner", name, "path", p)
		return cleaner.PathData(p), nil
	}
	f, err := c.(cleaner.FrameDownloader).DownloadFrame(ctx)
	if err != nil {
		return cleaner.RawData{}, errors.Wrapf(err, "cleaner %s: download to memory", name)
	}
	r.log.Infow("downloaded to memory", "cleaner", name, "rows", f.Rows())
	return cleaner.FrameData(f), nil
}

// clean matches the clean operation to the download outcome. An in-memory
// artifact strictly requires an in-memory clean: falling back the other way
// would paper over a configuration defect in the cleaner.
func (r *Runner) clean(ctx context.Context, name string, c cleaner.Cleaner, caps cleaner.Capabilities, raw cleaner.RawData) (*frame.Frame, error) {
	if raw.InMemory() {
		if !caps.CleanFrame {
			return nil, errors.Wrapf(ErrCapability,
				"cleaner %s downloaded to memory but implements no in-memory clean", name)
		}
		f, _ := raw.Frame()
		out, err := c.(cleaner.FrameCleaner).CleanFrame(ctx, f)
		if err != nil {
			return nil, errors.Wrapf(err, "cleaner %s: clean", name)
		}
		return out, nil
	}

	path, _ := raw.Path()
	if caps.CleanPath {
		out, err := c.(cleaner.PathCleaner).CleanPath(ctx, path)
		if err != nil {
			return nil, errors.Wrapf(err, "cleaner %s: clean from path", name)
		}
		return out, nil
	}
	if caps.CleanFrame {
		r.log.Debugw("no path clean; loading download into memory", "cleaner", name, "path", path)
		f, err := csvio.ReadFile(path, csvio.ReaderOptions{HasHeader: true})
		if err != nil {
			return nil, errors.Wrapf(err, "cleaner %s: loading %s for in-memory clean", name, path)
		}
		out, err := c.(cleaner.FrameCleaner).CleanFrame(ctx, f)
		if err != nil {
			return nil, errors.Wrapf(err, "cleaner %s: clean", name)
		}
		return out, nil
	}
	return nil, errors.Wrapf(ErrCapability, "cleaner %s implements no clean operation", name)
}
