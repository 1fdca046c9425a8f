// Package cleaner defines the contract between the orchestrator and a data
// cleaner implementation. A cleaner must describe itself via Metadata and may
// implement any subset of the four optional operations below; the dispatcher
// probes for them and picks an execution path accordingly.
package cleaner

import (
	"context"

	"github.com/wdm0006/custodian/pkg/frame"
)

// Metadata describes a cleaner's data source as declared by its author.
type Metadata struct {
	Name            string
	Source          string
	Description     string
	UpdateFrequency string
	URL             string
	// Requires lists external tools this cleaner shells out to at run time.
	// The registry checks them against the environment before the cleaner
	// is offered for execution.
	Requires []string
}

// Cleaner is the minimal contract every implementation satisfies. The
// download and clean operations are optional and declared by implementing
// the narrow interfaces below.
type Cleaner interface {
	Metadata() Metadata
}

// FrameDownloader fetches the raw dataset directly into memory. Use this
// when the data fits comfortably in a Frame.
type FrameDownloader interface {
	DownloadFrame(ctx context.Context) (*frame.Frame, error)
}

// PathDownloader fetches the raw dataset to a file under dir and returns
// its path. Use this for datasets too large to hold in memory.
type PathDownloader interface {
	DownloadToPath(ctx context.Context, dir string) (string, error)
}

// FrameCleaner transforms an in-memory raw dataset into its cleaned form.
type FrameCleaner interface {
	CleanFrame(ctx context.Context, f *frame.Frame) (*frame.Frame, error)
}

// PathCleaner transforms a raw dataset on disk into its cleaned form,
// typically by processing the file in pieces.
type PathCleaner interface {
	CleanPath(ctx context.Context, path string) (*frame.Frame, error)
}

// Validator is an optional post-clean hook for cleaner-specific sanity
// checks that do not fit the check framework.
type Validator interface {
	ValidateOutput(f *frame.Frame) bool
}
