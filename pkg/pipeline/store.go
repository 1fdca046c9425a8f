package pipeline

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/wdm0006/custodian/pkg/frame"
	"github.com/wdm0006/custodian/pkg/io/csvio"
	"github.com/wdm0006/custodian/pkg/io/jsonlio"
	"github.com/wdm0006/custodian/pkg/io/parquetio"
)

// persist writes the cleaned dataset to the conventional location
// <OutputDir>/<name>/cleaned.<ext>, overwriting any previous run.
func (r *Runner) persist(name string, f *frame.Frame) (string, error) {
	dir := filepath.Join(r.cfg.OutputDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	switch r.cfg.Format {
	case "", "csv":
		path := filepath.Join(dir, "cleaned.csv")
		return path, csvio.WriteAll(path, f, csvio.WriterOptions{})
	case "jsonl":
		path := filepath.Join(dir, "cleaned.jsonl")
		return path, jsonlio.WriteAll(path, f)
	case "parquet":
		path := filepath.Join(dir, "cleaned.parquet")
		return path, parquetio.WriteAll(path, f)
	default:
		return "", errors.Newf("unsupported output format %q", r.cfg.Format)
	}
}
