package csvio

import (
	"encoding/csv"
	"os"

	"github.com/wdm0006/custodian/pkg/frame"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll writes a Frame to a delimited file with a header row,
// overwriting any existing file. Null cells render as empty fields.
func WriteAll(path string, f *frame.Frame, opt WriterOptions) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}

	hdr := make([]string, len(f.Schema().Columns))
	for i, cs := range f.Schema().Columns {
		hdr[i] = cs.Name
	}
	if err := w.Write(hdr); err != nil {
		return err
	}

	for r := 0; r < f.Rows(); r++ {
		row := make([]string, len(hdr))
		for c, cs := range f.Schema().Columns {
			row[c] = f.CellString(r, cs.Name)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
