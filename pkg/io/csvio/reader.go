// Package csvio reads and writes Frames as delimited files. The read path
// serves raw downloads (possibly gzipped) and the dispatcher's
// path-to-memory fallback; the write path persists cleaned output.
package csvio

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/wdm0006/custodian/pkg/frame"
)

type ReaderOptions struct {
	HasHeader  bool
	Delimiter  rune // 0 = ','
	SampleRows int  // rows sampled for type inference; default 100
}

type Reader struct {
	r   *csv.Reader
	opt ReaderOptions
	buf [][]string
}

// ReadFile loads a whole delimited file into a Frame, inferring the schema
// from a sample. Gzipped input is detected by magic bytes.
func ReadFile(path string, opt ReaderOptions) (*frame.Frame, error) {
	rc, err := openMaybeGzip(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	r := NewReader(rc, opt)
	schema, err := r.InferSchema()
	if err != nil {
		return nil, err
	}
	return r.ReadAll(schema)
}

func NewReader(src io.Reader, opt ReaderOptions) *Reader {
	rr := csv.NewReader(src)
	if opt.Delimiter != 0 {
		rr.Comma = opt.Delimiter
	}
	rr.FieldsPerRecord = -1
	return &Reader{r: rr, opt: opt}
}

// InferSchema reads the header (if present) and samples rows to determine
// column kinds. Sampled rows are retained for the subsequent ReadAll.
func (r *Reader) InferSchema() (frame.Schema, error) {
	rec, err := r.r.Read()
	if err != nil {
		return frame.Schema{}, err
	}
	var names []string
	if r.opt.HasHeader {
		names = make([]string, len(rec))
		for i := range rec {
			names[i] = strings.ToValidUTF8(rec[i], "?")
		}
		if len(names) > 0 {
			names[0] = strings.TrimPrefix(names[0], "\ufeff")
		}
		rec, err = r.r.Read()
		if err == io.EOF {
			schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(names))}
			for i := range names {
				schema.Columns[i] = frame.ColumnSchema{Name: names[i], Type: frame.KindString, Nullable: true}
			}
			return schema, nil
		}
		if err != nil {
			return frame.Schema{}, err
		}
	} else {
		names = make([]string, len(rec))
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
	}

	first := make([]string, len(rec))
	copy(first, rec)
	sample := [][]string{first}
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	for i := 1; i < max; i++ {
		rr, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return frame.Schema{}, err
		}
		cp := make([]string, len(rr))
		copy(cp, rr)
		sample = append(sample, cp)
	}

	kinds := inferKinds(sample)
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(names))}
	for i := range names {
		k := frame.KindString
		if i < len(kinds) {
			k = kinds[i]
		}
		schema.Columns[i] = frame.ColumnSchema{Name: names[i], Type: k, Nullable: true}
	}
	r.buf = sample
	return schema, nil
}

// ReadAll loads the rest of the input into a Frame. Cells that fail to
// parse as the inferred kind are left null.
func (r *Reader) ReadAll(schema frame.Schema) (*frame.Frame, error) {
	f := frame.New(schema)
	appendRec := func(rec []string) {
		f.AppendNullRow()
		row := f.Rows() - 1
		for i, cs := range schema.Columns {
			if i >= len(rec) {
				continue
			}
			val := strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
			if val == "" {
				continue
			}
			switch cs.Type {
			case frame.KindFloat:
				if x, err := strconv.ParseFloat(val, 64); err == nil {
					_ = f.SetCell(row, cs.Name, x)
				}
			case frame.KindInt:
				if x, err := strconv.ParseInt(val, 10, 64); err == nil {
					_ = f.SetCell(row, cs.Name, x)
				}
			case frame.KindBool:
				if x, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
					_ = f.SetCell(row, cs.Name, x)
				}
			default:
				_ = f.SetCell(row, cs.Name, val)
			}
		}
	}
	for _, rec := range r.buf {
		appendRec(rec)
	}
	r.buf = nil
	for {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		appendRec(rec)
	}
	return f, nil
}

var numRe = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

func inferKinds(rows [][]string) []frame.Kind {
	if len(rows) == 0 {
		return nil
	}
	ncol := len(rows[0])
	kinds := make([]frame.Kind, ncol)
	for c := 0; c < ncol; c++ {
		num, integer, boolean, str := 0, 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			if v == "" {
				continue
			}
			if numRe.MatchString(v) {
				num++
				if !strings.ContainsAny(v, ".eE") {
					integer++
				}
				continue
			}
			lv := strings.ToLower(v)
			if lv == "true" || lv == "false" {
				boolean++
				continue
			}
			str++
		}
		switch {
		case boolean > 0 && num == 0 && str == 0:
			kinds[c] = frame.KindBool
		case num > str && integer == num:
			kinds[c] = frame.KindInt
		case num > str:
			kinds[c] = frame.KindFloat
		default:
			kinds[c] = frame.KindString
		}
	}
	return kinds
}

func openMaybeGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(f)
	if b, err := br.Peek(2); err == nil && len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		return readCloser{Reader: zr, c: f}, nil
	}
	return readCloser{Reader: br, c: f}, nil
}

type readCloser struct {
	io.Reader
	c io.Closer
}

func (r readCloser) Close() error { return r.c.Close() }
