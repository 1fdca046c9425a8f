// Package parquetio persists Frames as Parquet files for consumers that
// prefer columnar output over CSV.
package parquetio

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	"github.com/wdm0006/custodian/pkg/frame"
)

func parquetSchemaJSON(s frame.Schema) string {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, cs := range s.Columns {
		tag := "name=" + cs.Name + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case frame.KindFloat:
			tag += "DOUBLE"
		case frame.KindInt:
			tag += "INT64"
		case frame.KindBool:
			tag += "BOOLEAN"
		default:
			tag += "BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

// WriteAll writes a Frame to a Parquet file. Null cells are omitted from
// their row record and land as Parquet nulls via the OPTIONAL fields.
// Row groups buffer in memory and flush inside WriteStop, so its error is
// the one that reports most write failures.
func WriteAll(path string, f *frame.Frame) (err error) {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	schema := parquetSchemaJSON(f.Schema())
	writer, err := pw.NewJSONWriter(schema, fw, 4)
	if err != nil {
		_ = fw.Close()
		return errors.Wrap(err, "parquet writer init")
	}
	defer func() {
		err = errors.CombineErrors(err, errors.Wrap(writer.WriteStop(), "parquet write stop"))
		err = errors.CombineErrors(err, fw.Close())
	}()
	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(f.Schema().Columns))
		for _, cs := range f.Schema().Columns {
			col, _ := f.ColumnByName(cs.Name)
			switch c := col.(type) {
			case *frame.FloatColumn:
				if v, ok := c.Get(r); ok {
					rec[cs.Name] = v
				}
			case *frame.IntColumn:
				if v, ok := c.Get(r); ok {
					rec[cs.Name] = v
				}
			case *frame.BoolColumn:
				if v, ok := c.Get(r); ok {
					rec[cs.Name] = v
				}
			default:
				if !col.IsNull(r) {
					rec[cs.Name] = f.CellString(r, cs.Name)
				}
			}
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := writer.Write(string(b)); err != nil {
			return errors.Wrap(err, "parquet write row")
		}
	}
	return nil
}
