package frame

// AppendRowFrom appends row i of src to f. The frames must share a schema;
// columns missing from src are left null.
func (f *Frame) AppendRowFrom(src *Frame, i int) {
	f.AppendNullRow()
	row := f.nrows - 1
	for _, cs := range f.schema.Columns {
		scol, ok := src.ColumnByName(cs.Name)
		if !ok || scol.IsNull(i) {
			continue
		}
		switch c := scol.(type) {
		case *BoolColumn:
			v, _ := c.Get(i)
			_ = f.SetCell(row, cs.Name, v)
		case *IntColumn:
			v, _ := c.Get(i)
			_ = f.SetCell(row, cs.Name, v)
		case *FloatColumn:
			v, _ := c.Get(i)
			_ = f.SetCell(row, cs.Name, v)
		case *StringColumn:
			v, _ := c.Get(i)
			_ = f.SetCell(row, cs.Name, v)
		case *TimeColumn:
			v, _ := c.Get(i)
			_ = f.SetCell(row, cs.Name, v)
		}
	}
}
