package portfolio

// Cell is one value of a Frame. A zero Cell is the null marker.
type Cell struct {
	Value string
	Valid bool
}

// Text returns a non-null cell holding s.
func Text(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// Null is the explicit missing-value marker.
var Null = Cell{}

// Frame is a small column-ordered table used to display and edit assets.
type Frame struct {
	Columns []string
	Rows    [][]Cell
}

// NewFrame returns an empty frame with the given columns.
func NewFrame(columns ...string) *Frame {
	return &Frame{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Rows)
}

// ColumnIndex returns the position of a column, or -1.
func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// AppendRecord adds a row built from values keyed by column name.
// The frame's column order wins; missing keys become Null and keys the
// frame does not have are dropped.
func (f *Frame) AppendRecord(values map[string]string) {
	row := make([]Cell, len(f.Columns))
	for i, col := range f.Columns {
		if v, ok := values[col]; ok {
			row[i] = Text(v)
		}
	}
	f.Rows = append(f.Rows, row)
}

// Concat appends the rows of other. Columns not yet in f are added at the
// end, and cells for columns a row does not have are Null.
func (f *Frame) Concat(other *Frame) {
	for _, col := range other.Columns {
		if f.ColumnIndex(col) < 0 {
			f.Columns = append(f.Columns, col)
			for i := range f.Rows {
				f.Rows[i] = append(f.Rows[i], Null)
			}
		}
	}

	for _, src := range other.Rows {
		row := make([]Cell, len(f.Columns))
		for j, col := range other.Columns {
			row[f.ColumnIndex(col)] = src[j]
		}
		f.Rows = append(f.Rows, row)
	}
}

// Records returns every row keyed by column name.
func (f *Frame) Records() []map[string]Cell {
	records := make([]map[string]Cell, len(f.Rows))
	for i, row := range f.Rows {
		rec := make(map[string]Cell, len(f.Columns))
		for j, col := range f.Columns {
			rec[col] = row[j]
		}
		records[i] = rec
	}
	return records
}

// Strings renders the frame as string rows, with null cells left empty.
func (f *Frame) Strings() [][]string {
	out := make([][]string, len(f.Rows))
	for i, row := range f.Rows {
		line := make([]string, len(row))
		for j, c := range row {
			line[j] = c.Value
		}
		out[i] = line
	}
	return out
}
