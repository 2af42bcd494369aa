package records

// Record is a single data row. Fields are positional and line up with the
// owning table's Columns.
type Record struct {
	Line   int
	Fields []string
}

// Field returns the value at index, or "" when the index is out of range.
func (r Record) Field(index int) string {
	if index < 0 || index >= len(r.Fields) {
		return ""
	}
	return r.Fields[index]
}

// Table is an ordered sequence of records sharing one header.
type Table struct {
	Columns []string
	Records []Record
}

// New returns an empty table with a copy of the provided header.
func New(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Index returns the position of the named column, or -1 when absent.
func (t *Table) Index(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Has reports whether the header contains name.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Append copies fields into a new record, padding short rows with empty
// cells so every record matches the header width.
func (t *Table) Append(line int, fields []string) {
	width := len(t.Columns)
	if len(fields) > width {
		width = len(fields)
	}
	row := make([]string, width)
	copy(row, fields)
	t.Records = append(t.Records, Record{Line: line, Fields: row})
}

// WithRecords returns a table sharing this table's header and holding recs.
func (t *Table) WithRecords(recs []Record) *Table {
	out := New(t.Columns)
	out.Records = recs
	return out
}
