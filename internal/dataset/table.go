package dataset

import (
	"fmt"
	"strings"
)

// Table is an ordered set of equally sized columns. It is the single
// in-memory dataset each pipeline stage mutates in place; ownership
// moves stage to stage, never shared.
type Table struct {
	cols  []*Column
	index map[string]int
}

// New builds a Table from the given columns. All columns must have the
// same length and unique names.
func New(cols ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(cols))}
	for _, c := range cols {
		if err := t.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Rows returns the row count.
func (t *Table) Rows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// Cols returns the column count.
func (t *Table) Cols() int {
	return len(t.cols)
}

// Names returns the column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, or false when absent.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Columns returns the columns in table order. The slice is shared with
// the table; callers must not reorder it.
func (t *Table) Columns() []*Column {
	return t.cols
}

// AddColumn appends a column. The column length must match the table's
// current row count and the name must be unused.
func (t *Table) AddColumn(c *Column) error {
	if c.Name == "" {
		return fmt.Errorf("column has no name")
	}
	if _, exists := t.index[c.Name]; exists {
		return fmt.Errorf("duplicate column %q", c.Name)
	}
	if len(t.cols) > 0 && c.Len() != t.Rows() {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.Rows())
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// DropColumn removes the named column, reporting whether it existed.
func (t *Table) DropColumn(name string) bool {
	i, ok := t.index[name]
	if !ok {
		return false
	}
	t.cols = append(t.cols[:i], t.cols[i+1:]...)
	delete(t.index, name)
	for j := i; j < len(t.cols); j++ {
		t.index[t.cols[j].Name] = j
	}
	return true
}

// Filter keeps only the rows for which keep returns true and reports
// how many rows were removed. Row order is preserved.
func (t *Table) Filter(keep func(row int) bool) int {
	rows := t.Rows()
	marks := make([]bool, rows)
	kept := 0
	for i := 0; i < rows; i++ {
		if keep(i) {
			marks[i] = true
			kept++
		}
	}
	if kept == rows {
		return 0
	}
	for _, c := range t.cols {
		c.keep(marks, kept)
	}
	return rows - kept
}

// RowHasMissing reports whether any cell in the row is missing.
func (t *Table) RowHasMissing(row int) bool {
	for _, c := range t.cols {
		if c.IsMissing(row) {
			return true
		}
	}
	return false
}

// RowKey renders a row as a single string usable as an exact-equality
// key. Cells are joined with an unprintable separator so adjacent
// values cannot collide.
func (t *Table) RowKey(row int) string {
	var b strings.Builder
	for i, c := range t.cols {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		b.WriteString(c.CellString(row))
	}
	return b.String()
}
