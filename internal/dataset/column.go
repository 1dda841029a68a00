package dataset

import (
	"math"
	"strconv"
)

// Kind distinguishes the two column representations a Table carries.
type Kind int

const (
	// KindNumeric columns hold float64 values; a missing cell is NaN.
	KindNumeric Kind = iota
	// KindText columns hold strings; a missing cell is the empty string.
	KindText
)

// Column is one named column of a Table. Exactly one of Floats or Texts
// is populated, selected by Kind.
type Column struct {
	Name   string
	Kind   Kind
	Floats []float64
	Texts  []string
}

// NewNumericColumn creates a numeric column over the given values.
func NewNumericColumn(name string, values []float64) *Column {
	return &Column{Name: name, Kind: KindNumeric, Floats: values}
}

// NewTextColumn creates a text column over the given values.
func NewTextColumn(name string, values []string) *Column {
	return &Column{Name: name, Kind: KindText, Texts: values}
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Floats)
	}
	return len(c.Texts)
}

// IsMissing reports whether cell i holds no value.
func (c *Column) IsMissing(i int) bool {
	if c.Kind == KindNumeric {
		return math.IsNaN(c.Floats[i])
	}
	return c.Texts[i] == ""
}

// CellString renders cell i the way it is serialized to the output file.
// Floats use the shortest representation that round-trips.
func (c *Column) CellString(i int) string {
	if c.Kind == KindNumeric {
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	}
	return c.Texts[i]
}

// keep compacts the column to the cells whose index is marked true.
func (c *Column) keep(marks []bool, kept int) {
	if c.Kind == KindNumeric {
		out := make([]float64, 0, kept)
		for i, v := range c.Floats {
			if marks[i] {
				out = append(out, v)
			}
		}
		c.Floats = out
		return
	}
	out := make([]string, 0, kept)
	for i, v := range c.Texts {
		if marks[i] {
			out = append(out, v)
		}
	}
	c.Texts = out
}
