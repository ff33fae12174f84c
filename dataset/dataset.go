// Package dataset holds tabular data in memory as named, typed columns.
package dataset

import (
	"fmt"
	"math"
)

// Type is a column's element type.
type Type int

const (
	// Int columns hold int64 values.
	Int Type = iota
	// Float columns hold float64 values.
	Float
	// Bool columns hold bool values.
	Bool
	// String columns hold string values.
	String
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Column is one named column. A nil entry in Values is a null.
type Column struct {
	Name   string
	Type   Type
	Values []any
}

// Len returns the number of values.
func (c Column) Len() int {
	return len(c.Values)
}

// Frame is an ordered set of equal-length columns.
type Frame struct {
	columns []Column
	index   map[string]int
}

// New builds a Frame. Every column must have the same length, a unique
// name and values matching its Type (or nil).
func New(cols ...Column) (*Frame, error) {
	f := &Frame{
		columns: make([]Column, 0, len(cols)),
		index:   make(map[string]int, len(cols)),
	}

	for i, c := range cols {
		if _, dup := f.index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", c.Name)
		}
		if i > 0 && c.Len() != cols[0].Len() {
			return nil, fmt.Errorf("column %q has %d values, want %d", c.Name, c.Len(), cols[0].Len())
		}
		for row, v := range c.Values {
			if !c.Type.accepts(v) {
				return nil, fmt.Errorf("column %q row %d: %T is not %s", c.Name, row, v, c.Type)
			}
		}
		f.index[c.Name] = i
		f.columns = append(f.columns, c)
	}

	return f, nil
}

// MustNew is New but panics on error. Intended for tests and literals.
func MustNew(cols ...Column) *Frame {
	f, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// IntColumn builds an Int column.
func IntColumn(name string, values ...int64) Column {
	return Column{Name: name, Type: Int, Values: toAny(values)}
}

// FloatColumn builds a Float column.
func FloatColumn(name string, values ...float64) Column {
	return Column{Name: name, Type: Float, Values: toAny(values)}
}

// BoolColumn builds a Bool column.
func BoolColumn(name string, values ...bool) Column {
	return Column{Name: name, Type: Bool, Values: toAny(values)}
}

// StringColumn builds a String column.
func StringColumn(name string, values ...string) Column {
	return Column{Name: name, Type: String, Values: toAny(values)}
}

func toAny[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func (t Type) accepts(v any) bool {
	if v == nil {
		return true
	}
	switch t {
	case Int:
		_, ok := v.(int64)
		return ok
	case Float:
		_, ok := v.(float64)
		return ok
	case Bool:
		_, ok := v.(bool)
		return ok
	case String:
		_, ok := v.(string)
		return ok
	}
	return false
}

// NumRows returns the row count.
func (f *Frame) NumRows() int {
	if len(f.columns) == 0 {
		return 0
	}
	return f.columns[0].Len()
}

// NumCols returns the column count.
func (f *Frame) NumCols() int {
	return len(f.columns)
}

// Shape returns (rows, columns).
func (f *Frame) Shape() (int, int) {
	return f.NumRows(), f.NumCols()
}

// Columns returns the columns in order. The slice is a copy; the values
// are shared.
func (f *Frame) Columns() []Column {
	out := make([]Column, len(f.columns))
	copy(out, f.columns)
	return out
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column.
func (f *Frame) Column(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return Column{}, false
	}
	return f.columns[i], true
}

// Value returns the value at row i of the named column.
func (f *Frame) Value(row int, name string) (any, error) {
	c, ok := f.Column(name)
	if !ok {
		return nil, fmt.Errorf("no column %q", name)
	}
	if row < 0 || row >= c.Len() {
		return nil, fmt.Errorf("row %d out of range [0,%d)", row, c.Len())
	}
	return c.Values[row], nil
}

// Row returns row i across all columns, in column order.
func (f *Frame) Row(i int) ([]any, error) {
	if i < 0 || i >= f.NumRows() {
		return nil, fmt.Errorf("row %d out of range [0,%d)", i, f.NumRows())
	}
	row := make([]any, len(f.columns))
	for j, c := range f.columns {
		row[j] = c.Values[i]
	}
	return row, nil
}

// Equal reports whether f and other have the same columns, types and
// values. NaN equals NaN.
func (f *Frame) Equal(other *Frame) bool {
	if f.NumCols() != other.NumCols() || f.NumRows() != other.NumRows() {
		return false
	}
	for i, c := range f.columns {
		o := other.columns[i]
		if c.Name != o.Name || c.Type != o.Type {
			return false
		}
		for j, v := range c.Values {
			if !valueEqual(v, o.Values[j]) {
				return false
			}
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	fa, aok := a.(float64)
	fb, bok := b.(float64)
	if aok && bok && math.IsNaN(fa) && math.IsNaN(fb) {
		return true
	}
	return a == b
}
