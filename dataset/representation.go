package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Representation selects the in-memory shape a decoded dataset is
// returned in.
type Representation string

const (
	// Default returns the frame as decoded.
	Default Representation = "default"
	// Matrix converts every column to Float, as for numeric array
	// consumers. Nulls stay nil; String columns fail.
	Matrix Representation = "matrix"
)

// ErrUnknownRepresentation is returned for unrecognized representation names.
var ErrUnknownRepresentation = errors.New("unknown representation")

// ErrNotNumeric is returned when Matrix meets a String column.
var ErrNotNumeric = errors.New("column is not numeric")

// ParseRepresentation maps a name to a Representation. "" is Default.
func ParseRepresentation(name string) (Representation, error) {
	switch Representation(strings.ToLower(name)) {
	case "", Default:
		return Default, nil
	case Matrix:
		return Matrix, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRepresentation, name)
	}
}

// Apply converts f into representation r.
func (r Representation) Apply(f *Frame) (*Frame, error) {
	switch r {
	case "", Default:
		return f, nil
	case Matrix:
		return toMatrix(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRepresentation, string(r))
	}
}

func toMatrix(f *Frame) (*Frame, error) {
	cols := make([]Column, 0, f.NumCols())
	for _, c := range f.columns {
		out := Column{Name: c.Name, Type: Float, Values: make([]any, c.Len())}
		for i, v := range c.Values {
			switch x := v.(type) {
			case nil:
				out.Values[i] = nil
			case int64:
				out.Values[i] = float64(x)
			case float64:
				out.Values[i] = x
			case bool:
				if x {
					out.Values[i] = 1.0
				} else {
					out.Values[i] = 0.0
				}
			default:
				return nil, fmt.Errorf("%w: %q is %s", ErrNotNumeric, c.Name, c.Type)
			}
		}
		cols = append(cols, out)
	}
	return New(cols...)
}
