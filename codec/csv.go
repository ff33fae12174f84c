package codec

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jmgilman/go/filehandler/dataset"
	"github.com/jmgilman/go/filehandler/resolve"
)

// CSVOptions configures the CSV codec.
type CSVOptions struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune

	// WriteIndex writes a leading row-index column with an empty header
	// and values 0..n-1.
	WriteIndex bool

	// DropIndex treats the first column as a row index on read and
	// discards it instead of returning it as "Unnamed: 0".
	DropIndex bool
}

// DefaultCSVOptions writes the index column and keeps it on read, so a
// round trip returns one extra column.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Comma: ',', WriteIndex: true}
}

// CSV is the CSV codec.
type CSV struct {
	opts CSVOptions
}

// NewCSV creates a CSV codec.
func NewCSV(opts CSVOptions) *CSV {
	if opts.Comma == 0 {
		opts.Comma = ','
	}
	return &CSV{opts: opts}
}

// Format returns resolve.CSV.
func (c *CSV) Format() resolve.Format {
	return resolve.CSV
}

// Decode parses a header row followed by records. Empty headers are named
// "Unnamed: <i>" and repeated names get a ".<n>" suffix. Each column's
// type is the narrowest of Int, Float, Bool that fits every non-empty
// cell, else String. Empty cells are null.
func (c *CSV) Decode(ctx context.Context, r io.Reader) (*dataset.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapCodecError(err, "context cancelled before decoding csv")
	}

	reader := csv.NewReader(r)
	reader.Comma = c.opts.Comma

	records, err := reader.ReadAll()
	if err != nil {
		return nil, wrapCodecErrorWithContext(err, "failed to parse csv", makeContext("format", "csv"))
	}
	if len(records) == 0 {
		return dataset.New()
	}

	names := headerNames(records[0])
	body := records[1:]

	start := 0
	if c.opts.DropIndex && len(names) > 0 {
		start = 1
	}
	if start == len(names) && len(body) > 0 {
		return nil, newCodecError("dropping the index column leaves no columns",
			makeContext("format", "csv", "rows", len(body)))
	}

	cols := make([]dataset.Column, 0, len(names)-start)
	for j := start; j < len(names); j++ {
		cells := make([]string, len(body))
		for i, rec := range body {
			cells[i] = rec[j]
		}
		cols = append(cols, inferColumn(names[j], cells))
	}

	f, err := dataset.New(cols...)
	if err != nil {
		return nil, wrapCodecErrorWithContext(err, "failed to build dataset from csv", makeContext("format", "csv"))
	}
	return f, nil
}

// Encode writes a header row and one record per row. Nulls are empty
// cells; floats always carry a decimal point or exponent so they read
// back as floats.
func (c *CSV) Encode(ctx context.Context, f *dataset.Frame, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return wrapCodecError(err, "context cancelled before encoding csv")
	}

	writer := csv.NewWriter(w)
	writer.Comma = c.opts.Comma

	cols := f.Columns()
	width := len(cols)
	if c.opts.WriteIndex {
		width++
	}

	header := make([]string, 0, width)
	if c.opts.WriteIndex {
		header = append(header, "")
	}
	header = append(header, f.Names()...)
	if err := writer.Write(header); err != nil {
		return wrapCodecErrorWithContext(err, "failed to write csv header", makeContext("format", "csv"))
	}

	record := make([]string, width)
	for i := 0; i < f.NumRows(); i++ {
		record = record[:0]
		if c.opts.WriteIndex {
			record = append(record, strconv.Itoa(i))
		}
		for _, col := range cols {
			record = append(record, formatCell(col.Values[i]))
		}
		if err := writer.Write(record); err != nil {
			return wrapCodecErrorWithContext(err, "failed to write csv record", makeContext("format", "csv", "row", i))
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return wrapCodecErrorWithContext(err, "failed to flush csv", makeContext("format", "csv"))
	}
	return nil
}

func headerNames(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		name := h
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s.%d", base, n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}

func inferColumn(name string, cells []string) dataset.Column {
	typ := inferType(cells)
	values := make([]any, len(cells))
	for i, s := range cells {
		if s == "" {
			continue
		}
		values[i] = parseCell(typ, s)
	}
	return dataset.Column{Name: name, Type: typ, Values: values}
}

// inferType returns the first of Int, Float, Bool that every non-empty
// cell parses as, else String. An all-null column is Float.
func inferType(cells []string) dataset.Type {
	empty := true
	for _, s := range cells {
		if s != "" {
			empty = false
			break
		}
	}
	if empty {
		return dataset.Float
	}

	for _, typ := range []dataset.Type{dataset.Int, dataset.Float, dataset.Bool} {
		ok := true
		for _, s := range cells {
			if s != "" && !fits(typ, s) {
				ok = false
				break
			}
		}
		if ok {
			return typ
		}
	}
	return dataset.String
}

func fits(t dataset.Type, s string) bool {
	switch t {
	case dataset.Int:
		_, err := strconv.ParseInt(s, 10, 64)
		return err == nil
	case dataset.Float:
		_, err := strconv.ParseFloat(s, 64)
		return err == nil
	case dataset.Bool:
		_, ok := parseBool(s)
		return ok
	default:
		return true
	}
}

func parseCell(t dataset.Type, s string) any {
	switch t {
	case dataset.Int:
		v, _ := strconv.ParseInt(s, 10, 64)
		return v
	case dataset.Float:
		v, _ := strconv.ParseFloat(s, 64)
		return v
	case dataset.Bool:
		v, _ := parseBool(s)
		return v
	default:
		return s
	}
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "true", "True", "TRUE":
		return true, true
	case "false", "False", "FALSE":
		return false, true
	}
	return false, false
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return formatFloat(x)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
