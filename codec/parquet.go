package codec

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/jmgilman/go/filehandler/dataset"
	"github.com/jmgilman/go/filehandler/resolve"
	"github.com/parquet-go/parquet-go"
)

// columnOrderKey stores the frame's column order in file metadata.
// Parquet groups sort their fields by name, so order is otherwise lost.
const columnOrderKey = "filehandler.columns"

const readBatchSize = 256

// Parquet is the Apache Parquet codec.
//
// Int, Float, Bool and String columns map to optional INT64, DOUBLE,
// BOOLEAN and UTF8 BYTE_ARRAY leaves. Files are snappy compressed.
type Parquet struct{}

// NewParquet creates a Parquet codec.
func NewParquet() *Parquet {
	return &Parquet{}
}

// Format returns resolve.Parquet.
func (p *Parquet) Format() resolve.Format {
	return resolve.Parquet
}

// Encode writes f as a single row group.
func (p *Parquet) Encode(ctx context.Context, f *dataset.Frame, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return wrapCodecError(err, "context cancelled before encoding parquet")
	}
	if f.NumCols() == 0 {
		return newCodecError("parquet requires at least one column", makeContext("format", "parquet"))
	}

	cols := f.Columns()
	group := make(parquet.Group, len(cols))
	for _, c := range cols {
		node, err := leafFor(c.Type)
		if err != nil {
			return wrapCodecErrorWithContext(err, "unsupported column type", makeContext("format", "parquet", "column", c.Name))
		}
		group[c.Name] = parquet.Optional(node)
	}
	schema := parquet.NewSchema("frame", group)

	// Leaf index of each frame column in the schema's sorted field order.
	leafIndex := make(map[string]int, len(cols))
	for i, field := range schema.Fields() {
		leafIndex[field.Name()] = i
	}

	order, err := json.Marshal(f.Names())
	if err != nil {
		return wrapCodecError(err, "failed to encode column order")
	}

	writer := parquet.NewWriter(w,
		schema,
		parquet.Compression(&parquet.Snappy),
		parquet.KeyValueMetadata(columnOrderKey, string(order)),
	)

	rows := make([]parquet.Row, f.NumRows())
	for i := range rows {
		row := make(parquet.Row, len(cols))
		for _, c := range cols {
			idx := leafIndex[c.Name]
			v := c.Values[i]
			if v == nil {
				row[idx] = parquet.NullValue().Level(0, 0, idx)
			} else {
				row[idx] = parquet.ValueOf(v).Level(0, 1, idx)
			}
		}
		rows[i] = row
	}

	if _, err := writer.WriteRows(rows); err != nil {
		_ = writer.Close()
		return wrapCodecErrorWithContext(err, "failed to write parquet rows", makeContext("format", "parquet"))
	}
	if err := writer.Close(); err != nil {
		return wrapCodecErrorWithContext(err, "failed to finalize parquet file", makeContext("format", "parquet"))
	}
	return nil
}

// Decode reads every row group. Streams that support io.ReaderAt and
// Stat are read in place; anything else is buffered in memory first.
func (p *Parquet) Decode(ctx context.Context, r io.Reader) (*dataset.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapCodecError(err, "context cancelled before decoding parquet")
	}

	ra, size, err := readerAt(r)
	if err != nil {
		return nil, wrapCodecErrorWithContext(err, "failed to read parquet stream", makeContext("format", "parquet"))
	}

	file, err := parquet.OpenFile(ra, size)
	if err != nil {
		return nil, wrapCodecErrorWithContext(err, "failed to open parquet file", makeContext("format", "parquet"))
	}

	fields := file.Schema().Fields()
	cols := make([]dataset.Column, len(fields))
	for i, field := range fields {
		typ, err := columnType(field)
		if err != nil {
			return nil, wrapCodecErrorWithContext(err, "unsupported parquet column", makeContext("format", "parquet", "column", field.Name()))
		}
		cols[i] = dataset.Column{Name: field.Name(), Type: typ, Values: make([]any, 0, file.NumRows())}
	}

	buf := make([]parquet.Row, readBatchSize)
	for _, rg := range file.RowGroups() {
		if err := readRowGroup(rg, buf, cols); err != nil {
			return nil, wrapCodecErrorWithContext(err, "failed to read parquet rows", makeContext("format", "parquet"))
		}
	}

	f, err := dataset.New(orderColumns(file, cols)...)
	if err != nil {
		return nil, wrapCodecErrorWithContext(err, "failed to build dataset from parquet", makeContext("format", "parquet"))
	}
	return f, nil
}

func readRowGroup(rg parquet.RowGroup, buf []parquet.Row, cols []dataset.Column) error {
	rows := rg.Rows()
	defer func() { _ = rows.Close() }()

	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			for _, v := range row {
				idx := v.Column()
				if idx < 0 || idx >= len(cols) {
					return fmt.Errorf("value for unknown column %d", idx)
				}
				cols[idx].Values = append(cols[idx].Values, valueOf(cols[idx].Type, v))
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// orderColumns restores the column order recorded at write time. Files
// without the metadata, or with metadata that does not match the schema,
// keep schema order.
func orderColumns(file *parquet.File, cols []dataset.Column) []dataset.Column {
	raw, ok := file.Lookup(columnOrderKey)
	if !ok {
		return cols
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil || len(names) != len(cols) {
		return cols
	}

	byName := make(map[string]dataset.Column, len(cols))
	for _, c := range cols {
		byName[c.Name] = c
	}
	ordered := make([]dataset.Column, 0, len(cols))
	for _, name := range names {
		c, ok := byName[name]
		if !ok {
			return cols
		}
		ordered = append(ordered, c)
	}
	return ordered
}

func leafFor(t dataset.Type) (parquet.Node, error) {
	switch t {
	case dataset.Int:
		return parquet.Int(64), nil
	case dataset.Float:
		return parquet.Leaf(parquet.DoubleType), nil
	case dataset.Bool:
		return parquet.Leaf(parquet.BooleanType), nil
	case dataset.String:
		return parquet.String(), nil
	default:
		return nil, fmt.Errorf("no parquet type for %s", t)
	}
}

func columnType(field parquet.Field) (dataset.Type, error) {
	if !field.Leaf() || field.Repeated() {
		return 0, fmt.Errorf("nested or repeated column %q", field.Name())
	}
	switch field.Type().Kind() {
	case parquet.Int32, parquet.Int64:
		return dataset.Int, nil
	case parquet.Float, parquet.Double:
		return dataset.Float, nil
	case parquet.Boolean:
		return dataset.Bool, nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return dataset.String, nil
	default:
		return 0, fmt.Errorf("unsupported physical type %s", field.Type().Kind())
	}
}

func valueOf(t dataset.Type, v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch t {
	case dataset.Int:
		if v.Kind() == parquet.Int32 {
			return int64(v.Int32())
		}
		return v.Int64()
	case dataset.Float:
		if v.Kind() == parquet.Float {
			return float64(v.Float())
		}
		return v.Double()
	case dataset.Bool:
		return v.Boolean()
	default:
		return string(v.ByteArray())
	}
}

type statter interface {
	Stat() (fs.FileInfo, error)
}

type sizer interface {
	Size() int64
}

func readerAt(r io.Reader) (io.ReaderAt, int64, error) {
	if ra, ok := r.(io.ReaderAt); ok {
		switch s := r.(type) {
		case sizer:
			return ra, s.Size(), nil
		case statter:
			if info, err := s.Stat(); err == nil {
				return ra, info.Size(), nil
			}
		}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}
	return bytes.NewReader(data), int64(len(data)), nil
}
