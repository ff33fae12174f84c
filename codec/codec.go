package codec

import (
	"context"
	"io"

	"github.com/jmgilman/go/filehandler/dataset"
	"github.com/jmgilman/go/filehandler/errors"
	"github.com/jmgilman/go/filehandler/resolve"
)

// Tabular encodes and decodes datasets in one format.
type Tabular interface {
	// Format reports the format handled.
	Format() resolve.Format

	// Decode reads a whole dataset from r.
	Decode(ctx context.Context, r io.Reader) (*dataset.Frame, error)

	// Encode writes f to w.
	Encode(ctx context.Context, f *dataset.Frame, w io.Writer) error
}

// Options configures codec construction.
type Options struct {
	// CSV configures the CSV codec. The zero value means DefaultCSVOptions.
	CSV *CSVOptions
}

var tabular = map[resolve.Format]func(Options) Tabular{
	resolve.CSV: func(o Options) Tabular {
		if o.CSV != nil {
			return NewCSV(*o.CSV)
		}
		return NewCSV(DefaultCSVOptions())
	},
	resolve.Parquet: func(Options) Tabular {
		return NewParquet()
	},
}

// ForFormat returns the codec for f. Formats without a codec fail with
// CodeUnsupportedFormat.
func ForFormat(f resolve.Format, opts Options) (Tabular, error) {
	build, ok := tabular[f]
	if !ok {
		return nil, errors.WithContextMap(
			errors.Newf(errors.CodeUnsupportedFormat, "no codec for format %q", f),
			makeContext("format", f.String(), "supported", resolve.SupportedNames()),
		)
	}
	return build(opts), nil
}
