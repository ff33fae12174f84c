package resolve

import (
	"fmt"
	"strings"
)

// Format is a tabular data format.
type Format int

const (
	// Unknown is any format the package cannot read or write.
	Unknown Format = iota
	// CSV is comma-separated values.
	CSV
	// Parquet is Apache Parquet.
	Parquet
)

// String returns the format's canonical lowercase name.
func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case Parquet:
		return "parquet"
	default:
		return "unknown"
	}
}

// Tabular reports whether datasets can be stored in f.
func (f Format) Tabular() bool {
	return f == CSV || f == Parquet
}

// SupportedFormats lists the tabular formats in a stable order.
func SupportedFormats() []Format {
	return []Format{CSV, Parquet}
}

// SupportedNames returns SupportedFormats as strings.
func SupportedNames() []string {
	formats := SupportedFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return names
}

// ResolveFormat infers the format from the path extension.
// The comparison is case-insensitive and requires a "." separator, so
// "data.CSV" is CSV but "datacsv" is Unknown.
func ResolveFormat(p string) Format {
	f, _ := ParseFormat(extension(p))
	return f
}

// ResolveFormatLoose matches on the raw suffix, so "datacsv" is CSV.
// It exists for callers relying on suffix matching without a separator.
func ResolveFormatLoose(p string) Format {
	switch {
	case strings.HasSuffix(p, "csv"):
		return CSV
	case strings.HasSuffix(p, "parquet"):
		return Parquet
	default:
		return Unknown
	}
}

// ParseFormat maps a format name (case-insensitive, optional leading ".")
// to a Format. Unrecognized names return Unknown and an error.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "csv":
		return CSV, nil
	case "parquet":
		return Parquet, nil
	default:
		return Unknown, fmt.Errorf("unknown format %q", name)
	}
}
