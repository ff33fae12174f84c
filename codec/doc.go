// Package codec encodes and decodes datasets and configuration documents.
//
// Tabular codecs implement the Tabular interface and are looked up by
// resolve.Format:
//
//	c, err := codec.ForFormat(resolve.Parquet, codec.Options{})
//	frame, err := c.Decode(ctx, r)
//
// Configuration documents are always YAML; see DecodeYAML and EncodeYAML.
//
// All failures are errors.PlatformError values: CodeCodecFailed for tabular
// codecs, CodeMalformedConfig for unparseable YAML.
package codec
