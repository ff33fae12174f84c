// Package filehandler reads and writes tabular datasets and YAML
// configuration documents on local disk or in an S3-compatible object store.
//
// Paths starting with "s3://" go to the remote store; everything else is
// local. Dataset formats are CSV and Parquet:
//
//	frame, err := filehandler.ReadDataset(ctx, "s3://bucket/data/input.parquet")
//	if err != nil {
//	    return err
//	}
//	err = filehandler.SaveDataset(ctx, frame, "out/result.parquet",
//	    filehandler.WithFormat("parquet"))
//
// Configuration documents are always YAML, whatever the extension:
//
//	doc, err := filehandler.ReadConfig(ctx, "settings.yaml")
//	err = filehandler.SaveConfig(ctx, doc, "s3://bucket/settings.yaml")
//
// Every function is stateless: it resolves the path, opens one stream,
// runs the codec and closes the stream before returning. Writes go through
// a staged file (local) or a deferred upload (remote) so a failed encode
// leaves the destination untouched.
//
// The remote store is configured from FILEHANDLER_S3_* environment
// variables (see package config) unless WithConfig or WithRemoteFS is given.
//
// All errors are errors.PlatformError values carrying one of
// CodeUnsupportedFormat, CodeBackendUnavailable, CodeMalformedConfig,
// CodeCodecFailed or CodeInvalidInput, with "path" in their context.
package filehandler
