package filehandler

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmgilman/go/filehandler/codec"
	"github.com/jmgilman/go/filehandler/config"
	"github.com/jmgilman/go/filehandler/dataset"
	"github.com/jmgilman/go/filehandler/errors"
	"github.com/jmgilman/go/filehandler/fs/billy"
	"github.com/jmgilman/go/filehandler/fs/core"
	"github.com/jmgilman/go/filehandler/internal/logging"
	"github.com/jmgilman/go/filehandler/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyFS counts stream acquisitions.
type spyFS struct {
	core.FS
	opens   int
	creates int
}

func (s *spyFS) Open(name string) (fs.File, error) {
	s.opens++
	return s.FS.Open(name)
}

func (s *spyFS) Create(name string) (core.File, error) {
	s.creates++
	return s.FS.Create(name)
}

func sampleFrame() *dataset.Frame {
	return dataset.MustNew(
		dataset.IntColumn("id", 1, 2, 3),
		dataset.FloatColumn("score", 0.5, 1.25, 2),
		dataset.Column{Name: "label", Type: dataset.String, Values: []any{"a", nil, "c"}},
		dataset.BoolColumn("ok", true, false, true),
	)
}

func TestEndToEndCSVRelativePath(t *testing.T) {
	t.Chdir(t.TempDir())
	ctx := context.Background()

	in := dataset.MustNew(dataset.IntColumn("a", 1, 2, 3))
	require.NoError(t, SaveDataset(ctx, in, "out.csv"))

	_, err := os.Stat("out.csv")
	require.NoError(t, err, "file is written relative to the working directory")

	out, err := ReadDataset(ctx, "out.csv")
	require.NoError(t, err)
	rows, cols := out.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols, "one data column plus the index")
}

func TestCSVRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "frame.csv")
	in := sampleFrame()

	require.NoError(t, SaveDataset(ctx, in, path))

	out, err := ReadDataset(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, in.NumRows(), out.NumRows())
	assert.Equal(t, in.NumCols()+1, out.NumCols())

	t.Run("index dropped", func(t *testing.T) {
		out, err := ReadDataset(ctx, path, WithCSVOptions(codec.CSVOptions{DropIndex: true}))
		require.NoError(t, err)
		assert.True(t, in.Equal(out))
	})
}

func TestParquetRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "frame.parquet")
	in := sampleFrame()

	require.NoError(t, SaveDataset(ctx, in, path, WithFormat("parquet")))

	out, err := ReadDataset(ctx, path)
	require.NoError(t, err)
	assert.True(t, in.Equal(out), "values and column types are preserved")
}

func TestReadDatasetUnsupportedFormat(t *testing.T) {
	spy := &spyFS{FS: billy.NewMemory()}

	_, err := ReadDataset(context.Background(), "data.unknown", WithLocalFS(spy))
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnsupportedFormat, errors.GetCode(err))
	assert.Zero(t, spy.opens, "no stream is acquired")

	var pe errors.PlatformError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "unknown", pe.Context()["format"])
	assert.Equal(t, []string{"csv", "parquet"}, pe.Context()["supported"])
	assert.Equal(t, "data.unknown", pe.Context()["path"])
}

func TestSaveDatasetUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	err := SaveDataset(context.Background(), sampleFrame(), path, WithFormat("unknown"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnsupportedFormat, errors.GetCode(err))

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, fs.ErrNotExist, "no output file is created")
}

func TestSaveDatasetFormatIndependentOfExtension(t *testing.T) {
	mem := billy.NewMemory()
	require.NoError(t, SaveDataset(context.Background(), sampleFrame(), "data.csv",
		WithLocalFS(mem), WithFormat("parquet")))

	data, err := mem.ReadFile("data.csv")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PAR1")))
}

func TestSaveDatasetEncodeFailureKeepsDestination(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.parquet")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	err := SaveDataset(context.Background(), dataset.MustNew(), path, WithFormat("parquet"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeCodecFailed, errors.GetCode(err))

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "original", string(data))

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Len(t, entries, 1, "staged temp file is removed")
}

func TestSaveConfigUnencodableValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.yaml")

	err := SaveConfig(context.Background(), codec.Document{"ch": make(chan int)}, path)
	require.Error(t, err)
	assert.Equal(t, errors.CodeCodecFailed, errors.GetCode(err))

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no destination or staged file is left")
}

func TestWriteAbortsOnPanic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	o := buildOptions(nil)
	assert.PanicsWithValue(t, "encoder bug", func() {
		_ = write(context.Background(), o, logging.New(nil), resolve.Resolve(path), func(w io.Writer) error {
			_, _ = w.Write([]byte("partial"))
			panic("encoder bug")
		})
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staged temp file is removed")
}

func TestSaveDatasetNilFrame(t *testing.T) {
	spy := &spyFS{FS: billy.NewMemory()}
	err := SaveDataset(context.Background(), nil, "out.csv", WithLocalFS(spy))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.Zero(t, spy.creates)
}

func TestReadDatasetMissingFile(t *testing.T) {
	_, err := ReadDataset(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeBackendUnavailable, errors.GetCode(err))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.False(t, errors.IsRetryable(err))

	var pe errors.PlatformError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "not_found", pe.Context()["cause"])
}

func TestReadDatasetRepresentation(t *testing.T) {
	ctx := context.Background()
	mem := billy.NewMemory()
	in := dataset.MustNew(dataset.IntColumn("a", 1, 2), dataset.BoolColumn("b", true, false))
	require.NoError(t, SaveDataset(ctx, in, "m.parquet", WithLocalFS(mem), WithFormat("parquet")))

	t.Run("matrix", func(t *testing.T) {
		out, err := ReadDataset(ctx, "m.parquet", WithLocalFS(mem), WithRepresentation(dataset.Matrix))
		require.NoError(t, err)
		for _, c := range out.Columns() {
			assert.Equal(t, dataset.Float, c.Type)
		}
	})

	t.Run("unknown representation fails before IO", func(t *testing.T) {
		spy := &spyFS{FS: mem}
		_, err := ReadDataset(ctx, "m.parquet", WithLocalFS(spy), WithRepresentation("rows"))
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		assert.Zero(t, spy.opens)
	})

	t.Run("matrix on strings", func(t *testing.T) {
		require.NoError(t, SaveDataset(ctx, dataset.MustNew(dataset.StringColumn("s", "x")), "s.parquet",
			WithLocalFS(mem), WithFormat("parquet")))
		_, err := ReadDataset(ctx, "s.parquet", WithLocalFS(mem), WithRepresentation(dataset.Matrix))
		assert.Equal(t, errors.CodeCodecFailed, errors.GetCode(err))
	})
}

func TestConfigRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		doc  codec.Document
	}{
		{
			name: "minimal",
			path: filepath.Join(dir, "config.yaml"),
			doc:  codec.Document{"test1": 1, "test2": "2"},
		},
		{
			name: "nested with arbitrary extension",
			path: filepath.Join(dir, "settings.conf"),
			doc: codec.Document{
				"server": map[string]any{"host": "localhost", "ports": []any{80, 443}},
				"debug":  false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, SaveConfig(ctx, tt.doc, tt.path))

			got, err := ReadConfig(ctx, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.doc, got)
		})
	}
}

func TestReadConfigMalformed(t *testing.T) {
	mem := billy.NewMemory()
	require.NoError(t, mem.WriteFile("bad.yaml", []byte("key: value\n  bad: indent\n"), 0o644))

	_, err := ReadConfig(context.Background(), "bad.yaml", WithLocalFS(mem))
	require.Error(t, err)
	assert.Equal(t, errors.CodeMalformedConfig, errors.GetCode(err))

	var pe errors.PlatformError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "bad.yaml", pe.Context()["path"])
	assert.NotEmpty(t, pe.Context()["diagnostic"])
}

func TestRemotePaths(t *testing.T) {
	ctx := context.Background()
	remote := billy.NewMemory()
	local := &spyFS{FS: billy.NewMemory()}
	opts := []Option{WithRemoteFS(remote), WithLocalFS(local)}

	require.NoError(t, SaveDataset(ctx, sampleFrame(), "s3://bucket/data/frame.parquet",
		append(opts, WithFormat("parquet"))...))
	require.NoError(t, SaveConfig(ctx, codec.Document{"k": "v"}, "s3://bucket/conf.yaml", opts...))

	exists, err := remote.Exists("bucket/data/frame.parquet")
	require.NoError(t, err)
	assert.True(t, exists, "prefix is stripped before reaching the backend")

	frame, err := ReadDataset(ctx, "s3://bucket/data/frame.parquet", opts...)
	require.NoError(t, err)
	assert.True(t, sampleFrame().Equal(frame))

	doc, err := ReadConfig(ctx, "s3://bucket/conf.yaml", opts...)
	require.NoError(t, err)
	assert.Equal(t, codec.Document{"k": "v"}, doc)

	assert.Zero(t, local.opens+local.creates, "local backend is never touched")
}

func TestRemoteInvalidConfig(t *testing.T) {
	_, err := ReadConfig(context.Background(), "s3://bucket/conf.yaml",
		WithConfig(config.Config{Provider: "gcs"}))
	require.Error(t, err)
	assert.Equal(t, errors.CodeBackendUnavailable, errors.GetCode(err))
	assert.True(t, errors.HasCode(err, errors.CodeInvalidConfig))
	assert.False(t, errors.IsRetryable(err))
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	spy := &spyFS{FS: billy.NewMemory()}
	err := SaveConfig(ctx, codec.Document{"a": 1}, "c.yaml", WithLocalFS(spy))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, spy.creates)
}

func TestWithOpenerIsReused(t *testing.T) {
	ctx := context.Background()
	opener := NewOpener(OpenerConfig{Local: billy.NewMemory(), Remote: billy.NewMemory()})

	require.NoError(t, SaveConfig(ctx, codec.Document{"a": 1}, "s3://b/a.yaml", WithOpener(opener)))
	doc, err := ReadConfig(ctx, "s3://b/a.yaml", WithOpener(opener))
	require.NoError(t, err)
	assert.Equal(t, codec.Document{"a": 1}, doc)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	mem := billy.NewMemory()

	require.NoError(t, SaveConfig(context.Background(), codec.Document{"a": 1}, "a.yaml",
		WithLocalFS(mem), WithLogger(logger)))

	out := buf.String()
	assert.Contains(t, out, "operation completed")
	assert.Contains(t, out, "op=save_config")
	assert.Contains(t, out, "path=a.yaml")
	assert.Contains(t, out, "backend=local")
	assert.Contains(t, out, "duration=")
}

func TestAWSEndpoint(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{"aws default", config.Config{Endpoint: "s3.amazonaws.com", UseSSL: true}, ""},
		{"empty", config.Config{}, ""},
		{"url kept", config.Config{Endpoint: "http://minio:9000"}, "http://minio:9000"},
		{"host with ssl", config.Config{Endpoint: "store.example.com", UseSSL: true}, "https://store.example.com"},
		{"host without ssl", config.Config{Endpoint: "localhost:9000"}, "http://localhost:9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, awsEndpoint(tt.cfg))
		})
	}
}
