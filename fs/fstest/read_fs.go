package fstest

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/filehandler/fs/core"
)

// TestReadFS checks Open, Stat, ReadFile and Exists.
func TestReadFS(t *testing.T, filesystem core.FS, config FSTestConfig) {
	content := []byte("col_a,col_b\n1,2\n")
	if err := filesystem.MkdirAll("readdir", 0o755); err != nil {
		t.Fatalf("MkdirAll(readdir): setup failed: %v", err)
	}
	if err := filesystem.WriteFile("readdir/data.csv", content, 0o644); err != nil {
		t.Fatalf("WriteFile(readdir/data.csv): setup failed: %v", err)
	}

	runCases(t, "ReadFS", config, map[string]func(*testing.T){
		"Open": func(t *testing.T) {
			f, err := filesystem.Open("readdir/data.csv")
			if err != nil {
				t.Fatalf("Open(): got error %v, want nil", err)
			}
			defer func() { _ = f.Close() }()

			got, err := io.ReadAll(f)
			if err != nil {
				t.Fatalf("ReadAll(): got error %v", err)
			}
			if string(got) != string(content) {
				t.Errorf("Open() content = %q, want %q", got, content)
			}
		},
		"OpenNotExist": func(t *testing.T) {
			_, err := filesystem.Open("readdir/missing.csv")
			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("Open(missing): got %v, want fs.ErrNotExist", err)
			}
		},
		"Stat": func(t *testing.T) {
			info, err := filesystem.Stat("readdir/data.csv")
			if err != nil {
				t.Fatalf("Stat(): got error %v", err)
			}
			if info.Size() != int64(len(content)) {
				t.Errorf("Stat().Size() = %d, want %d", info.Size(), len(content))
			}
			if info.IsDir() {
				t.Error("Stat().IsDir() = true, want false")
			}
		},
		"ReadFile": func(t *testing.T) {
			got, err := filesystem.ReadFile("readdir/data.csv")
			if err != nil {
				t.Fatalf("ReadFile(): got error %v", err)
			}
			if string(got) != string(content) {
				t.Errorf("ReadFile() = %q, want %q", got, content)
			}
		},
		"Exists": func(t *testing.T) {
			ok, err := filesystem.Exists("readdir/data.csv")
			if err != nil || !ok {
				t.Errorf("Exists(file) = %v, %v; want true, nil", ok, err)
			}
			ok, err = filesystem.Exists("readdir/missing.csv")
			if err != nil || ok {
				t.Errorf("Exists(missing) = %v, %v; want false, nil", ok, err)
			}
		},
	})
}
