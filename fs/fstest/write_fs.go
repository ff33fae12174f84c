package fstest

import (
	"testing"

	"github.com/jmgilman/go/filehandler/fs/core"
)

// TestWriteFS checks Create, WriteFile and MkdirAll.
func TestWriteFS(t *testing.T, filesystem core.FS, config FSTestConfig) {
	runCases(t, "WriteFS", config, map[string]func(*testing.T){
		"CreateAndWrite": func(t *testing.T) {
			f, err := filesystem.Create("created.yaml")
			if err != nil {
				t.Fatalf("Create(): got error %v", err)
			}
			if _, err := f.Write([]byte("test1: 1\n")); err != nil {
				t.Fatalf("Write(): got error %v", err)
			}
			if err := f.Close(); err != nil {
				t.Fatalf("Close(): got error %v", err)
			}
			assertContent(t, filesystem, "created.yaml", "test1: 1\n")
		},
		"CreateTruncates": func(t *testing.T) {
			if err := filesystem.WriteFile("trunc.txt", []byte("a much longer original"), 0o644); err != nil {
				t.Fatalf("WriteFile(): setup failed: %v", err)
			}
			f, err := filesystem.Create("trunc.txt")
			if err != nil {
				t.Fatalf("Create(): got error %v", err)
			}
			_, _ = f.Write([]byte("short"))
			if err := f.Close(); err != nil {
				t.Fatalf("Close(): got error %v", err)
			}
			assertContent(t, filesystem, "trunc.txt", "short")
		},
		"WriteFileNested": func(t *testing.T) {
			if err := filesystem.MkdirAll("a/b", 0o755); err != nil {
				t.Fatalf("MkdirAll(): got error %v", err)
			}
			if err := filesystem.WriteFile("a/b/c.txt", []byte("nested"), 0o644); err != nil {
				t.Fatalf("WriteFile(): got error %v", err)
			}
			assertContent(t, filesystem, "a/b/c.txt", "nested")
		},
		"MkdirAllIdempotent": func(t *testing.T) {
			for i := 0; i < 2; i++ {
				if err := filesystem.MkdirAll("x/y", 0o755); err != nil {
					t.Fatalf("MkdirAll() call %d: got error %v", i, err)
				}
			}
		},
	})
}

func assertContent(t *testing.T, filesystem core.FS, name, want string) {
	t.Helper()
	got, err := filesystem.ReadFile(name)
	if err != nil {
		t.Fatalf("ReadFile(%q): got error %v", name, err)
	}
	if string(got) != want {
		t.Errorf("ReadFile(%q) = %q, want %q", name, got, want)
	}
}
