package fstest

import (
	"testing"

	"github.com/jmgilman/go/filehandler/fs/core"
)

// TestAtomicFS checks core.CreateFor: committed writes appear, aborted writes
// leave the previous content in place. Providers without AtomicFS still pass
// the commit case; the abort case is skipped for them.
func TestAtomicFS(t *testing.T, filesystem core.FS, config FSTestConfig) {
	_, atomic := filesystem.(core.AtomicFS)

	runCases(t, "AtomicFS", config, map[string]func(*testing.T){
		"Commit": func(t *testing.T) {
			f, err := core.CreateFor(filesystem, "atomic/commit.csv")
			if err != nil {
				t.Fatalf("CreateFor(): got error %v", err)
			}
			if _, err := f.Write([]byte("a\n1\n")); err != nil {
				t.Fatalf("Write(): got error %v", err)
			}
			if err := f.Close(); err != nil {
				t.Fatalf("Close(): got error %v", err)
			}
			assertContent(t, filesystem, "atomic/commit.csv", "a\n1\n")
		},
		"AbortKeepsOriginal": func(t *testing.T) {
			if !atomic {
				t.Skip("provider does not implement core.AtomicFS")
			}
			if err := filesystem.MkdirAll("atomic", 0o755); err != nil {
				t.Fatalf("MkdirAll(): setup failed: %v", err)
			}
			if err := filesystem.WriteFile("atomic/abort.csv", []byte("original"), 0o644); err != nil {
				t.Fatalf("WriteFile(): setup failed: %v", err)
			}
			f, err := core.CreateFor(filesystem, "atomic/abort.csv")
			if err != nil {
				t.Fatalf("CreateFor(): got error %v", err)
			}
			_, _ = f.Write([]byte("partial"))
			if err := f.Abort(); err != nil {
				t.Fatalf("Abort(): got error %v", err)
			}
			if err := f.Close(); err != nil {
				t.Errorf("Close() after Abort(): got error %v, want nil", err)
			}
			assertContent(t, filesystem, "atomic/abort.csv", "original")
		},
		"AbortNewFileLeavesNothing": func(t *testing.T) {
			if !atomic {
				t.Skip("provider does not implement core.AtomicFS")
			}
			f, err := core.CreateFor(filesystem, "atomic/never.csv")
			if err != nil {
				t.Fatalf("CreateFor(): got error %v", err)
			}
			_, _ = f.Write([]byte("partial"))
			if err := f.Abort(); err != nil {
				t.Fatalf("Abort(): got error %v", err)
			}
			if ok, _ := filesystem.Exists("atomic/never.csv"); ok {
				t.Error("Exists() after Abort() = true, want false")
			}
		},
	})
}
