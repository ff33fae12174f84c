package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/filehandler/fs/core"
)

// TestManageFS checks Remove and Rename.
func TestManageFS(t *testing.T, filesystem core.FS, config FSTestConfig) {
	runCases(t, "ManageFS", config, map[string]func(*testing.T){
		"RemoveFile": func(t *testing.T) {
			if err := filesystem.WriteFile("remove.txt", []byte("x"), 0o644); err != nil {
				t.Fatalf("WriteFile(): setup failed: %v", err)
			}
			if err := filesystem.Remove("remove.txt"); err != nil {
				t.Fatalf("Remove(): got error %v", err)
			}
			if ok, _ := filesystem.Exists("remove.txt"); ok {
				t.Error("Exists() after Remove() = true, want false")
			}
		},
		"RemoveNotExist": func(t *testing.T) {
			err := filesystem.Remove("never-existed.txt")
			if config.IdempotentDelete {
				if err != nil {
					t.Errorf("Remove(missing): got %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("Remove(missing): got %v, want fs.ErrNotExist", err)
			}
		},
		"RenameReplaces": func(t *testing.T) {
			if err := filesystem.WriteFile("from.txt", []byte("new"), 0o644); err != nil {
				t.Fatalf("WriteFile(from): setup failed: %v", err)
			}
			if err := filesystem.WriteFile("to.txt", []byte("old"), 0o644); err != nil {
				t.Fatalf("WriteFile(to): setup failed: %v", err)
			}
			if err := filesystem.Rename("from.txt", "to.txt"); err != nil {
				t.Fatalf("Rename(): got error %v", err)
			}
			assertContent(t, filesystem, "to.txt", "new")
			if ok, _ := filesystem.Exists("from.txt"); ok {
				t.Error("Exists(from) after Rename() = true, want false")
			}
		},
	})
}
