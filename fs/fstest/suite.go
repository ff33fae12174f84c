// Package fstest provides a conformance suite for core.FS providers.
//
// Every backend package runs the suite against a fresh filesystem:
//
//	func TestConformance(t *testing.T) {
//	    fstest.TestSuite(t, func() core.FS { return billy.NewMemory() })
//	}
//
// The suite checks the contract the filehandler facade depends on, not
// backend-specific behavior; FSTestConfig describes known differences.
package fstest

import (
	"testing"

	"github.com/jmgilman/go/filehandler/fs/core"
)

// FSTestConfig describes behavior that legitimately differs between providers.
type FSTestConfig struct {
	// VirtualDirectories indicates directories are key prefixes (S3) and
	// cannot be stat'd or removed directly.
	VirtualDirectories bool

	// IdempotentDelete indicates Remove on a missing file succeeds.
	IdempotentDelete bool

	// SkipTests lists "Group/SubTest" names to skip.
	SkipTests []string
}

// POSIXTestConfig returns configuration for local and in-memory filesystems.
func POSIXTestConfig() FSTestConfig {
	return FSTestConfig{}
}

// S3TestConfig returns configuration for object stores.
func S3TestConfig() FSTestConfig {
	return FSTestConfig{
		VirtualDirectories: true,
		IdempotentDelete:   true,
	}
}

func (c FSTestConfig) skip(t *testing.T, name string) {
	t.Helper()
	for _, s := range c.SkipTests {
		if s == name {
			t.Skip("skipped by provider configuration")
		}
	}
}

// TestSuite runs the suite with POSIXTestConfig.
func TestSuite(t *testing.T, newFS func() core.FS) {
	TestSuiteWithConfig(t, newFS, POSIXTestConfig())
}

// TestSuiteWithConfig runs every group against a fresh filesystem from newFS.
func TestSuiteWithConfig(t *testing.T, newFS func() core.FS, config FSTestConfig) {
	groups := []struct {
		name string
		run  func(*testing.T, core.FS, FSTestConfig)
	}{
		{"ReadFS", TestReadFS},
		{"WriteFS", TestWriteFS},
		{"ManageFS", TestManageFS},
		{"AtomicFS", TestAtomicFS},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			config.skip(t, g.name)
			g.run(t, newFS(), config)
		})
	}
}

// runCases runs named subtests, honoring config.SkipTests.
func runCases(t *testing.T, group string, config FSTestConfig, cases map[string]func(*testing.T)) {
	t.Helper()
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			config.skip(t, group+"/"+name)
			fn(t)
		})
	}
}
