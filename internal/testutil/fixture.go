package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/regexplainer/regexplain/internal/fixture"
)

// TestdataDir walks up from the working directory to the module root and
// returns its testdata/<sub> directory.
func TestdataDir(t testing.TB, sub string) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "testdata", sub)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("module root not found")
		}
		dir = parent
	}
}

// LoadFixtures reads every fixture file in testdata/<sub>.
func LoadFixtures(t testing.TB, sub string) []fixture.Case {
	t.Helper()
	cases, err := fixture.Glob(TestdataDir(t, sub))
	if err != nil {
		t.Fatalf("failed to load fixtures %s: %v", sub, err)
	}
	if len(cases) == 0 {
		t.Fatalf("no fixtures in testdata/%s", sub)
	}
	return cases
}
