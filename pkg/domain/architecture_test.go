package domain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDomainDoesNotImportInternal enforces that the domain layer stays free
// of internal implementation packages. The check reads import lines directly
// so the domain package itself never grows a tooling dependency.
func TestDomainDoesNotImportInternal(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("cannot get working dir: %v", err)
	}

	entries, err := os.ReadDir(wd)
	if err != nil {
		t.Fatalf("cannot read dir: %v", err)
	}

	violations := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(wd, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		inBlock := false
		for _, raw := range strings.Split(string(data), "\n") {
			line := strings.TrimSpace(raw)
			if !inBlock {
				if strings.HasPrefix(line, "import (") {
					inBlock = true
					continue
				}
				if strings.HasPrefix(line, "import ") {
					if q := quotedImport(line); strings.Contains(q, "/internal/") {
						violations++
						t.Errorf("domain package must not import internal packages: %s (%s)", q, name)
					}
				}
				continue
			}
			if line == ")" {
				inBlock = false
				continue
			}
			if q := quotedImport(line); strings.Contains(q, "/internal/") {
				violations++
				t.Errorf("domain package must not import internal packages: %s (%s)", q, name)
			}
		}
	}

	if violations > 0 {
		t.Fatalf("found %d forbidden internal imports in domain package", violations)
	}
}

// quotedImport returns the first double-quoted string literal in a line, or "".
func quotedImport(line string) string {
	start := strings.Index(line, "\"")
	if start == -1 {
		return ""
	}
	end := strings.Index(line[start+1:], "\"")
	if end == -1 {
		return ""
	}
	return line[start+1 : start+1+end]
}
