package rules

import (
	"os"
	"path/filepath"
	"testing"

	"caseflow/internal/errors"
)

func TestDefaultEngineIsValid(t *testing.T) {
	engine, err := DefaultEngine()
	if err != nil {
		t.Fatalf("embedded default rule set failed validation: %v", err)
	}
	if engine.Version() != "1.0" {
		t.Errorf("version = %q, want 1.0", engine.Version())
	}

	groups := engine.Groups()
	if len(groups) != 5 {
		t.Fatalf("group count = %d, want 5", len(groups))
	}
	for i := 1; i < len(groups); i++ {
		if groups[i].Priority < groups[i-1].Priority {
			t.Errorf("groups not sorted by priority: %q (%d) after %q (%d)",
				groups[i].Name, groups[i].Priority, groups[i-1].Name, groups[i-1].Priority)
		}
	}
	if groups[0].Name != "safety_rules" {
		t.Errorf("first group = %q, want safety_rules", groups[0].Name)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("rule_groups: [unbalanced"))
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if errors.GetCode(err) != errors.CodeRuleInvalid {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.CodeRuleInvalid)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(path, defaultsYAML, 0o644); err != nil {
		t.Fatal(err)
	}

	engine, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(engine.Groups()) == 0 {
		t.Error("loaded engine has no groups")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
