package rules

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"caseflow/domain/rules"
	"caseflow/internal/errors"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Parse decodes a YAML rule set without validating it; pair with NewEngine.
func Parse(data []byte) (rules.RuleSet, error) {
	var set rules.RuleSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return rules.RuleSet{}, errors.RuleInvalid(fmt.Sprintf("rule config is not valid YAML: %v", err))
	}
	return set, nil
}

// LoadFile parses and validates a rule set from disk.
func LoadFile(path string) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading rule config %s", path)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return NewEngine(set)
}

// DefaultEngine builds the embedded default rule set. It is validated in
// tests, so failures indicate a broken build rather than bad input.
func DefaultEngine() (*Engine, error) {
	set, err := Parse(defaultsYAML)
	if err != nil {
		return nil, err
	}
	return NewEngine(set)
}
