// Package scenario loads scripted runs for the tally store: a name, an
// initial state and the actions to dispatch in order.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/comalice/storex"
	"github.com/comalice/storex/tally"
)

// ErrUnsupportedFormat is returned for scenario files that are neither YAML
// nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported scenario format")

// Scenario is a scripted run.
type Scenario struct {
	Name    string   `yaml:"name" toml:"name"`
	Initial int      `yaml:"initial" toml:"initial"`
	Actions []string `yaml:"actions" toml:"actions"`
}

// Default returns the demonstration run: ADD, ADD, SUBTRACT, RESET from 0.
func Default() *Scenario {
	return &Scenario{
		Name:    "demo",
		Initial: tally.Initial,
		Actions: []string{tally.Add, tally.Add, tally.Subtract, tally.Reset},
	}
}

// Load reads a scenario file. The format is chosen by extension:
// .yaml/.yml or .toml.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	s, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario in the given format ("yaml" or "toml") and
// validates it.
func Parse(data []byte, format string) (*Scenario, error) {
	s := &Scenario{}

	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validate scenario: %w", err)
	}
	return s, nil
}

// Validate checks the scenario. Unknown action names are allowed; they
// reduce to the identity.
func (s *Scenario) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("name is required")
	}
	for i, a := range s.Actions {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("action %d is blank", i)
		}
	}
	return nil
}

// Dispatchable converts the action names into store actions.
func (s *Scenario) Dispatchable() []storex.Action {
	out := make([]storex.Action, 0, len(s.Actions))
	for _, name := range s.Actions {
		out = append(out, tally.ParseAction(name))
	}
	return out
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return strings.TrimPrefix(filepath.Ext(path), ".")
	}
}
