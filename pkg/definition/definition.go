// Package definition loads agents described in YAML (or JSON) files and
// compiles them into hierarchical utility state machines.
//
// Scores are expr-lang expressions evaluated against the agent's fact frame:
//
//	goals:
//	  - state: chase
//	    factors:
//	      - {expr: "visible ? 1 : 0", weight: 2}
//	      - {expr: "1 - distance / 100", weight: 1}
package definition

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Definition is a complete agent description.
type Definition struct {
	Name        string       `json:"name" mapstructure:"name"`
	Initial     string       `json:"initial" mapstructure:"initial"`
	States      []string     `json:"states" mapstructure:"states"`
	Goals       []Goal       `json:"goals" mapstructure:"goals"`
	Transitions []Transition `json:"transitions" mapstructure:"transitions"`
	SubGoals    []Block      `json:"subgoals" mapstructure:"subgoals"`
}

// Goal is a goal evaluator. Either Score or Factors must be set.
type Goal struct {
	State   string   `json:"state" mapstructure:"state"`
	Score   string   `json:"score" mapstructure:"score"`
	Factors []Factor `json:"factors" mapstructure:"factors"`
}

// Factor is one weighted expression of a composite score.
type Factor struct {
	Expr   string  `json:"expr" mapstructure:"expr"`
	Weight float32 `json:"weight" mapstructure:"weight"`
}

// Transition is a scored edge. Without a score it is always taken.
// Inside a sub-goal block, an empty From defaults to the block's state.
type Transition struct {
	From     string   `json:"from" mapstructure:"from"`
	To       string   `json:"to" mapstructure:"to"`
	Priority int      `json:"priority" mapstructure:"priority"`
	Score    string   `json:"score" mapstructure:"score"`
	Factors  []Factor `json:"factors" mapstructure:"factors"`
}

// Block is the sub-machine owned by State.
type Block struct {
	State       string       `json:"state" mapstructure:"state"`
	Goals       []Goal       `json:"goals" mapstructure:"goals"`
	Transitions []Transition `json:"transitions" mapstructure:"transitions"`
	SubGoals    []Block      `json:"subgoals" mapstructure:"subgoals"`
}

// Load reads a definition from path. Files ending in .json are read as
// JSON, anything else as YAML.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		return decode(raw)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return def, nil
}

// Parse decodes a YAML definition.
func Parse(data []byte) (*Definition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	return decode(raw)
}

// decode maps a generic document onto a Definition. Numbers written as
// strings are accepted and unknown keys are rejected.
func decode(raw map[string]any) (*Definition, error) {
	var def Definition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &def,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}
	return &def, nil
}
