package definition

import (
	"context"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/arbor/pkg/blackboard"
)

// Scenario is a scripted fact timeline driving a simulation.
type Scenario struct {
	Ticks int    `mapstructure:"ticks"`
	Steps []Step `mapstructure:"facts"`
}

// Step changes facts before tick At runs.
type Step struct {
	At     int            `mapstructure:"at"`
	Set    map[string]any `mapstructure:"set"`
	Delete []string       `mapstructure:"delete"`
}

// LoadScenario reads a YAML scenario.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a YAML scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	var sc Scenario
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &sc,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &sc, nil
}

// Apply writes the steps scheduled for tick into bb.
func (s *Scenario) Apply(ctx context.Context, tick int, bb blackboard.Blackboard) error {
	for _, step := range s.Steps {
		if step.At != tick {
			continue
		}
		if err := blackboard.SetAll(ctx, bb, step.Set); err != nil {
			return fmt.Errorf("tick %d: %w", tick, err)
		}
		for _, k := range step.Delete {
			if err := bb.Delete(ctx, k); err != nil {
				return fmt.Errorf("tick %d: %w", tick, err)
			}
		}
	}
	return nil
}
