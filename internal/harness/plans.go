// internal/harness/plans.go
// Package: harness
package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultRuns is the number of runs per puzzle and combination.
const DefaultRuns = 40

// ErrUnknownPlan is returned by PlanByID for ids other than A, B and C.
var ErrUnknownPlan = errors.New("unknown experiment plan")

// PlanA varies the walk length S = 1..10 at threshold P = 9.
func PlanA() Plan {
	p := Plan{ID: "A", Description: "vary length random walk (S), P = 9"}
	for s := 1; s <= 10; s++ {
		p.Combinations = append(p.Combinations, Combination{WalkLength: s, Threshold: 9})
	}
	return p
}

// PlanB varies the threshold P = 7..15 at walk length S = 1.
func PlanB() Plan {
	p := Plan{ID: "B", Description: "vary threshold random walk (P), S = 1"}
	for t := 7; t <= 15; t++ {
		p.Combinations = append(p.Combinations, Combination{WalkLength: 1, Threshold: t})
	}
	return p
}

// PlanC crosses P in 7,9,..,15 with S in 1,3,..,9, P varying slowest.
func PlanC() Plan {
	p := Plan{ID: "C", Description: "vary S and P together"}
	for t := 7; t <= 15; t += 2 {
		for s := 1; s <= 9; s += 2 {
			p.Combinations = append(p.Combinations, Combination{WalkLength: s, Threshold: t})
		}
	}
	return p
}

// PlanByID returns the built-in plan with the given id (case-insensitive).
func PlanByID(id string) (Plan, error) {
	switch strings.ToUpper(strings.TrimSpace(id)) {
	case "A":
		return PlanA(), nil
	case "B":
		return PlanB(), nil
	case "C":
		return PlanC(), nil
	}
	return Plan{}, fmt.Errorf("%w %q: choose A, B or C", ErrUnknownPlan, id)
}

// LoadPlan reads a custom plan from a YAML file.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("could not read plan file: %w", err)
	}
	var p Plan
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Plan{}, fmt.Errorf("could not parse plan file %s: %w", path, err)
	}
	if p.ID == "" {
		p.ID = "custom"
	}
	if err := p.Validate(); err != nil {
		return Plan{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks that the plan has at least one usable combination.
func (p Plan) Validate() error {
	if len(p.Combinations) == 0 {
		return errors.New("plan needs at least one combination")
	}
	if p.Runs < 0 {
		return fmt.Errorf("plan runs must be >= 0, got %d", p.Runs)
	}
	for i, c := range p.Combinations {
		if c.WalkLength < 0 || c.Threshold < 1 {
			return fmt.Errorf("combination %d: need s >= 0 and p >= 1, got s=%d p=%d", i+1, c.WalkLength, c.Threshold)
		}
	}
	return nil
}
