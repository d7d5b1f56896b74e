package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario describes a concurrency workload to run against one container
// kind: how many goroutines hammer it, how many operations each one issues,
// and the relative weight of each operation kind.
type Scenario struct {
	Container       string         `yaml:"container"`
	Capacity        int            `yaml:"capacity"`
	Goroutines      int            `yaml:"goroutines"`
	OpsPerGoroutine int            `yaml:"opsPerGoroutine"`
	Mix             map[string]int `yaml:"mix"`
}

// LoadScenario reads and validates a YAML scenario file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-supplied by design, this is a CLI tool
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	var s Scenario

	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("parsing scenario %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	return s, nil
}

// Validate reports whether the scenario is well-formed enough to run.
func (s Scenario) Validate() error {
	switch s.Container {
	case "bucket", "hashbucket", "fixeddeque", "deque":
	default:
		return fmt.Errorf("%w: container must be one of bucket, hashbucket, fixeddeque, deque, got %q", errInvalidScenario, s.Container)
	}

	if s.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be positive", errInvalidScenario)
	}

	if s.Goroutines < 1 {
		return fmt.Errorf("%w: goroutines must be positive", errInvalidScenario)
	}

	if s.OpsPerGoroutine < 1 {
		return fmt.Errorf("%w: opsPerGoroutine must be positive", errInvalidScenario)
	}

	if len(s.Mix) == 0 {
		return fmt.Errorf("%w: mix must name at least one operation", errInvalidScenario)
	}

	total := 0
	for _, w := range s.Mix {
		total += w
	}

	if total <= 0 {
		return fmt.Errorf("%w: mix weights must sum to a positive number", errInvalidScenario)
	}

	return nil
}
