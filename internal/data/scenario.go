package data

import (
	"fmt"
	"os"

	"github.com/herdsim/herdsim/internal/component"
	"gopkg.in/yaml.v3"
)

// EntityEntry describes one entity to spawn.
type EntityEntry struct {
	Name      string              `yaml:"name"`
	Position  component.Position  `yaml:"position"`
	Target    *component.Position `yaml:"target"` // nil: stays at position
	Speed     component.Speed     `yaml:"speed"`
	Inventory bool                `yaml:"inventory"`
}

// AssetEntry describes one asset lying on the world map.
type AssetEntry struct {
	Position component.Position  `yaml:"position"`
	Kind     component.AssetKind `yaml:"kind"`
	Amount   uint64              `yaml:"amount"`
}

// Scenario is the initial state of a simulation.
type Scenario struct {
	Entities []EntityEntry `yaml:"entities"`
	Assets   []AssetEntry  `yaml:"assets"`
}

// LoadScenario loads a scenario file and checks every asset kind against cat.
func LoadScenario(path string, cat *Catalog) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(raw, cat)
}

// ParseScenario decodes scenario YAML.
func ParseScenario(raw []byte, cat *Catalog) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	for i, a := range s.Assets {
		if !cat.Has(a.Kind) {
			return nil, fmt.Errorf("scenario asset %d at (%d,%d): unknown kind %q", i, a.Position.X, a.Position.Y, a.Kind)
		}
	}
	return &s, nil
}

// TotalAssets returns the summed amount of every asset in the scenario.
func (s *Scenario) TotalAssets() uint64 {
	var n uint64
	for _, a := range s.Assets {
		n += a.Amount
	}
	return n
}
