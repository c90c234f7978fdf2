package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/herdsim/herdsim/internal/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioYAML = `
entities:
  - name: bessie
    position: {x: 0, y: 0}
    target: {x: 2, y: 4}
    speed: {x: 1, y: 2}
    inventory: true
  - name: statue
    position: {x: -3, y: 7}
assets:
  - position: {x: 2, y: 4}
    kind: apple
    amount: 5
  - position: {x: 1, y: 2}
    kind: pear
    amount: 2
`

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	assert.Equal(t, 3, c.Count())
	assert.True(t, c.Has(component.Apple))
	assert.False(t, c.Has("pear"))

	c.Extend("pear", component.Apple)
	assert.Equal(t, 4, c.Count())
	assert.Equal(t, []component.AssetKind{component.Apple, component.Banana, component.Orange, "pear"}, c.Kinds())
}

func TestParseScenario(t *testing.T) {
	cat := NewCatalog()
	cat.Extend("pear")

	s, err := ParseScenario([]byte(scenarioYAML), cat)
	require.NoError(t, err)
	require.Len(t, s.Entities, 2)

	bessie := s.Entities[0]
	assert.Equal(t, "bessie", bessie.Name)
	require.NotNil(t, bessie.Target)
	assert.Equal(t, component.Position{X: 2, Y: 4}, *bessie.Target)
	assert.Equal(t, component.Speed{X: 1, Y: 2}, bessie.Speed)
	assert.True(t, bessie.Inventory)

	statue := s.Entities[1]
	assert.Nil(t, statue.Target)
	assert.Equal(t, component.Position{X: -3, Y: 7}, statue.Position)
	assert.False(t, statue.Inventory)

	require.Len(t, s.Assets, 2)
	assert.Equal(t, component.Apple, s.Assets[0].Kind)
	assert.Equal(t, uint64(7), s.TotalAssets())
}

func TestParseScenarioRejectsUnknownKind(t *testing.T) {
	_, err := ParseScenario([]byte(scenarioYAML), NewCatalog())
	require.ErrorContains(t, err, `unknown kind "pear"`)
}

func TestParseScenarioRejectsBadYAML(t *testing.T) {
	_, err := ParseScenario([]byte("entities: [\n"), NewCatalog())
	require.Error(t, err)
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assets:\n  - {position: {x: 1, y: 1}, kind: orange, amount: 3}\n"), 0o644))

	s, err := LoadScenario(path, NewCatalog())
	require.NoError(t, err)
	assert.Empty(t, s.Entities)
	assert.Equal(t, uint64(3), s.TotalAssets())

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"), NewCatalog())
	require.Error(t, err)
}
