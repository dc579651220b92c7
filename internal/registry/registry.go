// Package registry provides a global registry of named automaton rules.
// Presets register themselves in init() functions, allowing the platform
// to list and look them up without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-cca/internal/cca"
)

// Preset is a named rule.
type Preset struct {
	ID    string // Unique identifier used on the command line, e.g. "lava-lamp"
	Title string // Human-readable name, e.g. "Lava Lamp"
	Rule  cca.Rule
}

var (
	presets = make(map[string]Preset)
	mu      sync.RWMutex
)

// Register adds a preset to the registry.
// Typically called from an init() function.
// Panics if a preset with the same ID is already registered or the rule
// is invalid.
func Register(p Preset) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := presets[p.ID]; exists {
		panic(fmt.Sprintf("registry: preset %q already registered", p.ID))
	}
	if err := p.Rule.Validate(); err != nil {
		panic(fmt.Sprintf("registry: preset %q: %v", p.ID, err))
	}

	presets[p.ID] = p
}

// List returns all registered presets, sorted by ID.
func List() []Preset {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Preset, 0, len(presets))
	for _, p := range presets {
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the preset with the given ID.
// Returns an error if the ID is not registered.
func Lookup(id string) (Preset, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := presets[id]
	if !ok {
		return Preset{}, fmt.Errorf("registry: unknown preset %q", id)
	}

	return p, nil
}

// Exists checks if a preset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := presets[id]
	return ok
}
