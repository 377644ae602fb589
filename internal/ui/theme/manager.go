package theme

import (
	"maps"
	"slices"
	"sync"
)

// DefaultName is the palette used when no theme is configured.
const DefaultName = "tokyonight"

var registry = struct {
	mu          sync.RWMutex
	palettes    map[string]Palette
	currentName string
}{
	palettes: make(map[string]Palette),
}

// Register adds a palette. Registering DefaultName, or the first palette,
// also makes it current.
func Register(name string, p Palette) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.palettes[name] = p
	if registry.currentName == "" || name == DefaultName {
		registry.currentName = name
	}
}

// Set switches to a registered palette. It reports whether name was found.
func Set(name string) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, ok := registry.palettes[name]; !ok {
		return false
	}
	registry.currentName = name
	return true
}

// Current returns the active palette.
func Current() Palette {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.palettes[registry.currentName]
}

// CurrentName returns the name of the active palette.
func CurrentName() string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.currentName
}

// Available returns the registered palette names, sorted.
func Available() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return slices.Sorted(maps.Keys(registry.palettes))
}

// Cycle switches to the next palette in sorted order and returns its name.
func Cycle() string {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	names := slices.Sorted(maps.Keys(registry.palettes))
	if len(names) == 0 {
		return ""
	}
	next := 0
	if i := slices.Index(names, registry.currentName); i >= 0 {
		next = (i + 1) % len(names)
	}
	registry.currentName = names[next]
	return registry.currentName
}
