// Package registry provides a global registry of game variants.
// Variants register themselves in init() functions, so hosts can list and
// instantiate them without importing each game package directly.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/handheld-arcade/internal/engine"
)

// VariantInfo contains metadata about a registered variant.
type VariantInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh variant. Every session gets its own instance.
type Factory func() engine.Variant

type entry struct {
	info   VariantInfo
	create Factory
}

var (
	mu       sync.RWMutex
	variants = map[string]entry{}
)

// Register adds a variant under id. The factory is called once here to
// read the title. Registering the same id twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := variants[id]; dup {
		panic(fmt.Sprintf("registry: variant %q already registered", id))
	}
	variants[id] = entry{info: VariantInfo{ID: id, Title: f().Title()}, create: f}
}

// List returns every registered variant ordered by id.
func List() []VariantInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]VariantInfo, 0, len(variants))
	for _, e := range variants {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b VariantInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Create returns a new instance of the variant registered under id.
func Create(id string) (engine.Variant, error) {
	mu.RLock()
	e, ok := variants[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown variant %q", id)
	}
	return e.create(), nil
}

func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := variants[id]
	return ok
}
