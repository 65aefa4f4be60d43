// Package registry tracks the known inference tool families. The pipeline
// consults it before declaring any task, so a configuration that requests a
// family with no registered builder fails fast as a configuration error.
package registry

import (
	"context"
	"fmt"

	"github.com/seqforest/gcpipe/internal/ctxlog"
)

// Entry describes one registered tool family.
type Entry struct {
	// Name is the family name as it appears in the configuration.
	Name string
	// Description is a one-line human-readable summary, shown in the plan.
	Description string
}

// Registry is the set of tool families the pipeline knows how to build.
type Registry struct {
	entries map[string]Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds a family entry. Registering the same name twice is a
// programmer error and panics.
func (r *Registry) Register(e Entry) {
	if e.Name == "" {
		panic("registry: entry name must not be empty")
	}
	if _, exists := r.entries[e.Name]; exists {
		panic(fmt.Sprintf("registry: family %q registered twice", e.Name))
	}
	r.entries[e.Name] = e
}

// Lookup returns the entry for the named family.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Validate checks that every enabled family has a registered builder.
// A missing family is a fatal configuration error raised before any
// external process runs.
func (r *Registry) Validate(ctx context.Context, enabled []string) error {
	logger := ctxlog.FromContext(ctx)
	for _, name := range enabled {
		if _, ok := r.entries[name]; !ok {
			return fmt.Errorf("configuration requests unknown tool family %q", name)
		}
	}
	logger.Debug("Registry validation passed.", "enabled", enabled)
	return nil
}
