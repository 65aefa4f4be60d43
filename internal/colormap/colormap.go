// Package colormap loads the optional sequence→color annotation file used
// when rendering collapsed trees.
package colormap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Map assigns a display color to a sequence identifier.
type Map map[string]string

// Load reads a YAML colormap file. The format is a flat mapping:
//
//	seq42: "#1f77b4"
//	naive0: black
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading colormap %s: %w", path, err)
	}
	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing colormap %s: %w", path, err)
	}
	for id, color := range m {
		if color == "" {
			return nil, fmt.Errorf("colormap %s: empty color for sequence %q", path, id)
		}
	}
	return m, nil
}
