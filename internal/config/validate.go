package config

import (
	"fmt"
	"strings"
)

// Validate checks the model for configuration errors. It runs during
// loading, before any task is declared, so a malformed configuration can
// never start an external process.
func (m *Model) Validate() error {
	if strings.TrimSpace(m.NaiveID) == "" {
		return fmt.Errorf("pipeline.naive_id is required: every inference family roots its tree on the naive sequence")
	}
	if m.SammRank != nil {
		if m.SammRank.Mutability == "" || m.SammRank.Substitution == "" {
			return fmt.Errorf("samm_rank requires both mutability and substitution table paths")
		}
	}
	if m.IQTree != nil {
		for i, opt := range m.IQTree.Options {
			if strings.TrimSpace(opt) == "" {
				return fmt.Errorf("iqtree.options[%d] is empty", i)
			}
		}
	}
	return nil
}
