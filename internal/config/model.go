// Package config defines the tool configuration for a pipeline run and its
// HCL loader. The model is the format-agnostic result of loading: which
// inference families are enabled and with which parameters. It is read-only
// during graph construction.
package config

// Model is the unified representation of the pipeline configuration.
// A nil family pointer means the family is disabled.
type Model struct {
	// NaiveID labels the ancestral (outgroup root) sequence. Every family's
	// command templates reference it, so it is validated up front.
	NaiveID string

	Dnaml    *Dnaml
	Dnapars  *Dnapars
	GCtree   *GCtree
	SammRank *SammRank
	IQTree   *IQTree
	FastML   *FastML
	IgPhyML  *IgPhyML
}

// Dnaml enables the PHYLIP maximum-likelihood tree family.
type Dnaml struct{}

// Dnapars enables the PHYLIP parsimony tree family.
type Dnapars struct {
	// Quick requests the faster, less thorough dnapars search.
	Quick bool
}

// GCtree enables branching-process ranking of the dnapars parsimony forest.
type GCtree struct{}

// SammRank enables motif-model re-ranking of the parsimony forest. Both
// reference tables are required.
type SammRank struct {
	Mutability   string
	Substitution string
}

// IQTree enables one independent IQ-TREE inference per options string.
// An empty options list disables the family.
type IQTree struct {
	Options []string
}

// FastML enables FastML ancestral reconstruction in marginal and joint modes.
type FastML struct{}

// IgPhyML enables the five-stage IgPhyML topology and motif refinement chain.
type IgPhyML struct{}

// FastML reconstruction modes, in declaration order.
var FastMLModes = []string{"marginal", "joint"}

// Family names in fixed evaluation order. The aggregator preserves this
// order in its terminal artifact list.
const (
	FamilyDnaml    = "dnaml"
	FamilyDnapars  = "dnapars"
	FamilyGCtree   = "gctree"
	FamilySammRank = "samm_rank"
	FamilyIQTree   = "iqtree"
	FamilyFastML   = "fastml"
	FamilyIgPhyML  = "igphyml"
)

// FamilyOrder is the fixed evaluation order of the tool families.
var FamilyOrder = []string{
	FamilyDnaml,
	FamilyDnapars,
	FamilyGCtree,
	FamilySammRank,
	FamilyIQTree,
	FamilyFastML,
	FamilyIgPhyML,
}

// Enabled reports whether the named family is requested by this model.
// IQTree with an empty options list counts as disabled.
func (m *Model) Enabled(family string) bool {
	switch family {
	case FamilyDnaml:
		return m.Dnaml != nil
	case FamilyDnapars:
		return m.Dnapars != nil
	case FamilyGCtree:
		return m.GCtree != nil
	case FamilySammRank:
		return m.SammRank != nil
	case FamilyIQTree:
		return m.IQTree != nil && len(m.IQTree.Options) > 0
	case FamilyFastML:
		return m.FastML != nil
	case FamilyIgPhyML:
		return m.IgPhyML != nil
	}
	return false
}

// EnabledFamilies returns the requested family names in evaluation order.
func (m *Model) EnabledFamilies() []string {
	var out []string
	for _, f := range FamilyOrder {
		if m.Enabled(f) {
			out = append(out, f)
		}
	}
	return out
}
