package config

import "github.com/hashicorp/hcl/v2"

// HCL schema structs. These mirror the configuration file byte-for-byte and
// are translated into the format-agnostic Model by the loader. Attributes
// that accept expressions stay as hcl.Expression and are evaluated during
// translation.

type fileSchema struct {
	Pipeline *pipelineSchema `hcl:"pipeline,block"`
}

type pipelineSchema struct {
	NaiveID hcl.Expression `hcl:"naive_id,optional"`

	Dnaml    *emptySchema    `hcl:"dnaml,block"`
	Dnapars  *dnaparsSchema  `hcl:"dnapars,block"`
	GCtree   *emptySchema    `hcl:"gctree,block"`
	SammRank *sammRankSchema `hcl:"samm_rank,block"`
	IQTree   *iqtreeSchema   `hcl:"iqtree,block"`
	FastML   *emptySchema    `hcl:"fastml,block"`
	IgPhyML  *emptySchema    `hcl:"igphyml,block"`
}

type emptySchema struct{}

type dnaparsSchema struct {
	Quick hcl.Expression `hcl:"quick,optional"`
}

type sammRankSchema struct {
	Mutability   hcl.Expression `hcl:"mutability"`
	Substitution hcl.Expression `hcl:"substitution"`
}

type iqtreeSchema struct {
	Options hcl.Expression `hcl:"options"`
}
