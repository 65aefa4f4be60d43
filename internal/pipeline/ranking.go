package pipeline

import (
	"path/filepath"

	"github.com/seqforest/gcpipe/internal/config"
	"github.com/seqforest/gcpipe/internal/task"
)

// gctree ranks the raw dnapars parsimony forest by branching-process
// likelihood and emits the best trees as a collapsed forest. It consumes
// the shared dnapars infer output directly.
func (b *builder) gctree() {
	outfile := b.ensureDnaparsInfer()
	outbase := filepath.Join(b.rc.Path(config.FamilyGCtree), "gctree_inferred_tree")
	cmd := []string{
		"gctree", "infer", outfile, b.abundances,
		"--root", b.rc.NaiveID,
		"--idmapfile", b.idmap,
		"--outbase", outbase,
	}
	if b.rc.ColormapPath != "" {
		cmd = append(cmd, "--colormap", b.rc.ColormapPath)
	}
	b.terminal(&task.Task{
		ID:      "gctree.rank",
		Inputs:  []string{outfile, b.abundances, b.idmap},
		Outputs: forestOutputs(outbase),
		Command: cmd,
	})
}

// sammRank re-ranks the parsimony forest under a sequence motif model,
// weighing each tree's mutations by the mutability and substitution
// reference tables.
func (b *builder) sammRank() {
	outfile := b.ensureDnaparsInfer()
	outbase := filepath.Join(b.rc.Path(config.FamilySammRank), "samm_rank_inferred_tree")
	b.terminal(&task.Task{
		ID: "samm_rank.rank",
		Inputs: []string{
			outfile, b.abundances, b.idmap,
			b.cfg.SammRank.Mutability,
			b.cfg.SammRank.Substitution,
		},
		Outputs: forestOutputs(outbase),
		Command: []string{
			"samm_rank", outfile, b.abundances,
			"--root", b.rc.NaiveID,
			"--idmapfile", b.idmap,
			"--mutability", b.cfg.SammRank.Mutability,
			"--substitution", b.cfg.SammRank.Substitution,
			"--outbase", outbase,
		},
	})
}
