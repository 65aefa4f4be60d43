package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/seqforest/gcpipe/internal/config"
	"github.com/seqforest/gcpipe/internal/task"
)

// fastml runs FastML once, producing ancestral sequences for both the
// marginal and the joint reconstruction, then converts each mode into its
// own collapsed forest.
func (b *builder) fastml() {
	dir := b.rc.Path(config.FamilyFastML)
	tree := filepath.Join(dir, "tree.newick")
	seqFiles := map[string]string{
		"marginal": filepath.Join(dir, "seq.marginal.txt"),
		"joint":    filepath.Join(dir, "seq.joint.txt"),
	}

	b.add(&task.Task{
		ID:      "fastml.infer",
		Inputs:  []string{b.dedupFasta},
		Outputs: []string{
			tree, seqFiles["marginal"], seqFiles["joint"],
		},
		Command: []string{
			"fastml", "-qf", "-mh",
			"-s", b.dedupFasta,
			"-x", tree,
			"-j", seqFiles["joint"],
			"-k", seqFiles["marginal"],
		},
		Stdout:  filepath.Join(dir, "fastml.log"),
		Dir:     dir,
	})

	for _, mode := range config.FastMLModes {
		outbase := filepath.Join(dir, mode+"_inferred_tree")
		b.terminal(&task.Task{
			ID:      fmt.Sprintf("fastml.%s.asr", mode),
			Inputs:  []string{tree, seqFiles[mode], b.abundances, b.idmap},
			Outputs: forestOutputs(outbase),
			Command: []string{
				"parse_fastml",
				"--mode", mode,
				"--tree", tree,
				"--seqs", seqFiles[mode],
				"--abundances", b.abundances,
				"--root", b.rc.NaiveID,
				"--idmapfile", b.idmap,
				"--outbase", outbase,
			},
		})
	}
}
