package pipeline

import (
	"path/filepath"

	"github.com/seqforest/gcpipe/internal/config"
	"github.com/seqforest/gcpipe/internal/task"
)

// igphyml is the longest chain: five strictly sequential stages. The
// initial GY94 topology seeds the HLP motif-model refinement, whose tree is
// rerooted on the naive outgroup before ancestral reconstruction; the final
// stage folds tree, reconstruction and the shared abundance/idmap tables
// into a collapsed forest.
func (b *builder) igphyml() {
	dir := b.rc.Path(config.FamilyIgPhyML)

	gyTree := filepath.Join(dir, "gy.tree")
	gyStats := filepath.Join(dir, "gy.stats")
	b.add(&task.Task{
		ID:      "igphyml.topology",
		Inputs:  []string{b.dedupFasta},
		Outputs: []string{gyTree, gyStats},
		Command: []string{
			"igphyml",
			"--input", b.dedupFasta,
			"-m", "GY",
			"--outtree", gyTree,
			"--outstats", gyStats,
		},
		Stdout: filepath.Join(dir, "gy.log"),
		Dir:    dir,
	})

	hlpTree := filepath.Join(dir, "hlp.tree")
	hlpStats := filepath.Join(dir, "hlp.stats")
	b.add(&task.Task{
		ID:      "igphyml.motifs",
		Inputs:  []string{b.dedupFasta, gyTree},
		Outputs: []string{hlpTree, hlpStats},
		Command: []string{
			"igphyml",
			"--input", b.dedupFasta,
			"-m", "HLP",
			"-u", gyTree,
			"--motifs", "WRC_2:0,GYW_0:1",
			"--outtree", hlpTree,
			"--outstats", hlpStats,
		},
		Stdout: filepath.Join(dir, "hlp.log"),
		Dir:    dir,
	})

	rerooted := filepath.Join(dir, "rerooted.tree")
	b.add(&task.Task{
		ID:      "igphyml.reroot",
		Inputs:  []string{hlpTree},
		Outputs: []string{rerooted},
		Command: []string{
			"reroot_tree", hlpTree,
			"--outgroup", b.rc.NaiveID,
		},
		Stdout: rerooted,
	})

	asrSeqs := filepath.Join(dir, "asr.fasta")
	b.add(&task.Task{
		ID:      "igphyml.asr",
		Inputs:  []string{hlpStats, rerooted, b.dedupFasta},
		Outputs: []string{asrSeqs},
		Command: []string{
			"igphyml_asr",
			"--stats", hlpStats,
			"--tree", rerooted,
			"--seqs", b.dedupFasta,
			"--outfile", asrSeqs,
		},
	})

	outbase := filepath.Join(dir, "igphyml_inferred_tree")
	b.terminal(&task.Task{
		ID:      "igphyml.forest",
		Inputs:  []string{rerooted, asrSeqs, b.abundances, b.idmap},
		Outputs: forestOutputs(outbase),
		Command: []string{
			"parse_igphyml",
			"--tree", rerooted,
			"--asr", asrSeqs,
			"--abundances", b.abundances,
			"--root", b.rc.NaiveID,
			"--idmapfile", b.idmap,
			"--outbase", outbase,
		},
	})
}
