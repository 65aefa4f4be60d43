package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/seqforest/gcpipe/internal/config"
	"github.com/seqforest/gcpipe/internal/task"
)

// iqtree fans out over the configured options strings: each setting gets an
// independent infer→ASR-conversion subgraph with its own working
// subdirectory and no cross-setting dependency.
func (b *builder) iqtree() {
	for i, id := range settingIDs(b.cfg.IQTree.Options) {
		b.iqtreeSetting(id, b.cfg.IQTree.Options[i])
	}
}

// settingIDs derives one directory-safe identifier per options string by
// stripping all whitespace. Settings that collapse to the same identifier
// (they differ only in whitespace) are disambiguated by their position in
// the list, keeping the derivation deterministic.
func settingIDs(options []string) []string {
	ids := make([]string, 0, len(options))
	used := make(map[string]bool, len(options))
	for i, opt := range options {
		id := strings.Join(strings.Fields(opt), "")
		if used[id] {
			id = fmt.Sprintf("%s_%d", id, i)
		}
		used[id] = true
		ids = append(ids, id)
	}
	return ids
}

func (b *builder) iqtreeSetting(id, options string) {
	dir := filepath.Join(b.rc.Path(config.FamilyIQTree), id)
	prefix := filepath.Join(dir, "iqtree")
	treefile := prefix + ".treefile"
	statefile := prefix + ".state"

	infer := append([]string{"iqtree", "-s", b.dedupFasta, "-asr"},
		strings.Fields(options)...)
	infer = append(infer, "-pre", prefix)
	b.add(&task.Task{
		ID:      fmt.Sprintf("iqtree.%s.infer", id),
		Inputs:  []string{b.dedupFasta},
		Outputs: []string{treefile, statefile},
		Command: infer,
		Stdout:  prefix + ".console.log",
	})

	outbase := filepath.Join(dir, id+"_inferred_tree")
	b.terminal(&task.Task{
		ID:      fmt.Sprintf("iqtree.%s.asr", id),
		Inputs:  []string{treefile, statefile, b.abundances, b.idmap},
		Outputs: forestOutputs(outbase),
		Command: []string{
			"parse_iqtree",
			"--tree", treefile,
			"--states", statefile,
			"--abundances", b.abundances,
			"--root", b.rc.NaiveID,
			"--idmapfile", b.idmap,
			"--outbase", outbase,
		},
	})
}
