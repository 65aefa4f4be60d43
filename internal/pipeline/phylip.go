package pipeline

import (
	"path/filepath"

	"github.com/seqforest/gcpipe/internal/config"
	"github.com/seqforest/gcpipe/internal/task"
)

// The two PHYLIP families share the same chain shape: generate an
// interactive-response config file, run the tool with stdin redirected to
// it, then parse the verbose outfile into a collapsed tree forest.

// phylipConfig declares the config-generation task for a PHYLIP program and
// returns the config file path.
func (b *builder) phylipConfig(family string, extraArgs ...string) string {
	dir := b.rc.Path(family)
	cfgFile := filepath.Join(dir, family+".cfg")
	cmd := append([]string{"mkconfig", b.alignment, family}, extraArgs...)
	b.add(&task.Task{
		ID:      family + ".config",
		Inputs:  []string{b.alignment},
		Outputs: []string{cfgFile},
		Command: cmd,
		Stdout:  cfgFile,
	})
	return cfgFile
}

// phylipInfer declares the inference task for a PHYLIP program and returns
// the verbose outfile path. The program reads its config from stdin and
// writes outfile/outtree into its working directory, so the task carries an
// explicit extra dependency on the alignment: the config file alone would
// hide the true data dependency from staleness detection.
func (b *builder) phylipInfer(family, cfgFile string, extraDeps ...string) string {
	dir := b.rc.Path(family)
	outfile := filepath.Join(dir, "outfile")
	outtree := filepath.Join(dir, "outtree")
	b.add(&task.Task{
		ID:        family + ".infer",
		Inputs:    []string{cfgFile},
		ExtraDeps: extraDeps,
		Outputs:   []string{outfile, outtree},
		Command:   []string{family},
		Stdin:     cfgFile,
		Stdout:    filepath.Join(dir, family+".log"),
		Dir:       dir,
	})
	return outfile
}

// phylipParse declares the parse-to-forest task converting a PHYLIP verbose
// outfile into the common collapsed tree forest representation.
func (b *builder) phylipParse(family, outfile string) *task.Task {
	outbase := filepath.Join(b.rc.Path(family), family+"_inferred_tree")
	cmd := []string{
		"phylip_parse", outfile, b.abundances,
		"--root", b.rc.NaiveID,
		"--idmapfile", b.idmap,
		"--outbase", outbase,
	}
	if b.rc.ColormapPath != "" {
		cmd = append(cmd, "--colormap", b.rc.ColormapPath)
	}
	return b.terminal(&task.Task{
		ID:      family + ".parse",
		Inputs:  []string{outfile, b.abundances, b.idmap},
		Outputs: forestOutputs(outbase),
		Command: cmd,
	})
}

// forestOutputs names the three terminal artifacts every family produces:
// the serialized collapsed forest, the tree description and the log.
func forestOutputs(outbase string) []string {
	return []string{outbase + ".p", outbase + ".tree", outbase + ".log"}
}

func (b *builder) dnaml() {
	cfgFile := b.phylipConfig(config.FamilyDnaml)
	outfile := b.phylipInfer(config.FamilyDnaml, cfgFile)
	b.phylipParse(config.FamilyDnaml, outfile)
}

func (b *builder) dnapars() {
	outfile := b.ensureDnaparsInfer()
	b.phylipParse(config.FamilyDnapars, outfile)
}

// ensureDnaparsInfer builds the dnapars config-gen and infer tasks exactly
// once. The infer task is shared: the gctree and samm_rank families need
// the raw parsimony forest even when dnapars itself was not requested.
func (b *builder) ensureDnaparsInfer() string {
	if b.dnaparsOutfile != "" {
		return b.dnaparsOutfile
	}
	var extra []string
	if b.cfg.Dnapars != nil && b.cfg.Dnapars.Quick {
		extra = append(extra, "--quick")
	}
	cfgFile := b.phylipConfig(config.FamilyDnapars, extra...)
	b.dnaparsOutfile = b.phylipInfer(config.FamilyDnapars, cfgFile, b.alignment)
	return b.dnaparsOutfile
}
