package pipeline

import "github.com/seqforest/gcpipe/internal/task"

// The format conversion stage always runs. It turns the input sequence
// collection into a PHYLIP alignment plus an abundance table and an
// identifier map, then derives the deduplicated FASTA required by the
// tools that reject repeated sequences.

// converters maps the converter selector to the conversion program.
var converters = map[string][]string{
	"":          {"deduplicate"},
	"seqmagick": {"seqmagick", "convert", "--deduplicate-sequences"},
}

func (b *builder) convertStage() {
	input := b.rc.Input

	// Synthetic runs have no input file: a simulation task produces one
	// before conversion.
	if input == "" {
		input = b.rc.Path(b.rc.BaseName + ".fasta")
		b.add(&task.Task{
			ID:      "simulate",
			Outputs: []string{input},
			Command: []string{
				"gctree", "simulate",
				"--naive", b.rc.NaiveID,
				"--outfile", input,
			},
		})
	}

	b.alignment = b.rc.Path(b.rc.BaseName + ".phylip")
	b.abundances = b.rc.Path("abundances.csv")
	b.idmap = b.rc.Path("idmap.txt")

	cmd, ok := converters[b.rc.Converter]
	if !ok {
		// Unknown selectors fall back to the default; the selector is
		// validated by the CLI before we get here.
		cmd = converters[""]
	}
	convert := append(append([]string{}, cmd...),
		input,
		"--root", b.rc.NaiveID,
		"--abundance_file", b.abundances,
		"--idmapfile", b.idmap,
	)
	b.add(&task.Task{
		ID:      "convert",
		Inputs:  []string{input},
		Outputs: []string{b.alignment, b.abundances, b.idmap},
		Command: convert,
		Stdout:  b.alignment,
	})

	b.dedupFasta = b.rc.Path("deduplicated.fasta")
	dedupLog := b.rc.Path("dedup.log")
	b.add(&task.Task{
		ID:      "dedup",
		Inputs:  []string{b.alignment},
		Outputs: []string{b.dedupFasta, dedupLog},
		Command: []string{"seqmagick", "convert", b.alignment, b.dedupFasta},
		Stderr:  dedupLog,
	})
}
