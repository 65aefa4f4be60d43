// Package runctx derives the immutable per-run context shared by every task
// builder: canonical base name, working directory, naive sequence identity
// and optional colormap annotations. It is computed once and passed by
// reference; there is no ambient or global lookup.
package runctx

import (
	"context"
	"path/filepath"

	"github.com/seqforest/gcpipe/internal/colormap"
	"github.com/seqforest/gcpipe/internal/ctxlog"
	"github.com/seqforest/gcpipe/internal/fsutil"
)

// fallbackBase names the working directory of a synthetic run, where no
// input sequence file exists.
const fallbackBase = "simulation"

// Params are the raw run parameters collected from the command line.
type Params struct {
	// Input is the sequence file path. Empty means a synthetic run.
	Input string
	// Outdir is the output root under which the per-run working directory
	// is created.
	Outdir string
	// NaiveID labels the ancestral (outgroup root) sequence.
	NaiveID string
	// Colormap optionally points at a YAML sequence→color annotation file.
	Colormap string
	// Converter optionally selects an alternative alignment converter.
	Converter string
}

// Context is the derived, read-only run context. Shared by pointer across
// all task builders; never mutated after New returns.
type Context struct {
	// Input is the sequence file path, empty for synthetic runs.
	Input string
	// BaseName is the input file stem, or "simulation" for synthetic runs.
	BaseName string
	// WorkDir is outdir joined with BaseName. It exists once New returns.
	WorkDir string
	// NaiveID labels the ancestral sequence used to root every tree.
	NaiveID string
	// Converter selects the alignment converter command; empty selects the
	// default.
	Converter string
	// Colors holds the optional sequence→color annotations, nil when no
	// colormap file was given.
	Colors colormap.Map
	// ColormapPath is the annotation file path forwarded to tree-rendering
	// commands, empty when unset.
	ColormapPath string
}

// New derives the run context from the raw parameters and ensures the
// working directory exists. Directory creation tolerates "already exists";
// any other failure aborts graph construction for this invocation.
func New(ctx context.Context, p Params) (*Context, error) {
	logger := ctxlog.FromContext(ctx)

	base := fallbackBase
	if p.Input != "" {
		base = fsutil.Stem(p.Input)
	}
	workDir := filepath.Join(p.Outdir, base)
	if err := fsutil.EnsureDir(workDir); err != nil {
		return nil, err
	}

	rc := &Context{
		Input:        p.Input,
		BaseName:     base,
		WorkDir:      workDir,
		NaiveID:      p.NaiveID,
		Converter:    p.Converter,
		ColormapPath: p.Colormap,
	}
	if p.Colormap != "" {
		colors, err := colormap.Load(p.Colormap)
		if err != nil {
			return nil, err
		}
		rc.Colors = colors
	}

	logger.Debug("Run context derived.",
		"base", rc.BaseName, "workdir", rc.WorkDir, "naive", rc.NaiveID)
	return rc, nil
}

// Path joins name onto the run's working directory.
func (c *Context) Path(name string) string {
	return filepath.Join(c.WorkDir, name)
}
