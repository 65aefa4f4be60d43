package runctx

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDerivesBaseFromInput(t *testing.T) {
	outdir := t.TempDir()

	rc, err := New(context.Background(), Params{
		Input:   "/data/run7/seqs.fasta.gz",
		Outdir:  outdir,
		NaiveID: "naive",
	})
	require.NoError(t, err)

	assert.Equal(t, "seqs", rc.BaseName)
	assert.Equal(t, filepath.Join(outdir, "seqs"), rc.WorkDir)
	assert.DirExists(t, rc.WorkDir)
	assert.Equal(t, "naive", rc.NaiveID)
	assert.Nil(t, rc.Colors)
}

func TestNewSyntheticRunUsesFallbackBase(t *testing.T) {
	outdir := t.TempDir()

	rc, err := New(context.Background(), Params{Outdir: outdir, NaiveID: "naive"})
	require.NoError(t, err)

	assert.Equal(t, "simulation", rc.BaseName)
	assert.Equal(t, filepath.Join(outdir, "simulation"), rc.WorkDir)
}

func TestNewIsIdempotent(t *testing.T) {
	outdir := t.TempDir()
	p := Params{Input: "seqs.fasta", Outdir: outdir, NaiveID: "naive"}

	first, err := New(context.Background(), p)
	require.NoError(t, err)
	second, err := New(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, first.WorkDir, second.WorkDir)
}

func TestNewLoadsColormap(t *testing.T) {
	outdir := t.TempDir()
	cmPath := filepath.Join(outdir, "colors.yaml")
	require.NoError(t, os.WriteFile(cmPath, []byte("seq1: red\n"), 0o644))

	rc, err := New(context.Background(), Params{
		Input:    "seqs.fasta",
		Outdir:   outdir,
		NaiveID:  "naive",
		Colormap: cmPath,
	})
	require.NoError(t, err)

	assert.Equal(t, cmPath, rc.ColormapPath)
	assert.Equal(t, "red", rc.Colors["seq1"])
}

func TestNewFailsOnUnreadableColormap(t *testing.T) {
	_, err := New(context.Background(), Params{
		Input:    "seqs.fasta",
		Outdir:   t.TempDir(),
		NaiveID:  "naive",
		Colormap: "does-not-exist.yaml",
	})
	require.Error(t, err)
}

func TestPath(t *testing.T) {
	rc := &Context{WorkDir: "/out/seqs"}
	assert.Equal(t, filepath.Join("/out/seqs", "abundances.csv"), rc.Path("abundances.csv"))
}
