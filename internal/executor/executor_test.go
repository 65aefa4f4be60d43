package executor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqforest/gcpipe/internal/graph"
	"github.com/seqforest/gcpipe/internal/task"
)

func buildGraph(t *testing.T, tasks []*task.Task) *graph.Graph {
	t.Helper()
	g, err := graph.Build(context.Background(), tasks)
	require.NoError(t, err)
	return g
}

func TestRunExecutesChainInOrder(t *testing.T) {
	dir := t.TempDir()
	out1 := filepath.Join(dir, "one.txt")
	out2 := filepath.Join(dir, "two.txt")

	g := buildGraph(t, []*task.Task{
		{
			ID:      "produce",
			Outputs: []string{out1},
			Command: []string{"sh", "-c", "printf first"},
			Stdout:  out1,
		},
		{
			ID:      "consume",
			Inputs:  []string{out1},
			Outputs: []string{out2},
			Command: []string{"sh", "-c", "cat " + out1},
			Stdout:  out2,
		},
	})

	require.NoError(t, New(g, 4).Run(context.Background()))

	assert.Equal(t, graph.Done, g.Nodes["produce"].GetState())
	assert.Equal(t, graph.Done, g.Nodes["consume"].GetState())

	content, err := os.ReadFile(out2)
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))
}

func TestRunFailureSkipsDependents(t *testing.T) {
	dir := t.TempDir()
	out1 := filepath.Join(dir, "one.txt")
	out2 := filepath.Join(dir, "two.txt")
	other := filepath.Join(dir, "other.txt")

	g := buildGraph(t, []*task.Task{
		{
			ID:      "broken",
			Outputs: []string{out1},
			Command: []string{"sh", "-c", "exit 3"},
		},
		{
			ID:      "downstream",
			Inputs:  []string{out1},
			Outputs: []string{out2},
			Command: []string{"sh", "-c", "printf unreachable"},
			Stdout:  out2,
		},
		{
			ID:      "independent",
			Outputs: []string{other},
			Command: []string{"sh", "-c", "printf fine"},
			Stdout:  other,
		},
	})

	err := New(g, 1).Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "execution failed for broken")

	assert.Equal(t, graph.Failed, g.Nodes["broken"].GetState())
	assert.Equal(t, graph.Failed, g.Nodes["downstream"].GetState())
	assert.ErrorContains(t, g.Nodes["downstream"].Error, "skipped due to upstream failure")
	assert.NoFileExists(t, out2)
}

func TestRunFailureReleasesQueuedIndependentChains(t *testing.T) {
	dir := t.TempDir()
	out1 := filepath.Join(dir, "one.txt")
	out2 := filepath.Join(dir, "two.txt")
	out3 := filepath.Join(dir, "three.txt")

	// The failing root is declared first so a single worker processes it
	// before the independent chain's root, which is already queued. The
	// chain's child must still be released or Run never returns.
	g := buildGraph(t, []*task.Task{
		{
			ID:      "broken",
			Outputs: []string{out1},
			Command: []string{"sh", "-c", "exit 3"},
		},
		{
			ID:      "chain-root",
			Outputs: []string{out2},
			Command: []string{"sh", "-c", "printf a"},
			Stdout:  out2,
		},
		{
			ID:      "chain-child",
			Inputs:  []string{out2},
			Outputs: []string{out3},
			Command: []string{"sh", "-c", "printf b"},
			Stdout:  out3,
		},
	})

	done := make(chan error, 1)
	go func() { done <- New(g, 1).Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorContains(t, err, "execution failed for broken")
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after a task failure")
	}

	assert.Equal(t, graph.Failed, g.Nodes["broken"].GetState())
	assert.Equal(t, graph.Failed, g.Nodes["chain-child"].GetState())
}

func TestRunSkipsUpToDateTask(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.txt")
	out := filepath.Join(dir, "output.txt")

	require.NoError(t, os.WriteFile(in, []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(out, []byte("result"), 0o644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(in, past, past))

	g := buildGraph(t, []*task.Task{
		{
			ID:      "cached",
			Inputs:  []string{in},
			Outputs: []string{out},
			// Would fail if actually executed.
			Command: []string{"sh", "-c", "exit 1"},
		},
	})

	require.NoError(t, New(g, 2).Run(context.Background()))
	assert.Equal(t, graph.Skipped, g.Nodes["cached"].GetState())
}

func TestRunRebuildsStaleOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.txt")
	out := filepath.Join(dir, "output.txt")

	require.NoError(t, os.WriteFile(in, []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(out, []byte("stale"), 0o644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(out, past, past))

	g := buildGraph(t, []*task.Task{
		{
			ID:      "rebuild",
			Inputs:  []string{in},
			Outputs: []string{out},
			Command: []string{"sh", "-c", "printf fresh"},
			Stdout:  out,
		},
	})

	require.NoError(t, New(g, 2).Run(context.Background()))
	assert.Equal(t, graph.Done, g.Nodes["rebuild"].GetState())

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(content))
}

func TestRunReportsMissingDeclaredOutput(t *testing.T) {
	g := buildGraph(t, []*task.Task{
		{
			ID:      "liar",
			Outputs: []string{filepath.Join(t.TempDir(), "never-written.txt")},
			Command: []string{"true"},
		},
	})

	err := New(g, 1).Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "declared output missing")
}

func TestRunCreatesOutputDirectories(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "deeper", "result.txt")

	g := buildGraph(t, []*task.Task{
		{
			ID:      "nested",
			Outputs: []string{out},
			Command: []string{"sh", "-c", "printf ok"},
			Stdout:  out,
		},
	})

	require.NoError(t, New(g, 1).Run(context.Background()))
	assert.FileExists(t, out)
}

func TestRunStdinRedirection(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "answers.cfg")
	out := filepath.Join(dir, "log.txt")

	require.NoError(t, os.WriteFile(cfg, []byte("Y\n"), 0o644))

	g := buildGraph(t, []*task.Task{
		{
			ID:      "interactive",
			Outputs: []string{out},
			Command: []string{"cat"},
			Stdin:   cfg,
			Stdout:  out,
		},
	})

	require.NoError(t, New(g, 1).Run(context.Background()))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Y\n", string(content))
}

func TestRunHonorsCancelledContext(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	g := buildGraph(t, []*task.Task{
		{
			ID:      "never",
			Outputs: []string{out},
			Command: []string{"sh", "-c", "printf x"},
			Stdout:  out,
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A pre-cancelled context produces no root-cause failure, only skips.
	require.NoError(t, New(g, 1).Run(ctx))
	assert.Equal(t, graph.Failed, g.Nodes["never"].GetState())
	assert.NoFileExists(t, out)
}

func TestUpToDate(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")

	t.Run("no outputs", func(t *testing.T) {
		assert.False(t, upToDate(&task.Task{ID: "x"}))
	})

	t.Run("missing output", func(t *testing.T) {
		assert.False(t, upToDate(&task.Task{ID: "x", Outputs: []string{out}}))
	})

	require.NoError(t, os.WriteFile(in, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(out, []byte("b"), 0o644))
	past := time.Now().Add(-time.Hour)

	t.Run("fresh output", func(t *testing.T) {
		require.NoError(t, os.Chtimes(in, past, past))
		assert.True(t, upToDate(&task.Task{ID: "x", Inputs: []string{in}, Outputs: []string{out}}))
	})

	t.Run("newer input", func(t *testing.T) {
		now := time.Now().Add(time.Hour)
		require.NoError(t, os.Chtimes(in, now, now))
		assert.False(t, upToDate(&task.Task{ID: "x", Inputs: []string{in}, Outputs: []string{out}}))
	})

	t.Run("missing input forces rerun", func(t *testing.T) {
		assert.False(t, upToDate(&task.Task{
			ID:      "x",
			Inputs:  []string{filepath.Join(dir, "absent")},
			Outputs: []string{out},
		}))
	})
}
