package executor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/seqforest/gcpipe/internal/fsutil"
	"github.com/seqforest/gcpipe/internal/graph"
	"github.com/seqforest/gcpipe/internal/task"
)

// runTask executes one task's subprocess with its declared stream
// redirections, then verifies the declared outputs exist. Exit codes are
// not interpreted beyond zero/non-zero; a tool's diagnostics live in its
// log file.
func (e *Executor) runTask(ctx context.Context, node *graph.Node) error {
	t := node.Task

	for _, out := range t.Outputs {
		if err := fsutil.EnsureDir(filepath.Dir(out)); err != nil {
			return err
		}
	}
	if t.Dir != "" {
		if err := fsutil.EnsureDir(t.Dir); err != nil {
			return err
		}
	}

	cmd := exec.CommandContext(ctx, t.Command[0], t.Command[1:]...)
	cmd.Dir = t.Dir

	var closers []*os.File
	defer func() {
		for _, f := range closers {
			f.Close()
		}
	}()

	if t.Stdin != "" {
		in, err := os.Open(t.Stdin)
		if err != nil {
			return fmt.Errorf("task %s: %w", t.ID, err)
		}
		closers = append(closers, in)
		cmd.Stdin = in
	}

	// Captured output is only reported on failure; redirected streams go to
	// their declared files, which the failure message points at.
	var captured bytes.Buffer
	cmd.Stdout = &captured
	cmd.Stderr = &captured

	if t.Stdout != "" {
		out, err := os.Create(t.Stdout)
		if err != nil {
			return fmt.Errorf("task %s: %w", t.ID, err)
		}
		closers = append(closers, out)
		cmd.Stdout = out
	}
	if t.Stderr != "" {
		errFile, err := os.Create(t.Stderr)
		if err != nil {
			return fmt.Errorf("task %s: %w", t.ID, err)
		}
		closers = append(closers, errFile)
		cmd.Stderr = errFile
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("task %s: %s: %w%s", t.ID, t.CommandLine(), err, diagnosticHint(t, &captured))
	}

	for _, out := range t.Outputs {
		if _, err := os.Stat(out); err != nil {
			return fmt.Errorf("task %s: declared output missing after successful exit: %s", t.ID, out)
		}
	}
	return nil
}

// diagnosticHint points a failure at the tool's log file, or at the tail of
// the captured output when nothing was redirected.
func diagnosticHint(t *task.Task, captured *bytes.Buffer) string {
	switch {
	case t.Stdout != "":
		return fmt.Sprintf(" (see %s)", t.Stdout)
	case t.Stderr != "":
		return fmt.Sprintf(" (see %s)", t.Stderr)
	case captured.Len() > 0:
		out := captured.Bytes()
		const tail = 512
		if len(out) > tail {
			out = out[len(out)-tail:]
		}
		return ": " + string(bytes.TrimSpace(out))
	}
	return ""
}
