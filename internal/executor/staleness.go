package executor

import (
	"os"
	"time"

	"github.com/seqforest/gcpipe/internal/task"
)

// upToDate reports whether a task can be skipped: every declared output
// exists and none is older than any declared input, extra dependency, or
// stdin file. Best-effort and mtime-based; any stat failure on an input
// forces a re-run so the tool itself can report the real problem.
func upToDate(t *task.Task) bool {
	if len(t.Outputs) == 0 {
		return false
	}

	var oldestOut time.Time
	for i, out := range t.Outputs {
		info, err := os.Stat(out)
		if err != nil {
			return false
		}
		if i == 0 || info.ModTime().Before(oldestOut) {
			oldestOut = info.ModTime()
		}
	}

	inputs := make([]string, 0, len(t.Inputs)+len(t.ExtraDeps)+1)
	inputs = append(inputs, t.Inputs...)
	inputs = append(inputs, t.ExtraDeps...)
	if t.Stdin != "" {
		inputs = append(inputs, t.Stdin)
	}
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return false
		}
		if info.ModTime().After(oldestOut) {
			return false
		}
	}
	return true
}
