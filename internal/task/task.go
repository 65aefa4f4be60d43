// Package task defines the declarative unit of work handed to the execution
// graph. A Task describes what to run and which artifacts it reads and
// writes; it never executes anything itself.
package task

import "strings"

// Task is one declared external-tool invocation. Tasks are constructed
// top-down by the pipeline builders and are immutable once built: a task's
// outputs are fully determined before any dependent task is constructed.
type Task struct {
	// ID is the unique, machine-readable identifier for the task.
	// Example: "dnapars.infer", "iqtree.-m010010.asr".
	ID string

	// Outputs are the artifact paths this task produces. No two tasks in a
	// graph may declare the same output path.
	Outputs []string

	// Inputs are the artifact paths this task reads. Inputs that are outputs
	// of another task become dependency edges in the graph.
	Inputs []string

	// ExtraDeps declares data dependencies that are not visible through the
	// output→input file wiring, such as a tool whose config file mediates
	// access to the real sequence input. The graph enforces them exactly
	// like input edges.
	ExtraDeps []string

	// Command is the argv to execute. Command[0] is the program name.
	Command []string

	// Stdin, Stdout and Stderr optionally redirect the process's standard
	// streams to files. The classic PHYLIP tools are driven this way
	// ("dnapars < dnapars.cfg > dnapars.log").
	Stdin  string
	Stdout string
	Stderr string

	// Dir is the working directory for the process. Empty means the
	// process inherits the pipeline's working directory.
	Dir string
}

// CommandLine renders the argv, including redirections, for logs and the
// dry-run plan. The result is informational only; execution always uses the
// argv slice.
func (t *Task) CommandLine() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.Command, " "))
	if t.Stdin != "" {
		b.WriteString(" < ")
		b.WriteString(t.Stdin)
	}
	if t.Stdout != "" {
		b.WriteString(" > ")
		b.WriteString(t.Stdout)
	}
	if t.Stderr != "" {
		b.WriteString(" 2> ")
		b.WriteString(t.Stderr)
	}
	return b.String()
}

// Produces reports whether the task declares path as one of its outputs.
func (t *Task) Produces(path string) bool {
	for _, out := range t.Outputs {
		if out == path {
			return true
		}
	}
	return false
}
