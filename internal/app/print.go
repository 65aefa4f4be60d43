package app

import (
	"fmt"
	"sort"

	"github.com/fatih/color"

	"github.com/seqforest/gcpipe/internal/graph"
	"github.com/seqforest/gcpipe/internal/pipeline"
)

// printPlan renders the dry-run view of the plan: every task with its
// command and dependencies, followed by the ordered terminal artifacts.
func (a *App) printPlan(plan *pipeline.Plan, g *graph.Graph) error {
	header := color.New(color.Bold, color.FgCyan).SprintFunc()
	taskID := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintln(a.outW, header("Planned tasks:"))
	for _, node := range g.Ordered() {
		fmt.Fprintf(a.outW, "  %s\n", taskID(node.ID()))
		fmt.Fprintf(a.outW, "    %s\n", node.Task.CommandLine())
		if len(node.Deps) > 0 {
			deps := make([]string, 0, len(node.Deps))
			for id := range node.Deps {
				deps = append(deps, id)
			}
			sort.Strings(deps)
			fmt.Fprintf(a.outW, "    %s\n", dim(fmt.Sprintf("after: %v", deps)))
		}
	}

	fmt.Fprintln(a.outW, header("Terminal artifacts:"))
	for _, t := range plan.Terminals {
		for _, out := range t.Outputs {
			fmt.Fprintf(a.outW, "  %s\n", out)
		}
	}
	return nil
}
