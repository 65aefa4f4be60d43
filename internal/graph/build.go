package graph

import (
	"context"
	"fmt"

	"github.com/seqforest/gcpipe/internal/ctxlog"
	"github.com/seqforest/gcpipe/internal/task"
)

// Build constructs a complete, validated dependency graph from the declared
// task list. It fails on duplicate task IDs, duplicate output declarations,
// and cycles. Paths no task produces are treated as externally supplied
// files and create no edge.
func Build(ctx context.Context, tasks []*task.Task) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting graph construction.", "task_count", len(tasks))

	g := &Graph{Nodes: make(map[string]*Node, len(tasks))}

	// First pass: create all nodes and index every declared output by path.
	producers := make(map[string]*Node)
	for _, t := range tasks {
		if _, exists := g.Nodes[t.ID]; exists {
			return nil, fmt.Errorf("duplicate task id %q", t.ID)
		}
		n := &Node{
			Task:       t,
			Deps:       make(map[string]*Node),
			Dependents: make(map[string]*Node),
		}
		g.Nodes[t.ID] = n
		g.order = append(g.order, t.ID)

		for _, out := range t.Outputs {
			if prev, taken := producers[out]; taken {
				return nil, fmt.Errorf("output %s declared by both %q and %q", out, prev.ID(), t.ID)
			}
			producers[out] = n
		}
	}
	logger.Debug("Build: node creation complete.", "node_count", len(g.Nodes))

	// Second pass: link edges. Inputs and extra dependencies are enforced
	// identically; paths with no producer are externally supplied files.
	for _, n := range g.Nodes {
		paths := make([]string, 0, len(n.Task.Inputs)+len(n.Task.ExtraDeps))
		paths = append(paths, n.Task.Inputs...)
		paths = append(paths, n.Task.ExtraDeps...)
		if n.Task.Stdin != "" {
			paths = append(paths, n.Task.Stdin)
		}
		for _, p := range paths {
			dep, ok := producers[p]
			if !ok || dep == n {
				continue
			}
			n.Deps[dep.ID()] = dep
			dep.Dependents[n.ID()] = n
		}
	}
	logger.Debug("Build: node linking complete.")

	// Third pass: initialize counters.
	for _, n := range g.Nodes {
		n.depCount.Store(int32(len(n.Deps)))
	}

	if err := g.detectCycles(); err != nil {
		return nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	logger.Debug("Build: cycle detection passed.")

	return g, nil
}

// detectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, indicating the first node involved in the detected cycle.
func (g *Graph) detectCycles() error {
	// Classic depth-first search with a permanent set of fully visited nodes
	// and a temporary set for the current recursion stack.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *Node) error
	visit = func(n *Node) error {
		if permanent[n.ID()] {
			return nil
		}
		if temporary[n.ID()] {
			return fmt.Errorf("cycle detected involving task '%s'", n.ID())
		}

		temporary[n.ID()] = true
		for _, dependent := range n.Dependents {
			if err := visit(dependent); err != nil {
				return err
			}
		}
		delete(temporary, n.ID())
		permanent[n.ID()] = true
		return nil
	}

	for _, id := range g.order {
		if !permanent[id] {
			if err := visit(g.Nodes[id]); err != nil {
				return err
			}
		}
	}
	return nil
}
