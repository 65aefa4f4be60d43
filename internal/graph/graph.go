// Package graph turns a flat list of declared tasks into a validated
// dependency DAG. Edges are derived from artifact paths: a task that reads a
// path some other task writes depends on that task. Extra-dependency
// declarations are enforced identically.
package graph

import (
	"sync"
	"sync/atomic"

	"github.com/seqforest/gcpipe/internal/task"
)

// Graph is the validated execution plan: all nodes plus their dependency
// topology. The node set is fixed after Build; execution state inside each
// node is managed atomically by the executor.
type Graph struct {
	// Nodes provides ID-based lookup for any node in the graph.
	Nodes map[string]*Node

	// order preserves task declaration order for deterministic iteration.
	order []string
}

// Node is a single vertex in the execution graph, wrapping one declared task.
type Node struct {
	// Task is the immutable task description this node executes.
	Task *task.Task

	// Deps holds the nodes this node depends on (predecessors).
	Deps map[string]*Node
	// Dependents holds the nodes that depend on this node (successors).
	Dependents map[string]*Node

	// Error stores any error that occurred during the node's execution.
	Error error

	// depCount is an atomic counter for unmet dependencies, used by the executor.
	depCount atomic.Int32
	// state is the node's current execution state, managed atomically.
	state atomic.Int32
	// skipOnce ensures a node is marked as skipped and processed exactly once.
	skipOnce sync.Once
}

// ID returns the node's task identifier.
func (n *Node) ID() string { return n.Task.ID }

// State represents the execution state of a node in the graph.
type State int32

const (
	// Pending indicates the node is waiting for its dependencies to complete.
	Pending State = iota
	// Running indicates the node is currently being executed by a worker.
	Running
	// Done indicates the node has completed execution successfully.
	Done
	// Skipped indicates the node was up to date and its command did not run.
	Skipped
	// Failed indicates the node has failed execution or was skipped due to
	// an upstream failure.
	Failed
)

// SetState atomically updates the node's execution state.
func (n *Node) SetState(s State) { n.state.Store(int32(s)) }

// GetState atomically reads the node's execution state.
func (n *Node) GetState() State { return State(n.state.Load()) }

// DecrementDepCount atomically decrements the unmet-dependency counter and
// returns the new value.
func (n *Node) DecrementDepCount() int32 { return n.depCount.Add(-1) }

// DepCount reads the current unmet-dependency counter.
func (n *Node) DepCount() int32 { return n.depCount.Load() }

// SkipOnce runs fn at most once for this node, used when marking a node as
// skipped due to an upstream failure.
func (n *Node) SkipOnce(fn func()) { n.skipOnce.Do(fn) }

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int { return len(g.Nodes) }

// Ordered returns the graph's nodes in task declaration order.
func (g *Graph) Ordered() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.Nodes[id])
	}
	return nodes
}
