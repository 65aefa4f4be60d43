// Package executor runs a validated task graph: a fixed-size worker pool
// consumes ready nodes, executes their commands as subprocesses, and
// unlocks dependents as tasks complete. A failed task cancels the run and
// transitively skips everything downstream of it; independent branches
// already in flight run to completion of their current task.
package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/seqforest/gcpipe/internal/ctxlog"
	"github.com/seqforest/gcpipe/internal/graph"
)

// Executor orchestrates the end-to-end execution of a task graph.
type Executor struct {
	graph      *graph.Graph
	numWorkers int
	wg         sync.WaitGroup
}

// New creates an executor over the given graph.
func New(g *graph.Graph, workers int) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{graph: g, numWorkers: workers}
}

// Run executes the entire graph concurrently and returns an error if any
// node fails. It respects the cancellation signal from the provided context.
func (e *Executor) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	readyChan := make(chan *graph.Node, e.graph.Len())
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	rootCount := 0
	for _, node := range e.graph.Ordered() {
		if node.DepCount() == 0 {
			readyChan <- node
			rootCount++
		}
	}
	logger.Debug("Found all root nodes.", "count", rootCount)

	e.wg.Add(e.graph.Len())

	logger.Debug("Starting worker pool.", "workers", e.numWorkers)
	for i := 0; i < e.numWorkers; i++ {
		go e.worker(runCtx, readyChan, cancel, i)
	}

	e.wg.Wait()
	close(readyChan)

	var failed []string
	var rootCause error
	for _, node := range e.graph.Ordered() {
		if node.GetState() != graph.Failed {
			continue
		}
		logger.Error("Task failed.", "task", node.ID(), "error", node.Error)
		// Skips are symptoms; only real failures are root causes.
		if node.Error != nil && !strings.HasPrefix(node.Error.Error(), "skipped") && !errors.Is(node.Error, context.Canceled) {
			failed = append(failed, node.ID())
			if rootCause == nil {
				rootCause = node.Error
			}
		}
	}
	if rootCause != nil {
		return fmt.Errorf("execution failed for %s: %w", strings.Join(failed, ", "), rootCause)
	}
	return nil
}

// skipDependents recursively marks all downstream nodes as failed and
// releases their WaitGroup slots.
func (e *Executor) skipDependents(ctx context.Context, node *graph.Node) {
	logger := ctxlog.FromContext(ctx)
	for _, dependent := range node.Dependents {
		dep := dependent
		dep.SkipOnce(func() {
			logger.Warn("Skipping task due to upstream failure.",
				"task", dep.ID(), "failed_dependency", node.ID())
			dep.SetState(graph.Failed)
			dep.Error = fmt.Errorf("skipped due to upstream failure of '%s'", node.ID())
			e.wg.Done()
			e.skipDependents(ctx, dep)
		})
	}
}

// worker is the core processing loop for a single concurrent worker.
func (e *Executor) worker(ctx context.Context, readyChan chan *graph.Node, cancel context.CancelFunc, workerID int) {
	logger := ctxlog.FromContext(ctx)

	for node := range readyChan {
		workerLogger := logger.With("workerID", workerID, "task", node.ID())

		if ctx.Err() != nil {
			n := node
			n.SkipOnce(func() {
				n.SetState(graph.Failed)
				n.Error = ctx.Err()
				e.wg.Done()
				// Dependents of an already-queued node never reach the ready
				// channel once the run is cancelled; release them here too.
				e.skipDependents(ctx, n)
			})
			continue
		}

		node.SetState(graph.Running)

		if upToDate(node.Task) {
			workerLogger.Info("Task up to date, skipping.")
			node.SetState(graph.Skipped)
			e.finish(ctx, node, readyChan)
			continue
		}

		workerLogger.Info("Running task.", "command", node.Task.CommandLine())
		if err := e.runTask(ctx, node); err != nil {
			workerLogger.Error("Task execution failed.", "error", err)
			node.SetState(graph.Failed)
			node.Error = err
			cancel()
			e.skipDependents(ctx, node)
			e.wg.Done()
			continue
		}

		workerLogger.Debug("Task execution succeeded.")
		node.SetState(graph.Done)
		e.finish(ctx, node, readyChan)
	}
}

// finish unlocks any dependents whose last unmet dependency was this node.
func (e *Executor) finish(ctx context.Context, node *graph.Node, readyChan chan *graph.Node) {
	logger := ctxlog.FromContext(ctx)
	for _, dependent := range node.Dependents {
		if dependent.DecrementDepCount() == 0 {
			logger.Debug("Unlocking dependent task.", "task", dependent.ID())
			readyChan <- dependent
		}
	}
	e.wg.Done()
}
