// Package pipeline constructs the directed acyclic graph of external-tool
// invocations for one run: format conversion, the enabled inference
// families, and the ordered terminal artifact list. It decides what to run
// and in what order, never how to compute a tree.
package pipeline

import (
	"context"

	"github.com/seqforest/gcpipe/internal/config"
	"github.com/seqforest/gcpipe/internal/ctxlog"
	"github.com/seqforest/gcpipe/internal/registry"
	"github.com/seqforest/gcpipe/internal/runctx"
	"github.com/seqforest/gcpipe/internal/task"
)

// Plan is the declared task set for one run. Tasks are in declaration
// order; Terminals holds the terminal artifact-producing tasks of every
// enabled family in fixed evaluation order (dnaml, dnapars, gctree,
// samm_rank, iqtree per setting, fastml per mode, igphyml).
type Plan struct {
	Tasks     []*task.Task
	Terminals []*task.Task
}

// Families returns the default registry of tool families this package can
// build.
func Families() *registry.Registry {
	r := registry.New()
	r.Register(registry.Entry{Name: config.FamilyDnaml, Description: "PHYLIP dnaml maximum-likelihood tree"})
	r.Register(registry.Entry{Name: config.FamilyDnapars, Description: "PHYLIP dnapars parsimony forest"})
	r.Register(registry.Entry{Name: config.FamilyGCtree, Description: "branching-process ranking of the parsimony forest"})
	r.Register(registry.Entry{Name: config.FamilySammRank, Description: "motif-model re-ranking of the parsimony forest"})
	r.Register(registry.Entry{Name: config.FamilyIQTree, Description: "IQ-TREE search with ancestral reconstruction, one run per options string"})
	r.Register(registry.Entry{Name: config.FamilyFastML, Description: "FastML marginal and joint ancestral reconstruction"})
	r.Register(registry.Entry{Name: config.FamilyIgPhyML, Description: "IgPhyML topology search with HLP motif refinement"})
	return r
}

// builder accumulates tasks for one plan. Construction is single-threaded
// and top-down: a task's outputs are fully determined before any dependent
// task is built.
type builder struct {
	cfg *config.Model
	rc  *runctx.Context

	tasks     []*task.Task
	terminals []*task.Task

	// Shared conversion artifacts, set by the conversion stage.
	alignment  string
	abundances string
	idmap      string
	dedupFasta string

	// dnapars's infer task is shared between the dnapars, gctree and
	// samm_rank families; it is built at most once.
	dnaparsOutfile string
}

// Build constructs the full plan for the given configuration and run
// context. It is deterministic: identical inputs yield identical task IDs,
// output paths and command strings.
func Build(ctx context.Context, cfg *config.Model, rc *runctx.Context) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)

	if err := Families().Validate(ctx, cfg.EnabledFamilies()); err != nil {
		return nil, err
	}

	b := &builder{cfg: cfg, rc: rc}
	b.convertStage()

	for _, family := range config.FamilyOrder {
		if !cfg.Enabled(family) {
			continue
		}
		switch family {
		case config.FamilyDnaml:
			b.dnaml()
		case config.FamilyDnapars:
			b.dnapars()
		case config.FamilyGCtree:
			b.gctree()
		case config.FamilySammRank:
			b.sammRank()
		case config.FamilyIQTree:
			b.iqtree()
		case config.FamilyFastML:
			b.fastml()
		case config.FamilyIgPhyML:
			b.igphyml()
		}
	}

	logger.Debug("Plan constructed.",
		"tasks", len(b.tasks), "terminals", len(b.terminals))
	return &Plan{Tasks: b.tasks, Terminals: b.terminals}, nil
}

// add appends a task to the plan and returns it.
func (b *builder) add(t *task.Task) *task.Task {
	b.tasks = append(b.tasks, t)
	return t
}

// terminal appends a task to the plan and records it as a terminal
// artifact producer.
func (b *builder) terminal(t *task.Task) *task.Task {
	b.add(t)
	b.terminals = append(b.terminals, t)
	return t
}
