package coordinator

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
	"github.com/specialistvlad/buildgridgo/internal/dag"
	"github.com/specialistvlad/buildgridgo/internal/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/specialistvlad/buildgridgo/internal/coordinator")

// EvalFunc evaluates a single node. It runs only after every primary the
// node depends on has returned successfully.
type EvalFunc func(ctx context.Context, node model.ProjectNode) error

type canonicalValue struct {
	module string
	value  string
}

// Coordinator holds the evaluation constraints and canonical values of one
// configuration pass. It is not meant to be shared between passes.
type Coordinator struct {
	graph     *dag.Graph
	nodes     map[string]model.ProjectNode
	canonical map[string]canonicalValue
}

// New creates an empty Coordinator.
func New() *Coordinator {
	return &Coordinator{
		graph:     dag.New(),
		nodes:     make(map[string]model.ProjectNode),
		canonical: make(map[string]canonicalValue),
	}
}

// Register adds a node without constraints. DeclareDependency and
// EvaluateInOrder register the nodes they see.
func (c *Coordinator) Register(node model.ProjectNode) {
	c.graph.AddNode(node.Name)
	if _, ok := c.nodes[node.Name]; !ok {
		c.nodes[node.Name] = node
	}
}

// DeclareDependency records that dependent must not be evaluated until
// primary has been. A constraint that would close a cycle, including a node
// depending on itself, is refused with a *CycleError and not recorded.
func (c *Coordinator) DeclareDependency(ctx context.Context, dependent, primary model.ProjectNode) error {
	logger := ctxlog.FromContext(ctx)

	if dependent.Name == primary.Name {
		return &CycleError{Path: []string{dependent.Name, primary.Name}}
	}

	c.Register(dependent)
	c.Register(primary)

	if c.graph.HasEdge(primary.Name, dependent.Name) {
		return nil
	}
	if path := c.graph.Path(dependent.Name, primary.Name); path != nil {
		return &CycleError{Path: append(path, dependent.Name)}
	}
	if err := c.graph.AddEdge(primary.Name, dependent.Name); err != nil {
		return fmt.Errorf("declaring %s -> %s: %w", dependent, primary, err)
	}
	logger.Debug("Evaluation constraint declared.", "dependent", dependent.Name, "primary", primary.Name)
	return nil
}

// Constraints returns every declared constraint, sorted by dependent then primary.
func (c *Coordinator) Constraints() []model.EvaluationConstraint {
	var out []model.EvaluationConstraint
	for _, id := range c.graph.Nodes() {
		deps, err := c.graph.Dependencies(id)
		if err != nil {
			continue
		}
		for _, dep := range deps {
			out = append(out, model.EvaluationConstraint{Dependent: id, Primary: dep})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dependent != out[j].Dependent {
			return out[i].Dependent < out[j].Dependent
		}
		return out[i].Primary < out[j].Primary
	})
	return out
}

// EvaluateInOrder runs fn for every node in a topological order of the
// declared constraints. Independent nodes keep their order in nodes. Every
// primary a node depends on must be part of nodes. The first error stops the
// pass; the returned slice lists the nodes in the order they were evaluated.
func (c *Coordinator) EvaluateInOrder(ctx context.Context, nodes []model.ProjectNode, fn EvalFunc) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	ids := make([]string, 0, len(nodes))
	byName := make(map[string]model.ProjectNode, len(nodes))
	for _, n := range nodes {
		c.Register(n)
		ids = append(ids, n.Name)
		byName[n.Name] = n
	}

	order, err := c.graph.TopologicalOrder(ids)
	if err != nil {
		return nil, fmt.Errorf("ordering evaluation: %w", err)
	}
	logger.Debug("Evaluation order computed.", "order", order)

	evaluated := make([]string, 0, len(order))
	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return evaluated, err
		}
		node := byName[id]
		if err := c.evaluate(ctx, node, fn); err != nil {
			return evaluated, err
		}
		evaluated = append(evaluated, id)
	}
	return evaluated, nil
}

func (c *Coordinator) evaluate(ctx context.Context, node model.ProjectNode, fn EvalFunc) error {
	ctx, span := tracer.Start(ctx, "coordinator.evaluate",
		trace.WithAttributes(attribute.String("project", node.Name)))
	defer span.End()

	ctx = ctxlog.With(ctx, "project", node.Name)
	ctxlog.FromContext(ctx).Debug("Evaluating project.")
	if err := fn(ctx, node); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("evaluating project %s: %w", node, err)
	}
	return nil
}

// ReconcileIdentifier checks that every module declaring key agrees on its
// value. The first declaration becomes canonical; a later one that differs
// fails with a *ConfigMismatchError instead of silently winning. Empty values
// are treated as undeclared.
func (c *Coordinator) ReconcileIdentifier(key, module, value string) error {
	if value == "" {
		return nil
	}
	first, ok := c.canonical[key]
	if !ok {
		c.canonical[key] = canonicalValue{module: module, value: value}
		return nil
	}
	if first.value != value {
		return &ConfigMismatchError{
			Key:         key,
			FirstModule: first.module,
			FirstValue:  first.value,
			Module:      module,
			Value:       value,
		}
	}
	return nil
}

// Canonical returns the canonical value recorded for key.
func (c *Coordinator) Canonical(key string) (string, bool) {
	v, ok := c.canonical[key]
	return v.value, ok
}
