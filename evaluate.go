package shadow

import (
	"errors"
	"fmt"
	"time"
)

var ErrNoEvaluator = errors.New("shadow: evaluator not configured")

// Evaluator executes read-only expressions against a workspace snapshot.
// Expressions see the bindings layers, container, layerCount, now and args.
type Evaluator interface {
	Evaluate(ctx EvalContext, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
}

// CompiledRule is a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx EvalContext) (any, error)
}

// EvalContext carries the inputs of one evaluation. A nil State evaluates
// against an empty workspace.
type EvalContext struct {
	State *WorkspaceState
	Now   *time.Time
	Args  map[string]any
}

func (ctx EvalContext) withDefaults() EvalContext {
	if ctx.Now == nil {
		now := time.Now()
		ctx.Now = &now
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	return ctx
}

func (ctx EvalContext) timestamp() time.Time {
	return *ctx.withDefaults().Now
}

func (ctx EvalContext) bindings() map[string]any {
	ctx = ctx.withDefaults()
	var state WorkspaceState
	if ctx.State != nil {
		state = *ctx.State
	}
	env := stateBindings(state)
	env["now"] = *ctx.Now
	env["args"] = ctx.Args
	return env
}

func stateBindings(state WorkspaceState) map[string]any {
	layers := make([]any, 0, len(state.ShadowLayers))
	for _, layer := range state.ShadowLayers {
		binding := layerProperties(layer)
		binding["id"] = layer.ID
		layers = append(layers, binding)
	}
	container := map[string]any{
		string(PropWidth):           state.ContainerSettings.Width,
		string(PropHeight):          state.ContainerSettings.Height,
		string(PropBorderRadius):    state.ContainerSettings.BorderRadius,
		string(PropBackgroundColor): state.ContainerSettings.BackgroundColor,
	}
	return map[string]any{
		"layers":     layers,
		"container":  container,
		"layerCount": len(state.ShadowLayers),
	}
}

// Evaluate runs expr against the current snapshot.
func (w *Workspace) Evaluate(expr string) (any, error) {
	return w.EvaluateWith(EvalContext{}, expr)
}

// EvaluateWith runs expr against ctx, using the current snapshot when
// ctx.State is nil.
func (w *Workspace) EvaluateWith(ctx EvalContext, expr string) (any, error) {
	if expr == "" {
		return nil, fmt.Errorf("shadow: expression must not be empty")
	}
	evaluator := w.cfg.evaluator
	if evaluator == nil {
		return nil, ErrNoEvaluator
	}
	var revision uint64
	if ctx.State == nil {
		w.mu.RLock()
		snapshot := w.state.Clone()
		revision = w.revision
		w.mu.RUnlock()
		ctx.State = &snapshot
	}
	ctx = ctx.withDefaults()

	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, err := evaluator.Evaluate(ctx, expr)
	err = withSnapshot(expressionError(engine, expr, err), revision, ctx.State)
	w.cfg.logger.LogEvaluation(EvaluationLogEvent{
		Engine:   engine,
		Expr:     expr,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Compile compiles expr with the workspace evaluator for repeated use.
func (w *Workspace) Compile(expr string) (CompiledRule, error) {
	if w.cfg.evaluator == nil {
		return nil, ErrNoEvaluator
	}
	return w.cfg.evaluator.Compile(expr)
}

type engineNamer interface {
	engine() string
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	if named, ok := e.(engineNamer); ok {
		return named.engine()
	}
	return "custom"
}
