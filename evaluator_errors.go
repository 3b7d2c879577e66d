package shadow

import (
	"errors"
	"fmt"
	"strings"
)

// EvaluationError reports a failed expression together with the workspace
// snapshot it ran against. Revision is zero when the caller supplied the
// state through EvalContext; Layers is zero for failures from Compile.
type EvaluationError struct {
	Engine   string
	Expr     string
	Revision uint64
	Layers   int
	Err      error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "shadow: %s evaluator", e.Engine)
	if e.Expr != "" {
		fmt.Fprintf(&b, " expr=%q", e.Expr)
	}
	if e.Revision > 0 || e.Layers > 0 {
		fmt.Fprintf(&b, " at revision %d (%d layers)", e.Revision, e.Layers)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// engineError wraps failures that are not tied to an expression, such as a
// CEL environment that cannot be built.
func engineError(engine string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) || strings.HasPrefix(err.Error(), "shadow:") {
		return err
	}
	return fmt.Errorf("shadow: %s evaluator: %w", engine, err)
}

// expressionError attaches engine and expression to err. An EvaluationError
// already in the chain keeps its fields; only empty ones are filled.
func expressionError(engine, expr string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		return &EvaluationError{Engine: engine, Expr: expr, Err: err}
	}
	if evalErr.Engine == "" {
		evalErr.Engine = engine
	}
	if evalErr.Expr == "" {
		evalErr.Expr = expr
	}
	return evalErr
}

// withSnapshot records the revision and layer count an evaluation saw.
func withSnapshot(err error, revision uint64, state *WorkspaceState) error {
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		return err
	}
	evalErr.Revision = revision
	if state != nil {
		evalErr.Layers = len(state.ShadowLayers)
	}
	return err
}
