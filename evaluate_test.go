package shadow_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	shadow "github.com/goliatone/go-shadow"
)

func TestEvaluateDefaultExprBindings(t *testing.T) {
	ctx := context.Background()
	ws := shadow.New()
	ws.AddLayer(ctx)
	ws.SetContainerProperty(ctx, shadow.Width(300))

	count, err := ws.Evaluate("layerCount")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected layerCount 2, got %v", count)
	}

	width, err := ws.Evaluate("container.width")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if width != 300.0 {
		t.Fatalf("expected width 300, got %v", width)
	}

	blur, err := ws.Evaluate("layers[1].blurRadius + layers[0].blurRadius")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blur != 20.0 {
		t.Fatalf("expected 20, got %v", blur)
	}
}

func TestEvaluateWithExplicitState(t *testing.T) {
	ws := shadow.New()
	state := shadow.WorkspaceState{
		ShadowLayers:      []shadow.ShadowLayer{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		ContainerSettings: shadow.DefaultContainerSettings(),
	}
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	result, err := ws.EvaluateWith(shadow.EvalContext{
		State: &state,
		Now:   &now,
		Args:  map[string]any{"limit": 2},
	}, "len(layers) > args.limit && now.Year() == 2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != true {
		t.Fatalf("expected true, got %v", result)
	}
}

func TestEvaluateErrors(t *testing.T) {
	var logged []shadow.EvaluationLogEvent
	ws := shadow.New(shadow.WithLogger(shadow.LoggerFuncs{
		Evaluation: func(event shadow.EvaluationLogEvent) { logged = append(logged, event) },
	}))

	if _, err := ws.Evaluate(""); err == nil {
		t.Fatalf("expected empty expression to fail")
	}
	_, err := ws.Evaluate("layers[")
	if err == nil {
		t.Fatalf("expected syntax error")
	}
	var evalErr *shadow.EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if evalErr.Engine != "expr" || evalErr.Expr != "layers[" {
		t.Fatalf("unexpected error metadata %+v", evalErr)
	}
	if evalErr.Revision != 0 || evalErr.Layers != 1 {
		t.Fatalf("expected snapshot metadata for the initial workspace, got %+v", evalErr)
	}
	if len(logged) != 1 || logged[0].Err == nil || logged[0].Engine != "expr" {
		t.Fatalf("expected failed evaluation to be logged, got %+v", logged)
	}
}

func TestEvaluateCustomFunctions(t *testing.T) {
	ws := shadow.New(shadow.WithCustomFunction("double", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("double expects one argument")
		}
		n, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("double expects a number")
		}
		return n * 2, nil
	}))

	result, err := ws.Evaluate("double(layers[0].blurRadius)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 20.0 {
		t.Fatalf("expected 20, got %v", result)
	}

	result, err = ws.Evaluate(`call("double", container.height)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 400.0 {
		t.Fatalf("expected 400, got %v", result)
	}
}

func TestFunctionRegistry(t *testing.T) {
	registry := shadow.NewFunctionRegistry()
	upper := func(args ...any) (any, error) { return strings.ToUpper(fmt.Sprint(args...)), nil }
	if err := registry.Register("Upper", upper); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := registry.Register("upper", upper); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := registry.Register("", upper); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := registry.Register("nil", nil); err == nil {
		t.Fatalf("expected nil function to fail")
	}

	clone := registry.Clone()
	if err := registry.Register("later", upper); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if names := clone.Names(); len(names) != 1 || names[0] != "upper" {
		t.Fatalf("expected clone to be detached, got %v", names)
	}

	value, err := registry.Call("UPPER", "red")
	if err != nil || value != "RED" {
		t.Fatalf("expected RED, got %v (%v)", value, err)
	}
	if _, err := registry.Call("missing"); err == nil {
		t.Fatalf("expected missing function to fail")
	}
}

func TestCompiledRuleReusesProgram(t *testing.T) {
	ctx := context.Background()
	cache := shadow.NewProgramCache()
	ws := shadow.New(shadow.WithProgramCache(cache))

	rule, err := ws.Compile("layerCount * 10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.Get("expr:layerCount * 10"); !ok {
		t.Fatalf("expected compiled program to be cached")
	}

	ws.AddLayer(ctx)
	state := ws.Snapshot()
	value, err := rule.Evaluate(shadow.EvalContext{State: &state})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != 20 {
		t.Fatalf("expected 20, got %v", value)
	}

	value, err = rule.Evaluate(shadow.EvalContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != 0 {
		t.Fatalf("expected empty state to give 0, got %v", value)
	}
}

func TestCELEvaluator(t *testing.T) {
	ctx := context.Background()
	registry := shadow.NewFunctionRegistry()
	_ = registry.Register("half", func(args ...any) (any, error) {
		return args[0].(float64) / 2, nil
	})
	cache := shadow.NewProgramCache()
	ws := shadow.New(shadow.WithEvaluator(shadow.NewCELEvaluator(
		shadow.CELWithProgramCache(cache),
		shadow.CELWithFunctionRegistry(registry),
	)))
	ws.AddLayer(ctx)

	size, err := ws.Evaluate("size(layers)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size != int64(2) {
		t.Fatalf("expected size 2, got %v (%T)", size, size)
	}

	check, err := ws.Evaluate("layerCount == 2 && container.width == 200.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check != true {
		t.Fatalf("expected true, got %v", check)
	}

	half, err := ws.Evaluate(`call("half", container.height)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if half != 100.0 {
		t.Fatalf("expected 100, got %v", half)
	}
	if _, ok := cache.Get("cel:size(layers)"); !ok {
		t.Fatalf("expected cel program to be cached")
	}

	_, err = ws.Evaluate("layers.")
	var evalErr *shadow.EvaluationError
	if !errors.As(err, &evalErr) || evalErr.Engine != "cel" {
		t.Fatalf("expected cel EvaluationError, got %v", err)
	}
}

func TestJSEvaluator(t *testing.T) {
	evaluator := shadow.NewJSEvaluator()
	if evaluator == nil {
		t.Skip("js evaluator requires the js_eval build tag")
	}
	ws := shadow.New(shadow.WithEvaluator(evaluator))
	value, err := ws.Evaluate("layers.length + container.width")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fmt.Sprint(value) != "201" {
		t.Fatalf("expected 201, got %v", value)
	}
}

func TestRejectedCustomFunctionsAreLogged(t *testing.T) {
	var logged []shadow.EvaluationLogEvent
	double := func(args ...any) (any, error) { return args[0], nil }
	ws := shadow.New(
		shadow.WithCustomFunction("double", double),
		shadow.WithCustomFunction("double", double),
		shadow.WithCustomFunction("", double),
		shadow.WithCustomFunction("broken", nil),
		shadow.WithLogger(shadow.LoggerFuncs{
			Evaluation: func(event shadow.EvaluationLogEvent) { logged = append(logged, event) },
		}),
	)

	if len(logged) != 3 {
		t.Fatalf("expected 3 rejected registrations, got %+v", logged)
	}
	names := []string{logged[0].Expr, logged[1].Expr, logged[2].Expr}
	if names[0] != "double" || names[1] != "" || names[2] != "broken" {
		t.Fatalf("unexpected rejected names %q", names)
	}
	for _, event := range logged {
		if event.Engine != "registry" || event.Err == nil {
			t.Fatalf("unexpected log event %+v", event)
		}
	}

	if _, err := ws.Evaluate("double(1)"); err != nil {
		t.Fatalf("expected first registration to stay usable, got %v", err)
	}
}

func TestEvaluationErrorCarriesRevision(t *testing.T) {
	ctx := context.Background()
	ws := shadow.New()
	ws.AddLayer(ctx)
	ws.SetContainerProperty(ctx, shadow.Width(300))

	_, err := ws.Evaluate("container.width +")
	var evalErr *shadow.EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %v", err)
	}
	if evalErr.Revision != 2 || evalErr.Layers != 2 {
		t.Fatalf("expected revision 2 with 2 layers, got %+v", evalErr)
	}
	if !strings.Contains(err.Error(), "at revision 2 (2 layers)") {
		t.Fatalf("expected snapshot in message, got %q", err.Error())
	}
}
