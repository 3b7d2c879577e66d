package shadow

import (
	"context"
	"log/slog"
	"time"
)

// MutationLogEvent describes one applied mutation. Err carries activity hook
// failures; the mutation itself has already been committed.
type MutationLogEvent struct {
	Operation Operation
	LayerID   string
	Property  string
	Revision  uint64
	Duration  time.Duration
	Err       error
}

// EvaluationLogEvent describes an evaluation attempt for logging.
type EvaluationLogEvent struct {
	Engine   string
	Expr     string
	Duration time.Duration
	Err      error
}

// Logger records workspace events.
type Logger interface {
	LogMutation(MutationLogEvent)
	LogEvaluation(EvaluationLogEvent)
}

// LoggerFuncs adapts plain functions to Logger. Nil fields are skipped.
type LoggerFuncs struct {
	Mutation   func(MutationLogEvent)
	Evaluation func(EvaluationLogEvent)
}

// LogMutation implements Logger.
func (f LoggerFuncs) LogMutation(event MutationLogEvent) {
	if f.Mutation != nil {
		f.Mutation(event)
	}
}

// LogEvaluation implements Logger.
func (f LoggerFuncs) LogEvaluation(event EvaluationLogEvent) {
	if f.Evaluation != nil {
		f.Evaluation(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogMutation(MutationLogEvent)     {}
func (noopLogger) LogEvaluation(EvaluationLogEvent) {}

// NewSlogLogger emits mutations and evaluations to logger. Successful events
// are logged at debug level; failures at warn (hooks) or error (evaluation).
func NewSlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		return noopLogger{}
	}
	return slogLogger{logger: logger}
}

type slogLogger struct {
	logger *slog.Logger
}

func (l slogLogger) LogMutation(event MutationLogEvent) {
	attrs := []slog.Attr{
		slog.String("operation", string(event.Operation)),
		slog.Uint64("revision", event.Revision),
		slog.Duration("duration", event.Duration),
	}
	if event.LayerID != "" {
		attrs = append(attrs, slog.String("layer_id", event.LayerID))
	}
	if event.Property != "" {
		attrs = append(attrs, slog.String("property", event.Property))
	}
	level := slog.LevelDebug
	if event.Err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	l.logger.LogAttrs(context.Background(), level, "shadow.mutation", attrs...)
}

func (l slogLogger) LogEvaluation(event EvaluationLogEvent) {
	attrs := []slog.Attr{
		slog.String("engine", event.Engine),
		slog.String("expr", event.Expr),
		slog.Duration("duration", event.Duration),
	}
	level := slog.LevelDebug
	if event.Err != nil {
		level = slog.LevelError
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	l.logger.LogAttrs(context.Background(), level, "shadow.evaluation", attrs...)
}
