package shadow

import (
	"github.com/goliatone/go-shadow/pkg/activity"
)

// Option configures a Workspace at construction.
type Option func(*config)

type config struct {
	workspaceID    string
	idGenerator    IDGenerator
	layerTemplate  ShadowLayer
	container      ContainerSettings
	activityHooks  activity.Hooks
	activityConfig *activity.Config
	logger         Logger
	evaluator      Evaluator
	programCache   ProgramCache
	functions      *FunctionRegistry
	rejected       []rejectedFunction
}

func applyOptions(opts []Option) config {
	cfg := config{
		idGenerator:   uuidGenerator{},
		layerTemplate: DefaultLayerTemplate(),
		container:     DefaultContainerSettings(),
		logger:        noopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.workspaceID == "" {
		cfg.workspaceID = uuidGenerator{}.NewID()
	}
	return cfg
}

func (cfg config) emitter() *activity.Emitter {
	activityCfg := activity.Config{Enabled: true}
	if cfg.activityConfig != nil {
		activityCfg = *cfg.activityConfig
	}
	return activity.NewEmitter(cfg.activityHooks, activityCfg)
}

// WithWorkspaceID sets the id used to address the workspace (and its
// container) in activity events. A random UUID is used when empty.
func WithWorkspaceID(id string) Option {
	return func(cfg *config) {
		cfg.workspaceID = id
	}
}

// WithIDGenerator replaces the UUID based layer id generator.
func WithIDGenerator(generator IDGenerator) Option {
	return func(cfg *config) {
		if generator != nil {
			cfg.idGenerator = generator
		}
	}
}

// WithLayerTemplate sets the template AddLayer copies. The initial layer is
// built from it as well. Any ID on the template is ignored.
func WithLayerTemplate(template ShadowLayer) Option {
	return func(cfg *config) {
		template.ID = ""
		cfg.layerTemplate = template
	}
}

// WithContainerDefaults sets the initial container settings.
func WithContainerDefaults(settings ContainerSettings) Option {
	return func(cfg *config) {
		cfg.container = settings
	}
}

// WithActivityHooks attaches hooks notified after every applied mutation.
// Nil entries are dropped.
func WithActivityHooks(hooks ...activity.ActivityHook) Option {
	return func(cfg *config) {
		for _, hook := range hooks {
			if hook != nil {
				cfg.activityHooks = append(cfg.activityHooks, hook)
			}
		}
	}
}

// WithActivityConfig replaces the emitter configuration. Without this option
// emission is enabled whenever hooks exist; with it, activityCfg.Enabled must
// be true or no events are emitted.
func WithActivityConfig(activityCfg activity.Config) Option {
	return func(cfg *config) {
		cfg.activityConfig = &activityCfg
	}
}

// WithLogger attaches a Logger. A nil logger disables logging.
func WithLogger(logger Logger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.logger = noopLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithEvaluator sets the evaluator used by Evaluate. Defaults to expr.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *config) {
		cfg.evaluator = e
	}
}
