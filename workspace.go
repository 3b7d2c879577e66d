package shadow

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/goliatone/go-shadow/pkg/activity"
)

// Operation names a workspace mutation.
type Operation string

const (
	OpAddLayer             Operation = "layer.add"
	OpRemoveLayer          Operation = "layer.remove"
	OpSetLayerProperty     Operation = "layer.update"
	OpSetContainerProperty Operation = "container.update"
)

// Change is delivered to listeners after a mutation has been applied.
type Change struct {
	Revision   uint64
	Operation  Operation
	LayerID    string
	Properties []string
	State      WorkspaceState
}

// Listener observes applied changes. Changes are delivered one at a time in
// revision order, after the workspace lock has been released. When another
// goroutine is already delivering, the mutating call returns and that
// goroutine delivers the change instead.
type Listener func(Change)

// Reader exposes read access to the editing state.
type Reader interface {
	Snapshot() WorkspaceState
	Layer(id string) (ShadowLayer, bool)
}

// Mutator exposes the sanctioned mutations.
type Mutator interface {
	AddLayer(ctx context.Context) ShadowLayer
	RemoveLayer(ctx context.Context, id string) bool
	SetLayerProperty(ctx context.Context, id string, update LayerUpdate) bool
	SetContainerProperty(ctx context.Context, update ContainerUpdate)
}

// Store is what consumers receive: reads, mutations and change notification.
type Store interface {
	Reader
	Mutator
	Subscribe(Listener) (cancel func())
}

var _ Store = (*Workspace)(nil)

// Workspace owns one editing session's state. All mutation goes through its
// methods; Snapshot hands out detached copies. Safe for concurrent use.
type Workspace struct {
	mu       sync.RWMutex
	state    WorkspaceState
	revision uint64

	cfg     config
	emitter *activity.Emitter

	// pending and delivering are guarded by mu.
	pending    []pendingChange
	delivering bool

	listenersMu  sync.Mutex
	listeners    []listenerEntry
	nextListener uint64
}

type pendingChange struct {
	ctx    context.Context
	change Change
	event  activity.Event
	start  time.Time
}

type listenerEntry struct {
	id uint64
	fn Listener
}

// New creates a workspace holding one layer built from the layer template and
// the default container settings.
func New(opts ...Option) *Workspace {
	cfg := applyOptions(opts)
	logRejectedFunctions(cfg.logger, cfg.rejected)
	if cfg.evaluator == nil {
		cfg.evaluator = NewExprEvaluator(
			ExprWithProgramCache(cfg.programCache),
			ExprWithFunctionRegistry(cfg.functions),
		)
	}
	w := &Workspace{
		cfg:     cfg,
		emitter: cfg.emitter(),
	}
	first := cfg.layerTemplate
	first.ID = w.newLayerIDLocked()
	w.state = WorkspaceState{
		ShadowLayers:      []ShadowLayer{first},
		ContainerSettings: cfg.container,
	}
	return w
}

// ID returns the workspace identifier used in activity events.
func (w *Workspace) ID() string {
	return w.cfg.workspaceID
}

// Revision returns the number of mutations applied so far.
func (w *Workspace) Revision() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.revision
}

// Snapshot returns a copy of the current state.
func (w *Workspace) Snapshot() WorkspaceState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.Clone()
}

// Layer returns the layer with id.
func (w *Workspace) Layer(id string) (ShadowLayer, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	idx := w.state.LayerIndex(id)
	if idx < 0 {
		return ShadowLayer{}, false
	}
	return w.state.ShadowLayers[idx], true
}

// AddLayer appends a copy of the layer template with a fresh id and returns it.
func (w *Workspace) AddLayer(ctx context.Context) ShadowLayer {
	start := time.Now()

	w.mu.Lock()
	layer := w.cfg.layerTemplate
	layer.ID = w.newLayerIDLocked()
	w.state.ShadowLayers = append(w.state.ShadowLayers, layer)
	change := w.commitLocked(OpAddLayer, layer.ID, nil)
	input := w.eventInput(change)
	input.Properties = layerProperties(layer)
	w.enqueueLocked(ctx, change, activity.BuildLayerAddedEvent(input), start)
	w.mu.Unlock()

	w.deliver()
	return layer
}

// RemoveLayer removes the layer with id, keeping the order of the others. It
// reports whether a layer was removed; an unknown id leaves the state as is.
func (w *Workspace) RemoveLayer(ctx context.Context, id string) bool {
	start := time.Now()

	w.mu.Lock()
	idx := w.state.LayerIndex(id)
	if idx < 0 {
		w.mu.Unlock()
		return false
	}
	removed := w.state.ShadowLayers[idx]
	w.state.ShadowLayers = slices.Delete(w.state.ShadowLayers, idx, idx+1)
	change := w.commitLocked(OpRemoveLayer, id, nil)
	input := w.eventInput(change)
	input.Previous = layerProperties(removed)
	w.enqueueLocked(ctx, change, activity.BuildLayerRemovedEvent(input), start)
	w.mu.Unlock()

	w.deliver()
	return true
}

// SetLayerProperty applies update to the layer with id. It reports whether
// the layer exists; values are stored without range checks.
func (w *Workspace) SetLayerProperty(ctx context.Context, id string, update LayerUpdate) bool {
	if update == nil {
		return false
	}
	return w.SetLayerProperties(ctx, id, update)
}

// SetLayerProperties applies updates to the layer with id as a single change.
func (w *Workspace) SetLayerProperties(ctx context.Context, id string, updates ...LayerUpdate) bool {
	updates = compactLayerUpdates(updates)
	if len(updates) == 0 {
		return false
	}
	start := time.Now()

	w.mu.Lock()
	idx := w.state.LayerIndex(id)
	if idx < 0 {
		w.mu.Unlock()
		return false
	}
	layer := &w.state.ShadowLayers[idx]
	properties := make(map[string]any, len(updates))
	previous := make(map[string]any, len(updates))
	names := make([]string, 0, len(updates))
	for _, update := range updates {
		name := string(update.Property())
		if _, seen := previous[name]; !seen {
			old, _ := layer.Get(update.Property())
			previous[name] = old
			names = append(names, name)
		}
		update.applyLayer(layer)
		properties[name] = update.Value()
	}
	change := w.commitLocked(OpSetLayerProperty, id, names)
	input := w.eventInput(change)
	input.Properties = properties
	input.Previous = previous
	w.enqueueLocked(ctx, change, activity.BuildLayerUpdatedEvent(input), start)
	w.mu.Unlock()

	w.deliver()
	return true
}

// SetContainerProperty applies update to the container settings.
func (w *Workspace) SetContainerProperty(ctx context.Context, update ContainerUpdate) {
	if update == nil {
		return
	}
	w.SetContainerProperties(ctx, update)
}

// SetContainerProperties applies updates to the container as a single change.
func (w *Workspace) SetContainerProperties(ctx context.Context, updates ...ContainerUpdate) {
	updates = compactContainerUpdates(updates)
	if len(updates) == 0 {
		return
	}
	start := time.Now()

	w.mu.Lock()
	settings := &w.state.ContainerSettings
	properties := make(map[string]any, len(updates))
	previous := make(map[string]any, len(updates))
	names := make([]string, 0, len(updates))
	for _, update := range updates {
		name := string(update.Property())
		if _, seen := previous[name]; !seen {
			old, _ := settings.Get(update.Property())
			previous[name] = old
			names = append(names, name)
		}
		update.applyContainer(settings)
		properties[name] = update.Value()
	}
	change := w.commitLocked(OpSetContainerProperty, "", names)
	input := w.eventInput(change)
	input.Properties = properties
	input.Previous = previous
	w.enqueueLocked(ctx, change, activity.BuildContainerUpdatedEvent(input), start)
	w.mu.Unlock()

	w.deliver()
}

// Subscribe registers fn for change notifications. The returned function
// removes the subscription and is safe to call more than once.
func (w *Workspace) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	w.listenersMu.Lock()
	w.nextListener++
	id := w.nextListener
	w.listeners = append(w.listeners, listenerEntry{id: id, fn: fn})
	w.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.listenersMu.Lock()
			defer w.listenersMu.Unlock()
			w.listeners = slices.DeleteFunc(w.listeners, func(entry listenerEntry) bool {
				return entry.id == id
			})
		})
	}
}

func (w *Workspace) commitLocked(op Operation, layerID string, properties []string) Change {
	w.revision++
	return Change{
		Revision:   w.revision,
		Operation:  op,
		LayerID:    layerID,
		Properties: properties,
		State:      w.state.Clone(),
	}
}

func (w *Workspace) enqueueLocked(ctx context.Context, change Change, event activity.Event, start time.Time) {
	w.pending = append(w.pending, pendingChange{ctx: ctx, change: change, event: event, start: start})
}

// deliver drains pending changes unless another call is already doing so.
// Listeners may mutate the workspace; the nested change is queued behind the
// current one.
func (w *Workspace) deliver() {
	w.mu.Lock()
	if w.delivering {
		w.mu.Unlock()
		return
	}
	w.delivering = true
	w.mu.Unlock()

	drained := false
	defer func() {
		if !drained {
			w.mu.Lock()
			w.delivering = false
			w.mu.Unlock()
		}
	}()

	for {
		w.mu.Lock()
		if len(w.pending) == 0 {
			w.delivering = false
			drained = true
			w.mu.Unlock()
			return
		}
		next := w.pending[0]
		w.pending[0] = pendingChange{}
		w.pending = w.pending[1:]
		w.mu.Unlock()

		w.publish(next.ctx, next.change, next.event, next.start)
	}
}

func (w *Workspace) publish(ctx context.Context, change Change, event activity.Event, start time.Time) {
	if ctx == nil {
		ctx = context.Background()
	}

	w.listenersMu.Lock()
	listeners := make([]Listener, 0, len(w.listeners))
	for _, entry := range w.listeners {
		listeners = append(listeners, entry.fn)
	}
	w.listenersMu.Unlock()

	for _, fn := range listeners {
		delivered := change
		delivered.State = change.State.Clone()
		delivered.Properties = slices.Clone(change.Properties)
		fn(delivered)
	}

	err := w.emitter.Emit(ctx, event)
	property := ""
	if len(change.Properties) == 1 {
		property = change.Properties[0]
	}
	w.cfg.logger.LogMutation(MutationLogEvent{
		Operation: change.Operation,
		LayerID:   change.LayerID,
		Property:  property,
		Revision:  change.Revision,
		Duration:  time.Since(start),
		Err:       err,
	})
}

func (w *Workspace) eventInput(change Change) activity.WorkspaceEventInput {
	return activity.WorkspaceEventInput{
		WorkspaceID: w.cfg.workspaceID,
		LayerID:     change.LayerID,
		Revision:    change.Revision,
	}
}

// newLayerIDLocked returns an id not used by any current layer.
func (w *Workspace) newLayerIDLocked() string {
	id := w.cfg.idGenerator.NewID()
	for id == "" || w.state.LayerIndex(id) >= 0 {
		id = uuidGenerator{}.NewID()
	}
	return id
}

func layerProperties(layer ShadowLayer) map[string]any {
	return map[string]any{
		string(PropHorizontalOffset): layer.HorizontalOffset,
		string(PropVerticalOffset):   layer.VerticalOffset,
		string(PropBlurRadius):       layer.BlurRadius,
		string(PropSpreadRadius):     layer.SpreadRadius,
		string(PropColor):            layer.Color,
		string(PropActiveInset):      string(layer.ActiveInset),
	}
}

func compactLayerUpdates(updates []LayerUpdate) []LayerUpdate {
	out := updates[:0:0]
	for _, update := range updates {
		if update != nil {
			out = append(out, update)
		}
	}
	return out
}

func compactContainerUpdates(updates []ContainerUpdate) []ContainerUpdate {
	out := updates[:0:0]
	for _, update := range updates {
		if update != nil {
			out = append(out, update)
		}
	}
	return out
}
