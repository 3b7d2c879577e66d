// Package shadow holds the editing state of a box-shadow editor: an ordered
// list of shadow layers plus the settings of the preview container.
//
// A Workspace is the single owner of that state. Consumers read detached
// snapshots and request changes through four operations:
//
//	ws := shadow.New()
//	layer := ws.AddLayer(ctx)
//	ws.SetLayerProperty(ctx, layer.ID, shadow.BlurRadius(20))
//	ws.SetContainerProperty(ctx, shadow.Width(300))
//	ws.RemoveLayer(ctx, layer.ID)
//
// Updates are typed values built with one constructor per field, so a value
// can never be stored in a field of the wrong kind. ParseLayerUpdate,
// ParseContainerUpdate and the JSON patch helpers bridge from property names.
//
// Operations on an unknown layer id are silent no-ops; the returned bool is
// the only signal. Numeric ranges are not validated.
//
// Distribution:
//
//	ctx = shadow.NewContext(ctx, ws)
//	store, _ := shadow.FromContext(ctx)
//	cancel := store.Subscribe(func(change shadow.Change) { ... })
//
// Listeners and activity hooks (see pkg/activity) run after each applied
// mutation, never for no-ops.
package shadow
