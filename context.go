package shadow

import "context"

type storeContextKey struct{}

// NewContext returns a copy of ctx carrying store. Consumers retrieve it with
// FromContext and only ever see the Store interface.
func NewContext(ctx context.Context, store Store) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, storeContextKey{}, store)
}

// FromContext returns the Store carried by ctx, if any.
func FromContext(ctx context.Context) (Store, bool) {
	if ctx == nil {
		return nil, false
	}
	store, ok := ctx.Value(storeContextKey{}).(Store)
	return store, ok && store != nil
}
