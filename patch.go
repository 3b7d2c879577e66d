package shadow

import (
	"context"
	"fmt"
	"sort"

	"github.com/goliatone/go-shadow/internal/hydrate"
)

var layerPatchDecoder = hydrate.NewDecoder[[]LayerUpdate](
	hydrate.WithUseNumber[[]LayerUpdate](),
	hydrate.WithCustomDecoder[[]LayerUpdate](func(_ hydrate.Context, payload map[string]any) ([]LayerUpdate, error) {
		updates := make([]LayerUpdate, 0, len(payload))
		for _, key := range sortedKeys(payload) {
			update, err := ParseLayerUpdate(key, payload[key])
			if err != nil {
				return nil, err
			}
			updates = append(updates, update)
		}
		return updates, nil
	}),
)

var containerPatchDecoder = hydrate.NewDecoder[[]ContainerUpdate](
	hydrate.WithUseNumber[[]ContainerUpdate](),
	hydrate.WithCustomDecoder[[]ContainerUpdate](func(_ hydrate.Context, payload map[string]any) ([]ContainerUpdate, error) {
		updates := make([]ContainerUpdate, 0, len(payload))
		for _, key := range sortedKeys(payload) {
			update, err := ParseContainerUpdate(key, payload[key])
			if err != nil {
				return nil, err
			}
			updates = append(updates, update)
		}
		return updates, nil
	}),
)

// DecodeLayerPatch parses a JSON object such as {"blurRadius": 20} into layer
// updates ordered by property name.
func DecodeLayerPatch(data []byte) ([]LayerUpdate, error) {
	updates, err := layerPatchDecoder.DecodeJSON(hydrate.Context{Target: "layer"}, data)
	if err != nil {
		return nil, fmt.Errorf("shadow: layer patch: %w", err)
	}
	return updates, nil
}

// DecodeContainerPatch parses a JSON object such as {"width": 300} into
// container updates ordered by property name.
func DecodeContainerPatch(data []byte) ([]ContainerUpdate, error) {
	updates, err := containerPatchDecoder.DecodeJSON(hydrate.Context{Target: "container"}, data)
	if err != nil {
		return nil, fmt.Errorf("shadow: container patch: %w", err)
	}
	return updates, nil
}

// ApplyLayerPatch decodes data and applies every update to the layer with id
// as one change. Decode errors leave the state untouched. The bool reports
// whether the layer exists.
func (w *Workspace) ApplyLayerPatch(ctx context.Context, id string, data []byte) (bool, error) {
	updates, err := DecodeLayerPatch(data)
	if err != nil {
		return false, err
	}
	return w.SetLayerProperties(ctx, id, updates...), nil
}

// ApplyContainerPatch decodes data and applies every update to the container
// as one change.
func (w *Workspace) ApplyContainerPatch(ctx context.Context, data []byte) error {
	updates, err := DecodeContainerPatch(data)
	if err != nil {
		return err
	}
	w.SetContainerProperties(ctx, updates...)
	return nil
}

func sortedKeys(payload map[string]any) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
