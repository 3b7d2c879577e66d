package activity

import (
	"strings"
	"time"
)

const (
	VerbLayerAdded       = "shadow.layer.added"
	VerbLayerRemoved     = "shadow.layer.removed"
	VerbLayerUpdated     = "shadow.layer.updated"
	VerbContainerUpdated = "shadow.container.updated"

	ObjectTypeLayer     = "shadow.layer"
	ObjectTypeContainer = "shadow.container"
)

// WorkspaceEventInput carries the fields shared by workspace mutation events.
type WorkspaceEventInput struct {
	ActorID     string
	UserID      string
	TenantID    string
	WorkspaceID string
	LayerID     string
	Channel     string
	Revision    uint64
	// Properties maps each changed property to its new value.
	Properties map[string]any
	// Previous maps each changed property to its value before the mutation.
	Previous   map[string]any
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildLayerAddedEvent describes a layer appended to the workspace.
func BuildLayerAddedEvent(input WorkspaceEventInput) Event {
	return buildWorkspaceEvent(VerbLayerAdded, ObjectTypeLayer, input.LayerID, input)
}

// BuildLayerRemovedEvent describes a layer removed from the workspace.
func BuildLayerRemovedEvent(input WorkspaceEventInput) Event {
	return buildWorkspaceEvent(VerbLayerRemoved, ObjectTypeLayer, input.LayerID, input)
}

// BuildLayerUpdatedEvent describes one or more property changes on a layer.
func BuildLayerUpdatedEvent(input WorkspaceEventInput) Event {
	return buildWorkspaceEvent(VerbLayerUpdated, ObjectTypeLayer, input.LayerID, input)
}

// BuildContainerUpdatedEvent describes container property changes. The
// container is addressed by the workspace id.
func BuildContainerUpdatedEvent(input WorkspaceEventInput) Event {
	return buildWorkspaceEvent(VerbContainerUpdated, ObjectTypeContainer, input.WorkspaceID, input)
}

func buildWorkspaceEvent(verb, objectType, objectID string, input WorkspaceEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Revision > 0 {
		metadata = ensureMetadata(metadata)
		metadata["revision"] = input.Revision
	}
	if len(input.Properties) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["properties"] = cloneMap(input.Properties)
	}
	if len(input.Previous) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["previous"] = cloneMap(input.Previous)
	}

	objectID = strings.TrimSpace(objectID)
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Verb:        verb,
		ActorID:     strings.TrimSpace(input.ActorID),
		UserID:      strings.TrimSpace(input.UserID),
		TenantID:    strings.TrimSpace(input.TenantID),
		WorkspaceID: strings.TrimSpace(input.WorkspaceID),
		ObjectType:  objectType,
		ObjectID:    objectID,
		Channel:     strings.TrimSpace(input.Channel),
		Metadata:    metadata,
		OccurredAt:  input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
