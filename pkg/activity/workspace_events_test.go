package activity

import "testing"

func TestBuildLayerUpdatedEventIncludesProperties(t *testing.T) {
	props := map[string]any{"blurRadius": 20.0}
	input := WorkspaceEventInput{
		ActorID:     " actor ",
		WorkspaceID: " ws-1 ",
		LayerID:     " layer-1 ",
		Revision:    3,
		Properties:  props,
		Previous:    map[string]any{"blurRadius": 10.0},
		Metadata:    map[string]any{"source": "slider"},
	}

	event := BuildLayerUpdatedEvent(input)

	if event.Verb != VerbLayerUpdated || event.ObjectType != ObjectTypeLayer {
		t.Fatalf("unexpected verb/object type: %+v", event)
	}
	if event.ObjectID != "layer-1" || event.WorkspaceID != "ws-1" || event.ActorID != "actor" {
		t.Fatalf("unexpected identity fields: %+v", event)
	}
	if event.Metadata["revision"] != uint64(3) {
		t.Fatalf("expected revision metadata, got %v", event.Metadata["revision"])
	}
	properties, ok := event.Metadata["properties"].(map[string]any)
	if !ok || properties["blurRadius"] != 20.0 {
		t.Fatalf("expected properties metadata, got %v", event.Metadata["properties"])
	}
	previous, ok := event.Metadata["previous"].(map[string]any)
	if !ok || previous["blurRadius"] != 10.0 {
		t.Fatalf("expected previous metadata, got %v", event.Metadata["previous"])
	}
	if event.Metadata["source"] != "slider" {
		t.Fatalf("expected custom metadata preserved, got %v", event.Metadata["source"])
	}

	properties["blurRadius"] = 99.0
	if props["blurRadius"] != 20.0 {
		t.Fatalf("expected input properties to be cloned")
	}
}

func TestBuildContainerUpdatedEventUsesWorkspaceID(t *testing.T) {
	event := BuildContainerUpdatedEvent(WorkspaceEventInput{
		WorkspaceID: "ws-9",
		Properties:  map[string]any{"width": 300.0},
	})
	if event.Verb != VerbContainerUpdated || event.ObjectType != ObjectTypeContainer {
		t.Fatalf("unexpected verb/object type: %+v", event)
	}
	if event.ObjectID != "ws-9" {
		t.Fatalf("expected container object id to be workspace id, got %q", event.ObjectID)
	}
}

func TestBuildWorkspaceEventFallsBackToObjectType(t *testing.T) {
	event := BuildLayerRemovedEvent(WorkspaceEventInput{})
	if event.ObjectID != ObjectTypeLayer {
		t.Fatalf("expected object id fallback, got %q", event.ObjectID)
	}
	if event.Metadata != nil {
		t.Fatalf("expected nil metadata for empty input, got %v", event.Metadata)
	}
	added := BuildLayerAddedEvent(WorkspaceEventInput{LayerID: "l1"})
	if added.Verb != VerbLayerAdded || added.ObjectID != "l1" {
		t.Fatalf("unexpected added event: %+v", added)
	}
}
