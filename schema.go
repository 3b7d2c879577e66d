package shadow

import "strings"

// FieldDescriptor describes an editable path and its value kind.
type FieldDescriptor struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

const (
	fieldTypeNumber = "number"
	fieldTypeString = "string"
)

var layerDescriptors = []FieldDescriptor{
	{Path: joinPath("layer", string(PropHorizontalOffset)), Type: fieldTypeNumber},
	{Path: joinPath("layer", string(PropVerticalOffset)), Type: fieldTypeNumber},
	{Path: joinPath("layer", string(PropBlurRadius)), Type: fieldTypeNumber},
	{Path: joinPath("layer", string(PropSpreadRadius)), Type: fieldTypeNumber},
	{Path: joinPath("layer", string(PropColor)), Type: fieldTypeString},
	{Path: joinPath("layer", string(PropActiveInset)), Type: fieldTypeString},
}

var containerDescriptors = []FieldDescriptor{
	{Path: joinPath("container", string(PropWidth)), Type: fieldTypeNumber},
	{Path: joinPath("container", string(PropHeight)), Type: fieldTypeNumber},
	{Path: joinPath("container", string(PropBorderRadius)), Type: fieldTypeNumber},
	{Path: joinPath("container", string(PropBackgroundColor)), Type: fieldTypeString},
}

// Describe lists every property the workspace accepts updates for, layer
// fields first, in declaration order. The returned slice is owned by the caller.
func Describe() []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(layerDescriptors)+len(containerDescriptors))
	out = append(out, layerDescriptors...)
	out = append(out, containerDescriptors...)
	return out
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return strings.Join([]string{prefix, segment}, ".")
}
