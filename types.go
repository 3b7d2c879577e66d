package shadow

// Inset marks whether a layer renders outside or inside the container.
type Inset string

const (
	// InsetNone renders the shadow outside the container (drop shadow).
	InsetNone Inset = ""
	// InsetInner renders the shadow inside the container.
	InsetInner Inset = "inset"
)

// ShadowLayer is one drop-shadow description. ID is assigned on creation and
// never changes afterwards.
type ShadowLayer struct {
	ID               string  `json:"id"`
	HorizontalOffset float64 `json:"horizontalOffset"`
	VerticalOffset   float64 `json:"verticalOffset"`
	BlurRadius       float64 `json:"blurRadius"`
	SpreadRadius     float64 `json:"spreadRadius"`
	Color            string  `json:"color"`
	ActiveInset      Inset   `json:"activeInset"`
}

// ContainerSettings styles the preview box the layers are rendered against.
type ContainerSettings struct {
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	BorderRadius    float64 `json:"borderRadius"`
	BackgroundColor string  `json:"backgroundColor"`
}

// WorkspaceState is the aggregate root. ShadowLayers is kept in display order.
type WorkspaceState struct {
	ShadowLayers      []ShadowLayer     `json:"boxShadows"`
	ContainerSettings ContainerSettings `json:"containerProps"`
}

// DefaultLayerTemplate returns the template new layers are copied from. The ID
// is left empty; the workspace assigns one on creation.
func DefaultLayerTemplate() ShadowLayer {
	return ShadowLayer{
		HorizontalOffset: 0,
		VerticalOffset:   5,
		BlurRadius:       10,
		SpreadRadius:     -5,
		Color:            "rgba(0,0,0,0.1)",
		ActiveInset:      InsetNone,
	}
}

// DefaultContainerSettings returns the initial preview container settings.
func DefaultContainerSettings() ContainerSettings {
	return ContainerSettings{
		Width:           200,
		Height:          200,
		BorderRadius:    0,
		BackgroundColor: "#ffffff",
	}
}

// Clone returns a copy of s whose layer slice is detached from the original.
func (s WorkspaceState) Clone() WorkspaceState {
	out := WorkspaceState{ContainerSettings: s.ContainerSettings}
	if s.ShadowLayers != nil {
		out.ShadowLayers = make([]ShadowLayer, len(s.ShadowLayers))
		copy(out.ShadowLayers, s.ShadowLayers)
	}
	return out
}

// LayerIndex returns the position of the layer with id, or -1.
func (s WorkspaceState) LayerIndex(id string) int {
	for i := range s.ShadowLayers {
		if s.ShadowLayers[i].ID == id {
			return i
		}
	}
	return -1
}

// LayerIDs lists the layer ids in display order.
func (s WorkspaceState) LayerIDs() []string {
	ids := make([]string, 0, len(s.ShadowLayers))
	for _, layer := range s.ShadowLayers {
		ids = append(ids, layer.ID)
	}
	return ids
}

// Get returns the value of property on l.
func (l ShadowLayer) Get(property LayerProperty) (any, bool) {
	switch property {
	case PropHorizontalOffset:
		return l.HorizontalOffset, true
	case PropVerticalOffset:
		return l.VerticalOffset, true
	case PropBlurRadius:
		return l.BlurRadius, true
	case PropSpreadRadius:
		return l.SpreadRadius, true
	case PropColor:
		return l.Color, true
	case PropActiveInset:
		return l.ActiveInset, true
	}
	return nil, false
}

// Get returns the value of property on c.
func (c ContainerSettings) Get(property ContainerProperty) (any, bool) {
	switch property {
	case PropWidth:
		return c.Width, true
	case PropHeight:
		return c.Height, true
	case PropBorderRadius:
		return c.BorderRadius, true
	case PropBackgroundColor:
		return c.BackgroundColor, true
	}
	return nil, false
}
