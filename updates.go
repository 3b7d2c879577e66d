package shadow

// LayerProperty names an editable ShadowLayer field.
type LayerProperty string

const (
	PropHorizontalOffset LayerProperty = "horizontalOffset"
	PropVerticalOffset   LayerProperty = "verticalOffset"
	PropBlurRadius       LayerProperty = "blurRadius"
	PropSpreadRadius     LayerProperty = "spreadRadius"
	PropColor            LayerProperty = "color"
	PropActiveInset      LayerProperty = "activeInset"
)

// ContainerProperty names an editable ContainerSettings field.
type ContainerProperty string

const (
	PropWidth           ContainerProperty = "width"
	PropHeight          ContainerProperty = "height"
	PropBorderRadius    ContainerProperty = "borderRadius"
	PropBackgroundColor ContainerProperty = "backgroundColor"
)

// LayerUpdate replaces exactly one field of a ShadowLayer. Values are built
// with the field constructors (BlurRadius, Color, ...) so the value type
// always matches the field. There is no constructor for the id.
type LayerUpdate interface {
	Property() LayerProperty
	Value() any
	applyLayer(*ShadowLayer)
}

// ContainerUpdate replaces exactly one field of ContainerSettings.
type ContainerUpdate interface {
	Property() ContainerProperty
	Value() any
	applyContainer(*ContainerSettings)
}

type layerUpdate struct {
	property LayerProperty
	value    any
	set      func(*ShadowLayer)
}

func (u layerUpdate) Property() LayerProperty { return u.property }
func (u layerUpdate) Value() any              { return u.value }

func (u layerUpdate) applyLayer(layer *ShadowLayer) {
	if u.set != nil && layer != nil {
		u.set(layer)
	}
}

type containerUpdate struct {
	property ContainerProperty
	value    any
	set      func(*ContainerSettings)
}

func (u containerUpdate) Property() ContainerProperty { return u.property }
func (u containerUpdate) Value() any                  { return u.value }

func (u containerUpdate) applyContainer(settings *ContainerSettings) {
	if u.set != nil && settings != nil {
		u.set(settings)
	}
}

// HorizontalOffset sets ShadowLayer.HorizontalOffset.
func HorizontalOffset(px float64) LayerUpdate {
	return layerUpdate{PropHorizontalOffset, px, func(l *ShadowLayer) { l.HorizontalOffset = px }}
}

// VerticalOffset sets ShadowLayer.VerticalOffset.
func VerticalOffset(px float64) LayerUpdate {
	return layerUpdate{PropVerticalOffset, px, func(l *ShadowLayer) { l.VerticalOffset = px }}
}

// BlurRadius sets ShadowLayer.BlurRadius.
func BlurRadius(px float64) LayerUpdate {
	return layerUpdate{PropBlurRadius, px, func(l *ShadowLayer) { l.BlurRadius = px }}
}

// SpreadRadius sets ShadowLayer.SpreadRadius.
func SpreadRadius(px float64) LayerUpdate {
	return layerUpdate{PropSpreadRadius, px, func(l *ShadowLayer) { l.SpreadRadius = px }}
}

// Color sets ShadowLayer.Color. The value is stored as given.
func Color(color string) LayerUpdate {
	return layerUpdate{PropColor, color, func(l *ShadowLayer) { l.Color = color }}
}

// ActiveInset sets ShadowLayer.ActiveInset.
func ActiveInset(inset Inset) LayerUpdate {
	return layerUpdate{PropActiveInset, inset, func(l *ShadowLayer) { l.ActiveInset = inset }}
}

// Width sets ContainerSettings.Width.
func Width(px float64) ContainerUpdate {
	return containerUpdate{PropWidth, px, func(c *ContainerSettings) { c.Width = px }}
}

// Height sets ContainerSettings.Height.
func Height(px float64) ContainerUpdate {
	return containerUpdate{PropHeight, px, func(c *ContainerSettings) { c.Height = px }}
}

// BorderRadius sets ContainerSettings.BorderRadius.
func BorderRadius(px float64) ContainerUpdate {
	return containerUpdate{PropBorderRadius, px, func(c *ContainerSettings) { c.BorderRadius = px }}
}

// BackgroundColor sets ContainerSettings.BackgroundColor.
func BackgroundColor(color string) ContainerUpdate {
	return containerUpdate{PropBackgroundColor, color, func(c *ContainerSettings) { c.BackgroundColor = color }}
}
