package shadow

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnknownProperty indicates a property name that is not an editable field.
	ErrUnknownProperty = errors.New("shadow: unknown property")
	// ErrReadOnlyProperty indicates an attempt to update a layer id.
	ErrReadOnlyProperty = errors.New("shadow: property is read-only")
	// ErrPropertyType indicates a value whose kind does not match the field.
	ErrPropertyType = errors.New("shadow: property value has wrong type")
)

// ParseLayerUpdate maps a property name and loosely typed value onto the
// matching LayerUpdate constructor. Numbers may be any Go numeric type or a
// json.Number. Ranges are not checked.
func ParseLayerUpdate(property string, value any) (LayerUpdate, error) {
	switch LayerProperty(property) {
	case PropHorizontalOffset:
		n, err := numberValue(property, value)
		if err != nil {
			return nil, err
		}
		return HorizontalOffset(n), nil
	case PropVerticalOffset:
		n, err := numberValue(property, value)
		if err != nil {
			return nil, err
		}
		return VerticalOffset(n), nil
	case PropBlurRadius:
		n, err := numberValue(property, value)
		if err != nil {
			return nil, err
		}
		return BlurRadius(n), nil
	case PropSpreadRadius:
		n, err := numberValue(property, value)
		if err != nil {
			return nil, err
		}
		return SpreadRadius(n), nil
	case PropColor:
		s, err := stringValue(property, value)
		if err != nil {
			return nil, err
		}
		return Color(s), nil
	case PropActiveInset:
		if inset, ok := value.(Inset); ok {
			return ActiveInset(inset), nil
		}
		s, err := stringValue(property, value)
		if err != nil {
			return nil, err
		}
		return ActiveInset(Inset(s)), nil
	case "id":
		return nil, fmt.Errorf("%w: %q", ErrReadOnlyProperty, property)
	default:
		return nil, fmt.Errorf("%w: layer.%s", ErrUnknownProperty, property)
	}
}

// ParseContainerUpdate maps a property name and value onto the matching
// ContainerUpdate constructor.
func ParseContainerUpdate(property string, value any) (ContainerUpdate, error) {
	switch ContainerProperty(property) {
	case PropWidth:
		n, err := numberValue(property, value)
		if err != nil {
			return nil, err
		}
		return Width(n), nil
	case PropHeight:
		n, err := numberValue(property, value)
		if err != nil {
			return nil, err
		}
		return Height(n), nil
	case PropBorderRadius:
		n, err := numberValue(property, value)
		if err != nil {
			return nil, err
		}
		return BorderRadius(n), nil
	case PropBackgroundColor:
		s, err := stringValue(property, value)
		if err != nil {
			return nil, err
		}
		return BackgroundColor(s), nil
	default:
		return nil, fmt.Errorf("%w: container.%s", ErrUnknownProperty, property)
	}
}

func numberValue(property string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s expects a number, got %q", ErrPropertyType, property, v.String())
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: %s expects a number, got %T", ErrPropertyType, property, value)
}

func stringValue(property string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s expects a string, got %T", ErrPropertyType, property, value)
	}
	return s, nil
}
