package schema

import (
	"errors"
	"slices"

	js "github.com/invopop/jsonschema"
)

// Reflect derives a Property from a Go struct value using its json and
// jsonschema tags. Properties keep struct field order.
func Reflect(v any) (*Property, error) {
	if v == nil {
		return nil, errors.New("schema: reflect target is nil")
	}
	r := &js.Reflector{DoNotReference: true, ExpandedStruct: true}
	root := r.Reflect(v)
	if root == nil || root.Type != "object" {
		return nil, errors.New("schema: reflected root is not an object")
	}
	return convertReflected(root), nil
}

// MustReflect panics when v cannot be reflected.
func MustReflect(v any) *Property {
	prop, err := Reflect(v)
	if err != nil {
		panic(err)
	}
	return prop
}

func convertReflected(src *js.Schema) *Property {
	if src == nil {
		return &Property{}
	}
	prop := &Property{
		Type:        src.Type,
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
	}
	if prop.Type == "" && len(src.AnyOf) > 0 {
		for _, alt := range src.AnyOf {
			if alt != nil && alt.Type != "" && alt.Type != "null" {
				prop.Type = alt.Type
				break
			}
		}
	}
	if len(src.Enum) > 0 {
		prop.Enum = slices.Clone(src.Enum)
	}
	if src.Items != nil {
		prop.Items = convertReflected(src.Items)
	}
	if src.Properties != nil && src.Properties.Len() > 0 {
		prop.Properties = make(map[string]*Property, src.Properties.Len())
		for el := src.Properties.Oldest(); el != nil; el = el.Next() {
			prop.Properties[el.Key] = convertReflected(el.Value)
			prop.Order = append(prop.Order, el.Key)
		}
	}
	return prop
}
