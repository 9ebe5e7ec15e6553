package schema

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// FromOpenAPI loads an OpenAPI 3 document and returns the named component
// schema (components.schemas.<component>) converted to a Property.
func FromOpenAPI(ctx context.Context, data []byte, component string) (*Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("schema: openapi document payload is empty")
	}
	component = strings.TrimSpace(component)
	if component == "" {
		return nil, errors.New("schema: openapi component name is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("schema: load openapi document: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("schema: openapi document declares no component schemas")
	}

	ref, ok := spec.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("schema: openapi component %q not found", component)
	}
	return convertOpenAPI(ref, 0), nil
}

// Recursive component references stop expanding past this depth.
const maxOpenAPIDepth = 32

func convertOpenAPI(ref *openapi3.SchemaRef, depth int) *Property {
	if ref == nil || ref.Value == nil || depth > maxOpenAPIDepth {
		return &Property{}
	}
	src := ref.Value
	prop := &Property{
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
	}
	if src.Type != nil {
		prop.Type = firstType(src.Type.Slice())
	}
	if len(src.Enum) > 0 {
		prop.Enum = slices.Clone(src.Enum)
	}
	if src.Items != nil {
		prop.Items = convertOpenAPI(src.Items, depth+1)
	}
	if len(src.Properties) > 0 {
		prop.Properties = make(map[string]*Property, len(src.Properties))
		for name, child := range src.Properties {
			prop.Properties[name] = convertOpenAPI(child, depth+1)
		}
		// kin-openapi decodes properties into a map, so declaration order is
		// lost; fall back to the sorted view.
		prop.Order = prop.Names()
		if prop.Type == "" {
			prop.Type = "object"
		}
	}
	return prop
}
