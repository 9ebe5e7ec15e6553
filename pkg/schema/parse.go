package schema

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON or YAML schema document. Property order is kept so
// callers iterating Names see the document's declaration order.
func Parse(data []byte) (*Property, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("schema: document is empty")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("schema: parse document: invalid JSON or YAML: %w", err)
	}
	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, errors.New("schema: document is empty")
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema: document root must be an object, got %s", kindName(node.Kind))
	}
	return propertyFromNode(node, "")
}

// MustParse panics when the document cannot be parsed. Useful for tests and
// init-time fixtures.
func MustParse(data []byte) *Property {
	prop, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return prop
}

func propertyFromNode(node *yaml.Node, path string) (*Property, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema: %s must be an object, got %s", pathLabel(path), kindName(node.Kind))
	}

	prop := &Property{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]

		switch key {
		case "type":
			switch value.Kind {
			case yaml.ScalarNode:
				prop.Type = strings.TrimSpace(value.Value)
			case yaml.SequenceNode:
				var types []string
				if err := value.Decode(&types); err != nil {
					return nil, fmt.Errorf("schema: %s type: %w", pathLabel(path), err)
				}
				prop.Type = firstType(types)
			}
		case "format":
			prop.Format = value.Value
		case "title":
			prop.Title = value.Value
		case "description":
			prop.Description = value.Value
		case "enum":
			var values []any
			if err := value.Decode(&values); err != nil {
				return nil, fmt.Errorf("schema: %s enum: %w", pathLabel(path), err)
			}
			prop.Enum = values
		case "items":
			if value.Kind != yaml.MappingNode {
				continue
			}
			items, err := propertyFromNode(value, joinPath(path, "items"))
			if err != nil {
				return nil, err
			}
			prop.Items = items
		case "properties":
			if value.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("schema: %s properties must be an object", pathLabel(path))
			}
			prop.Properties = make(map[string]*Property, len(value.Content)/2)
			for j := 0; j+1 < len(value.Content); j += 2 {
				name := value.Content[j].Value
				child, err := propertyFromNode(value.Content[j+1], joinPath(path, name))
				if err != nil {
					return nil, err
				}
				if _, exists := prop.Properties[name]; !exists {
					prop.Order = append(prop.Order, name)
				}
				prop.Properties[name] = child
			}
		}
	}
	if prop.Type == "" && len(prop.Properties) > 0 {
		prop.Type = "object"
	}
	return prop, nil
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

func pathLabel(path string) string {
	if path == "" {
		return "root"
	}
	return fmt.Sprintf("property %q", path)
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "array"
	case yaml.MappingNode:
		return "object"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
