package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownProperty reports a lookup for a property the schema does not
// declare. Callers bound to a schema are expected to only render declared
// fields.
var ErrUnknownProperty = errors.New("schema: unknown property")

// Property is the subset of JSON Schema the renderer reads: the value type,
// enumerations, array items and nested object properties.
type Property struct {
	Type        string               `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string               `json:"format,omitempty" yaml:"format,omitempty"`
	Title       string               `json:"title,omitempty" yaml:"title,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Enum        []any                `json:"enum,omitempty" yaml:"enum,omitempty"`
	Items       *Property            `json:"items,omitempty" yaml:"items,omitempty"`
	Properties  map[string]*Property `json:"properties,omitempty" yaml:"properties,omitempty"`
	// Order preserves the declaration order of Properties when the source
	// provides one.
	Order []string `json:"-" yaml:"-"`
}

// Lookup returns the named child property.
func (p *Property) Lookup(name string) (*Property, error) {
	if p == nil {
		return nil, fmt.Errorf("%w %q: schema is nil", ErrUnknownProperty, name)
	}
	child, ok := p.Properties[name]
	if !ok || child == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownProperty, name)
	}
	return child, nil
}

// Effective applies the array indirection: for array properties it returns the
// item schema and true, otherwise the property itself and false.
func (p *Property) Effective() (*Property, bool) {
	if p == nil {
		return nil, false
	}
	if p.Type == "array" {
		if p.Items == nil {
			return &Property{}, true
		}
		return p.Items, true
	}
	return p, false
}

// Enumerable reports whether the property carries an enumeration.
func (p *Property) Enumerable() bool {
	return p != nil && len(p.Enum) > 0
}

// Names returns property names in declaration order when known, otherwise
// sorted alphabetically.
func (p *Property) Names() []string {
	if p == nil || len(p.Properties) == 0 {
		return nil
	}
	if len(p.Order) == len(p.Properties) {
		return slices.Clone(p.Order)
	}
	names := make([]string, 0, len(p.Properties))
	for name := range p.Properties {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Clone returns a deep copy.
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	out := *p
	out.Enum = slices.Clone(p.Enum)
	out.Order = slices.Clone(p.Order)
	out.Items = p.Items.Clone()
	if len(p.Properties) > 0 {
		out.Properties = make(map[string]*Property, len(p.Properties))
		for name, child := range p.Properties {
			out.Properties[name] = child.Clone()
		}
	}
	return &out
}

func firstType(values []string) string {
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" && value != "null" {
			return value
		}
	}
	return ""
}
