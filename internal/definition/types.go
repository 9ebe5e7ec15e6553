package definition

import (
	"github.com/goliatone/go-formel/pkg/field"
)

// Form is one named form definition.
type Form struct {
	ID string
	// Source is the file the definition was read from.
	Source string
	// Attrs are the attributes of the <form> element.
	Attrs field.Attrs
	// Fields are the field attribute bags in render order. When empty, one
	// field per schema property is rendered.
	Fields []field.Attrs

	// Schema is a path inside the loaded filesystem. Component selects a
	// components.schemas entry when the file is an OpenAPI document.
	Schema    string
	Component string
	PhraseKey string
	Values    map[string]any
	// Edit is nil when the definition leaves the mode to the caller.
	Edit *bool
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Form      map[string]any   `json:"form" yaml:"form"`
	Fields    []map[string]any `json:"fields" yaml:"fields"`
	Schema    string           `json:"schema" yaml:"schema"`
	Component string           `json:"component" yaml:"component"`
	PhraseKey string           `json:"phraseKey" yaml:"phraseKey"`
	Values    map[string]any   `json:"values" yaml:"values"`
	Edit      *bool            `json:"edit" yaml:"edit"`
}
