package field

import (
	"slices"

	"github.com/goliatone/go-formel/pkg/element"
)

// OptionDescriptor is one resolved choice of a select or input group.
type OptionDescriptor struct {
	Content  any
	Value    string
	HasValue bool
	Selected bool
	Disabled bool
	// Attrs carries any other attributes the caller set on the option.
	Attrs Attrs
}

// OptionSpec gathers the inputs of BuildOptions.
type OptionSpec struct {
	// Options are maps ({content, value, selected, disabled, ...}) or bare
	// scalars used as content. When nil, Values doubles as the option list.
	Options []any
	// Values overrides the value of the option at the same position.
	Values []any
	// Selected and Disabled are scalars or lists compared as strings. Nil
	// leaves each option's own flag untouched.
	Selected any
	Disabled any
	// Cue is prepended as a disabled, pre-selected placeholder when nothing
	// ends up selected. Strings get the cue class.
	Cue any
}

// BuildOptions resolves an OptionSpec into descriptors in input order.
// Duplicate values are kept.
func (r *Renderer) BuildOptions(spec OptionSpec) []OptionDescriptor {
	return buildOptions(spec, r.classes.SelectCue)
}

func buildOptions(spec OptionSpec, cueClass string) []OptionDescriptor {
	source := spec.Options
	if source == nil {
		source = spec.Values
	}
	selected := stringSet(spec.Selected)
	disabled := stringSet(spec.Disabled)

	out := make([]OptionDescriptor, 0, len(source)+1)
	anySelected := false
	for i, raw := range source {
		opt := optionFrom(raw)
		switch {
		case i < len(spec.Values) && spec.Values[i] != nil:
			opt.Value = element.Stringify(spec.Values[i])
		case !opt.HasValue:
			opt.Value = element.Stringify(opt.Content)
		}
		opt.HasValue = true

		if selected != nil {
			opt.Selected = slices.Contains(selected, opt.Value)
		}
		if disabled != nil {
			opt.Disabled = slices.Contains(disabled, opt.Value)
		}
		anySelected = anySelected || opt.Selected
		out = append(out, opt)
	}

	if !anySelected && spec.Cue != nil && spec.Cue != "" {
		cue := optionFrom(spec.Cue)
		if _, isMap := element.AsAttrs(spec.Cue); !isMap {
			cue.Selected = true
			cue.Disabled = true
			if cueClass != "" {
				cue.Attrs["class"] = cueClass
			}
		}
		out = slices.Insert(out, 0, cue)
	}
	return out
}

func optionFrom(raw any) OptionDescriptor {
	m, ok := element.AsAttrs(raw)
	if !ok {
		return OptionDescriptor{Content: raw, Attrs: Attrs{}}
	}
	attrs := m.Clone()
	opt := OptionDescriptor{Content: attrs["content"]}
	if value, ok := attrs["value"]; ok && value != nil {
		opt.Value = element.Stringify(value)
		opt.HasValue = true
	}
	if flag := boolPtr(attrs["selected"]); flag != nil {
		opt.Selected = *flag
	}
	if flag := boolPtr(attrs["disabled"]); flag != nil {
		opt.Disabled = *flag
	}
	for _, key := range []string{"content", "value", "selected", "disabled"} {
		delete(attrs, key)
	}
	opt.Attrs = attrs
	return opt
}

// stringSet normalises a selection specifier into strings. Nil stays nil so
// callers can tell "no specifier" from "empty specifier".
func stringSet(value any) []string {
	if value == nil {
		return nil
	}
	items := element.List(value)
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, element.Stringify(item))
	}
	return out
}

// renderOptions renders descriptors as <option> elements.
func renderOptions(opts []OptionDescriptor) string {
	var out string
	for _, opt := range opts {
		attrs := opt.Attrs.Clone()
		if opt.HasValue {
			attrs["value"] = opt.Value
		}
		attrs["selected"] = opt.Selected
		attrs["disabled"] = opt.Disabled
		out += element.Render(element.Element{Tag: "option", Attrs: attrs, Content: opt.Content})
	}
	return out
}
