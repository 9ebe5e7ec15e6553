package field

import (
	"context"
	"html"

	"github.com/goliatone/go-formel/pkg/element"
)

// Control renders a bare control of the given input type outside a field.
// Setting "control" or "edit" to false renders the read-only form instead.
// Checkboxes without a value get value="true".
func (r *Renderer) Control(ctx context.Context, typ string, attrs Attrs) (string, error) {
	flat := mergeAttributes(attrs)
	mode := ModeEdit
	for _, key := range []string{"control", "edit"} {
		if flag := boolPtr(flat[key]); flag != nil && !*flag {
			mode = ModeDisplay
		}
		delete(flat, key)
	}
	phraseKey := flat.String("phrase-key")
	delete(flat, "phrase-key")

	if normalizeType(typ) == "checkbox" && !flat.Has("value") {
		flat["value"] = "true"
	}
	return r.renderControl(ctx, ControlRequest{Type: typ, Attrs: flat, Mode: mode, PhraseKey: phraseKey})
}

// Select renders a <select> from options/values/selected/options-disabled/cue
// attributes; the remaining attributes land on the select element.
func (r *Renderer) Select(ctx context.Context, attrs Attrs) (string, error) {
	return r.Control(ctx, "select", attrs)
}

// Label renders a label, or an <h3> when "edit" is false. Empty content
// renders nothing. Content is escaped unless "escape" is false.
func (r *Renderer) Label(attrs Attrs) string {
	flat := mergeAttributes(attrs)
	content := flat["content"]
	delete(flat, "content")
	if escape, ok := flat["el-escape"]; ok {
		flat["escape"] = escape
		delete(flat, "el-escape")
	}
	edit := true
	if flag := boolPtr(flat["edit"]); flag != nil {
		edit = *flag
	}
	return r.label(flat, content, edit)
}

// Fieldset wraps pre-rendered content in a <fieldset>, with an optional
// legend taken from the "legend" attribute.
func (r *Renderer) Fieldset(attrs Attrs, content string) string {
	flat := mergeAttributes(attrs)
	if legend := flat.String("legend"); legend != "" {
		content = "<legend><span>" + html.EscapeString(legend) + "</span></legend>" + content
	}
	delete(flat, "legend")
	return element.Render(element.Element{Tag: "fieldset", Attrs: htmlAttrs(flat), Content: content, Raw: true})
}
