package field

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formel/pkg/element"
)

// Field renders one field: the container, its auxiliary blocks and either a
// single control or a group of input/label pairs. Fields without their own
// model inherit the one bound on ctx by Form or WithModel.
func (r *Renderer) Field(ctx context.Context, attrs Attrs) (string, error) {
	return r.FieldConfig(ctx, Normalize(attrs))
}

// FieldConfig renders an already normalised field.
func (r *Renderer) FieldConfig(ctx context.Context, cfg Config) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := r.resolve(ScopeFrom(ctx), cfg)
	if err != nil {
		return "", err
	}

	blocks := r.collectBlocks(b, cfg.Blocks)
	label := blocks[BlockLabel]
	delete(blocks, BlockLabel)
	legend, hasLegend := blocks[BlockLegend]
	delete(blocks, BlockLegend)

	rendered := make(map[BlockKey]string, len(blocks)+2)
	for key, block := range blocks {
		if key.message() {
			rendered[key] = r.message(b.Name, string(key), block)
		} else {
			rendered[key] = r.renderBlock(key, block)
		}
	}

	container := cfg.Field.Clone()
	tag := "div"
	if t := container.String("tag"); t != "" {
		tag = t
	}
	delete(container, "tag")

	classes := []string{r.classes.Control}
	if b.Name != "" {
		classes = append(classes, r.classes.Control+"-"+b.Name)
	}
	container["class"] = mergeClass(cfg.Class, classes...)

	content := ""
	if cfg.HasContent {
		content = cfg.Content
	} else {
		if !b.Input.Has("id") {
			b.Input["id"] = "input-" + b.Name
		}
		if b.Fieldset {
			main, err := r.renderGroup(ctx, b)
			if err != nil {
				return "", err
			}
			rendered[BlockMain] = main
			if hasLegend {
				rendered[BlockLabel] = r.renderLegend(b, legend, container)
			}
		} else {
			main, err := r.renderSingle(ctx, b)
			if err != nil {
				return "", err
			}
			rendered[BlockMain] = main
			rendered[BlockLabel] = r.renderLabel(b, label)
		}
	}

	order := editOrder
	if b.Mode == ModeDisplay {
		order = displayOrder
	}
	var out strings.Builder
	out.WriteString(content)
	for _, key := range order {
		out.WriteString(rendered[key])
	}

	return element.Render(element.Element{
		Tag:     tag,
		Attrs:   htmlAttrs(container),
		Content: out.String(),
		Raw:     true,
	}), nil
}

func (r *Renderer) renderSingle(ctx context.Context, b Binding) (string, error) {
	typ := b.Type
	if typ == "" {
		typ = "text"
	}
	control, err := r.renderControl(ctx, ControlRequest{
		Type:      typ,
		Attrs:     b.Input,
		Mode:      b.Mode,
		PhraseKey: b.PhraseKey,
	})
	if err != nil {
		return "", err
	}
	return element.Render(element.Element{
		Tag:     "div",
		Attrs:   Attrs{"class": r.classes.mode(b.Mode)},
		Content: control,
		Raw:     true,
	}), nil
}

// renderLabel renders the label block of a single control. Display mode uses
// a heading without a for attribute.
func (r *Renderer) renderLabel(b Binding, block Attrs) string {
	attrs := block.Clone()
	if attrs == nil {
		attrs = Attrs{}
	}
	content := attrs["content"]
	delete(attrs, "content")
	if isEmpty(content) {
		content = r.capitalize(b.Name)
	}
	if !attrs.Has("for") {
		attrs["for"] = b.Input["id"]
	}
	return r.label(attrs, content, b.Mode == ModeEdit)
}

func (r *Renderer) label(attrs Attrs, content any, edit bool) string {
	if isEmpty(content) {
		return ""
	}
	raw := false
	if escape := boolPtr(attrs["escape"]); escape != nil && !*escape {
		raw = true
	}
	delete(attrs, "escape")
	delete(attrs, "edit")

	tag := "label"
	if !edit {
		tag = "h3"
		delete(attrs, "for")
	}
	if raw {
		content = r.sanitize(element.Stringify(content))
	}
	return element.Render(element.Element{Tag: tag, Attrs: htmlAttrs(attrs), Content: content, Raw: raw})
}

// renderLegend renders the group legend as a paragraph and labels the
// container with it.
func (r *Renderer) renderLegend(b Binding, legend Attrs, container Attrs) string {
	attrs := legend.Clone()
	content := attrs["content"]
	delete(attrs, "content")

	id := attrs.String("id")
	if id == "" {
		id = "control-group-" + b.Name + "-label"
	}
	attrs["id"] = id

	if !container.Has("role") {
		container["role"] = "group"
	}
	container["aria-labelledby"] = id
	return element.Render(element.Element{Tag: "p", Attrs: htmlAttrs(attrs), Content: content})
}

// renderGroup expands the binding's inputs into (control, label) pairs, each
// wrapped in a mode-tagged div.
func (r *Renderer) renderGroup(ctx context.Context, b Binding) (string, error) {
	typ := b.Type
	if typ == "" {
		typ = "radio"
	}
	items := b.Inputs
	if items == nil {
		items = b.Labels
	}
	checked := stringSet(b.Checked)
	disabled := stringSet(b.InputsDisabled)

	var out strings.Builder
	for i, raw := range items {
		input := Attrs{}
		if m, ok := element.AsAttrs(raw); ok {
			input = m.Clone()
		} else {
			input["value"] = raw
		}
		if !input.Has("value") && input.Has("content") {
			input["value"] = input["content"]
		}
		if !input.Has("name") {
			input["name"] = b.Name
		}
		if !input.Has("id") {
			input["id"] = input.String("name") + "-" + strconv.Itoa(i)
		}

		var labelContent any
		switch {
		case i < len(b.Labels) && b.Labels[i] != nil:
			labelContent = b.Labels[i]
		case input.Has("label"):
			labelContent = input["label"]
		case input.Has("content"):
			labelContent = input["content"]
		default:
			labelContent = input["value"]
		}
		delete(input, "label")
		delete(input, "content")

		value := input.String("value")
		input["value"] = value
		if checked != nil {
			input["checked"] = containsString(checked, value)
		}
		if disabled != nil {
			input["disabled"] = containsString(disabled, value)
		}

		labelAttrs := Attrs{"for": input["id"]}
		if b.Mode == ModeDisplay {
			delete(input, "name")
			delete(input, "id")
			input["disabled"] = true
			delete(labelAttrs, "for")
		}

		control, err := r.renderControl(ctx, ControlRequest{Type: typ, Attrs: input, Mode: ModeEdit, PhraseKey: b.PhraseKey})
		if err != nil {
			return "", fmt.Errorf("field: %q input %d: %w", b.Name, i, err)
		}
		pair := control + element.Render(element.Element{Tag: "label", Attrs: labelAttrs, Content: labelContent})
		out.WriteString(element.Render(element.Element{
			Tag:     "div",
			Attrs:   Attrs{"class": r.classes.mode(b.Mode)},
			Content: pair,
			Raw:     true,
		}))
	}
	return out.String(), nil
}

func containsString(set []string, value string) bool {
	for _, item := range set {
		if item == value {
			return true
		}
	}
	return false
}
