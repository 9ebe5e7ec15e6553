package field

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formel/pkg/element"
)

// ControlRequest is what a control renderer receives.
type ControlRequest struct {
	Type      string
	Attrs     Attrs
	Mode      Mode
	PhraseKey string
}

// RenderFunc renders one control.
type RenderFunc func(ctx context.Context, r *Renderer, req ControlRequest) (string, error)

// Control pairs the edit and display renderers of an input type. A nil
// Display falls back to the generic paragraph rendering of the value.
type Control struct {
	Name    string
	Edit    RenderFunc
	Display RenderFunc
}

// Controls maps input types to their renderers. Callers can register new
// types or override defaults.
type Controls struct {
	mu       sync.RWMutex
	controls map[string]Control
}

// NewControls creates an empty registry.
func NewControls() *Controls {
	return &Controls{controls: make(map[string]Control)}
}

// DefaultControls returns a registry holding the built-in input types.
func DefaultControls() *Controls {
	c := NewControls()
	for _, typ := range []string{"text", "radio", "password", "file", "hidden", "submit"} {
		c.MustRegister(typ, Control{Edit: renderInput, Display: renderValue})
	}
	c.MustRegister("checkbox", Control{Edit: renderInput, Display: renderCheckedState})
	c.MustRegister("textarea", Control{Edit: renderTextarea, Display: renderValue})
	c.MustRegister("select", Control{Edit: renderSelect, Display: renderSelectedOptions})
	return c
}

// Clone returns a copy to allow isolated mutations.
func (c *Controls) Clone() *Controls {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cloned := NewControls()
	for name, control := range c.controls {
		cloned.controls[name] = control
	}
	return cloned
}

// Register associates a control with the input type name. Existing entries
// are replaced.
func (c *Controls) Register(name string, control Control) error {
	if name = normalizeType(name); name == "" {
		return fmt.Errorf("field: control type is required")
	}
	if control.Edit == nil {
		return fmt.Errorf("field: edit renderer for %q is nil", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	control.Name = name
	c.controls[name] = control
	return nil
}

// MustRegister mirrors Register but panics on error.
func (c *Controls) MustRegister(name string, control Control) {
	if err := c.Register(name, control); err != nil {
		panic(err)
	}
}

// Control fetches the control registered for name.
func (c *Controls) Control(name string) (Control, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	control, ok := c.controls[normalizeType(name)]
	return control, ok
}

// Names returns the registered input types, sorted.
func (c *Controls) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.controls))
	for name := range c.controls {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func normalizeType(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// renderControl dispatches to the registered control. Unknown types render
// as a generic <input> carrying the requested type.
func (r *Renderer) renderControl(ctx context.Context, req ControlRequest) (string, error) {
	control, ok := r.controls.Control(req.Type)
	if !ok {
		r.logger.DebugContext(ctx, "control type not registered, using generic input", slog.String("type", req.Type))
		control = Control{Edit: renderInput, Display: renderValue}
	}

	fn := control.Edit
	if req.Mode == ModeDisplay {
		fn = control.Display
		if fn == nil {
			fn = renderValue
		}
	}
	out, err := fn(ctx, r, req)
	if err != nil {
		return "", fmt.Errorf("field: render %s control: %w", req.Type, err)
	}
	return out, nil
}

// Keys consumed by option building or phrase lookups; never HTML attributes.
var controlOnlyKeys = []string{"options", "values", "selected", "options-disabled", "cue", "content", "label"}

func htmlAttrs(attrs Attrs, drop ...string) Attrs {
	out := attrs.Clone()
	for _, key := range controlOnlyKeys {
		delete(out, key)
	}
	for _, key := range drop {
		delete(out, key)
	}
	for key, value := range out {
		if _, nested := element.AsAttrs(value); nested {
			delete(out, key)
		}
	}
	return out
}

func (r *Renderer) placeholder(req ControlRequest, attrs Attrs) {
	if attrs.Has("placeholder") || req.PhraseKey == "" {
		return
	}
	if text, ok := r.phrases.Phrase(req.PhraseKey+".placeholder", nil); ok {
		attrs["placeholder"] = text
	}
}

func renderInput(_ context.Context, r *Renderer, req ControlRequest) (string, error) {
	attrs := htmlAttrs(req.Attrs)
	attrs["type"] = req.Type
	if req.Type == "text" {
		r.placeholder(req, attrs)
	}
	return element.Render(element.Element{Tag: "input", Attrs: attrs}), nil
}

func renderTextarea(_ context.Context, r *Renderer, req ControlRequest) (string, error) {
	attrs := htmlAttrs(req.Attrs, "value", "type")
	r.placeholder(req, attrs)
	content := req.Attrs["content"]
	if content == nil {
		content = req.Attrs["value"]
	}
	return element.Render(element.Element{Tag: "textarea", Attrs: attrs, Content: content}), nil
}

func renderSelect(_ context.Context, r *Renderer, req ControlRequest) (string, error) {
	selected := req.Attrs["selected"]
	if selected == nil {
		selected = req.Attrs["value"]
	}
	opts := r.BuildOptions(OptionSpec{
		Options:  listOrNil(req.Attrs["options"]),
		Values:   listOrNil(req.Attrs["values"]),
		Selected: selected,
		Disabled: req.Attrs["options-disabled"],
		Cue:      req.Attrs["cue"],
	})
	attrs := htmlAttrs(req.Attrs, "value", "type")
	return element.Render(element.Element{
		Tag:     "select",
		Attrs:   attrs,
		Content: renderOptions(opts),
		Raw:     true,
	}), nil
}

func renderValue(_ context.Context, _ *Renderer, req ControlRequest) (string, error) {
	return element.Render(element.Element{Content: element.Stringify(req.Attrs["value"]), Wrap: "p"}), nil
}

func renderCheckedState(_ context.Context, _ *Renderer, req ControlRequest) (string, error) {
	checked := false
	if flag := boolPtr(req.Attrs["checked"]); flag != nil {
		checked = *flag
	}
	return element.Render(element.Element{Content: fmt.Sprint(checked), Wrap: "p"}), nil
}

func renderSelectedOptions(_ context.Context, r *Renderer, req ControlRequest) (string, error) {
	selected := req.Attrs["selected"]
	if selected == nil {
		selected = req.Attrs["value"]
	}
	opts := r.BuildOptions(OptionSpec{
		Options:  listOrNil(req.Attrs["options"]),
		Values:   listOrNil(req.Attrs["values"]),
		Selected: selected,
	})
	var lines []any
	for _, opt := range opts {
		if opt.Selected {
			lines = append(lines, opt.Content)
		}
	}
	if len(lines) == 0 {
		return element.Render(element.Element{Content: "", Wrap: "p"}), nil
	}
	return element.Render(element.Element{Content: lines, Wrap: "p"}), nil
}

func listOrNil(value any) []any {
	if value == nil {
		return nil
	}
	return element.List(value)
}
