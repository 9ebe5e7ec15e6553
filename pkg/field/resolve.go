package field

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formel/pkg/element"
	"github.com/goliatone/go-formel/pkg/model"
)

// Binding is the resolved rendering plan for one field: either a single
// control (Input) or a group of input/label pairs (Fieldset).
type Binding struct {
	Name      string
	Type      string
	Fieldset  bool
	Mode      Mode
	PhraseKey string

	Input          Attrs
	Inputs         []any
	Labels         []any
	Checked        any
	InputsDisabled any

	Model model.Model
}

// resolve fills the gaps of cfg from the ambient scope and, when a model is
// bound, from the model and its schema. Caller-supplied values always win.
func (r *Renderer) resolve(scope Scope, cfg Config) (Binding, error) {
	b := Binding{
		Name:           cfg.Name,
		Type:           cfg.Type,
		PhraseKey:      cfg.PhraseKey,
		Input:          cfg.Input.Clone(),
		Inputs:         slices.Clone(cfg.Inputs),
		Labels:         slices.Clone(cfg.Labels),
		Checked:        cfg.Checked,
		InputsDisabled: cfg.InputsDisabled,
		Model:          cfg.Model,
	}
	if b.Model == nil {
		b.Model = scope.Model
	}
	b.Mode = resolveMode(scope, cfg)
	b.Fieldset = cfg.Inputs != nil || cfg.Labels != nil

	if b.Model != nil && b.Name != "" {
		if err := r.bindModel(&b); err != nil {
			return Binding{}, err
		}
	}

	if b.Type == "checkbox" && !b.Fieldset && !b.Input.Has("value") {
		b.Input["value"] = "true"
	}
	if !b.Fieldset && b.Checked != nil && !b.Input.Has("checked") {
		b.Input["checked"] = checkedState(b.Checked, b.Input.String("value"))
	}
	if b.Type == "password" {
		maskPassword(&b)
	}
	return b, nil
}

// resolveMode: explicit display decides when set, otherwise the scope's
// edit flag. An explicit edit flag overrides both.
func resolveMode(scope Scope, cfg Config) Mode {
	editable := scope.Edit == nil || *scope.Edit
	display := !editable
	if cfg.Display != nil {
		display = *cfg.Display
	}
	edit := !display
	if cfg.Edit != nil {
		edit = *cfg.Edit
	}
	if edit {
		return ModeEdit
	}
	return ModeDisplay
}

func (r *Renderer) bindModel(b *Binding) error {
	m := b.Model
	if b.PhraseKey == "" {
		if key := m.PhraseKey(); key != "" {
			b.PhraseKey = key + "." + b.Name
		}
	}

	if s := m.Schema(); s != nil {
		prop, err := s.Lookup(b.Name)
		if err != nil {
			return fmt.Errorf("field: %q: %w", b.Name, err)
		}
		items, isArray := prop.Effective()
		if items.Enumerable() {
			values := slices.Clone(items.Enum)
			labels := make([]any, len(values))
			for i, value := range values {
				labels[i] = r.enumLabel(b.PhraseKey, value)
			}

			if b.Type == "text" {
				if isArray {
					b.Type = "checkbox"
				} else {
					b.Type = "radio"
				}
			}
			if b.Type == "select" {
				if isEmpty(b.Input["options"]) {
					b.Input["options"] = labels
					b.Input["values"] = values
				}
			} else {
				b.Fieldset = true
				if len(b.Inputs) == 0 {
					b.Inputs = values
					b.Labels = labels
				}
			}
		}
	}

	value, ok := m.Get(b.Name)
	if ok {
		if b.Fieldset {
			if b.Checked == nil {
				b.Checked = value
			}
		} else if !b.Input.Has("value") && b.Type != "checkbox" {
			b.Input["value"] = value
		}
	}

	if b.Type == "checkbox" && !b.Fieldset {
		if !b.Input.Has("value") {
			b.Input["value"] = "true"
		}
		if !b.Input.Has("checked") && b.Checked == nil && ok {
			want := b.Input.String("value")
			if slices.Contains(stringSet(value), want) {
				b.Input["checked"] = true
			}
		}
	}
	return nil
}

func (r *Renderer) enumLabel(phraseKey string, value any) any {
	raw := element.Stringify(value)
	if phraseKey == "" {
		return raw
	}
	key := phraseKey + ".value." + raw + ".label"
	if label, ok := r.phrases.Phrase(key, nil); ok {
		return label
	}
	r.logger.Debug("enum label missing", slog.String("key", key))
	return raw
}

// maskPassword keeps the secret out of rendered markup: edit mode shows only
// a same-length mask as placeholder, display mode shows the mask as value.
func maskPassword(b *Binding) {
	value := b.Input.String("value")
	if value == "" {
		return
	}
	mask := strings.Repeat("*", utf8.RuneCountInString(value))
	b.Input["placeholder"] = mask
	if b.Mode == ModeEdit {
		delete(b.Input, "value")
	} else {
		b.Input["value"] = mask
	}
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	if m, ok := element.AsAttrs(value); ok {
		return len(m) == 0
	}
	return len(element.List(value)) == 0
}

// checkedState reads a single control's checked specifier: a boolean, or a
// value list that must contain the control's own value.
func checkedState(spec any, value string) bool {
	if flag := boolPtr(spec); flag != nil {
		if _, isString := spec.(string); !isString || value != element.Stringify(spec) {
			return *flag
		}
	}
	return slices.Contains(stringSet(spec), value)
}
