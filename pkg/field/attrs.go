package field

import (
	"strings"

	"github.com/goliatone/go-formel/pkg/element"
	"github.com/goliatone/go-formel/pkg/model"
)

// Attrs is the attribute bag accepted by every helper.
type Attrs = element.Attrs

// Namespaces hoisted by NormalizeAttributes when none are given.
var defaultNamespaces = []string{"input", "help", "error", "label", "field"}

// NormalizeAttributes flattens a raw attribute bag. Keys of a nested
// "attributes" bag are merged first so top-level keys win. Then, for each
// namespace, every "<ns>-<key>" entry moves into the sub-map under ns as
// <key>. A string or list sub-map becomes {content: v} and an absent one
// becomes empty, so callers can read namespaces unconditionally.
func NormalizeAttributes(raw Attrs, namespaces ...string) Attrs {
	if len(namespaces) == 0 {
		namespaces = defaultNamespaces
	}

	out := mergeAttributes(raw)
	for _, ns := range namespaces {
		hoist(out, ns)
	}
	return out
}

// mergeAttributes copies raw with its nested "attributes" bag folded in
// underneath the top-level keys.
func mergeAttributes(raw Attrs) Attrs {
	out := Attrs{}
	if nested, ok := element.AsAttrs(raw["attributes"]); ok {
		for key, value := range nested {
			out[key] = value
		}
	}
	for key, value := range raw {
		if key == "attributes" {
			continue
		}
		out[key] = value
	}
	return out.Clone()
}

func hoist(attrs Attrs, ns string) {
	var target Attrs
	switch v := attrs[ns].(type) {
	case nil:
		target = Attrs{}
	case string:
		target = Attrs{"content": v}
	case []any, []string:
		target = Attrs{"content": v}
	default:
		if m, ok := element.AsAttrs(v); ok {
			target = m
		}
	}

	prefix := ns + "-"
	for key, value := range attrs {
		if !strings.HasPrefix(key, prefix) || len(key) == len(prefix) {
			continue
		}
		if target != nil {
			target[strings.TrimPrefix(key, prefix)] = value
		}
		delete(attrs, key)
	}
	if target != nil {
		attrs[ns] = target
	}
}

// Mode selects between editable controls and read-only presentation.
type Mode int

const (
	ModeEdit Mode = iota
	ModeDisplay
)

func (m Mode) String() string {
	if m == ModeDisplay {
		return "display"
	}
	return "edit"
}

// BlockKey names an auxiliary block composed around the main control.
type BlockKey string

const (
	BlockLegend       BlockKey = "legend"
	BlockIntroduction BlockKey = "introduction"
	BlockLabel        BlockKey = "label"
	BlockDescription  BlockKey = "description"
	BlockHelp         BlockKey = "help"
	BlockMain         BlockKey = "main"
	BlockError        BlockKey = "error"
	BlockWarning      BlockKey = "warning"
	BlockInfo         BlockKey = "info"
	BlockExtra        BlockKey = "extra"
)

// collected in this order; main is produced by the renderer itself.
var blockKeys = []BlockKey{
	BlockLegend, BlockIntroduction, BlockLabel, BlockDescription, BlockHelp,
	BlockError, BlockWarning, BlockInfo, BlockExtra,
}

var (
	editOrder = []BlockKey{
		BlockIntroduction, BlockLabel, BlockDescription, BlockHelp, BlockMain,
		BlockError, BlockWarning, BlockInfo, BlockExtra,
	}
	displayOrder = []BlockKey{BlockLabel, BlockMain}
)

func (k BlockKey) message() bool {
	return k == BlockError || k == BlockWarning || k == BlockInfo
}

// Config is the typed form of a field's attribute bag.
type Config struct {
	Name string
	Type string
	// Class holds container classes from "class" or "field-class".
	Class any
	// Field holds the remaining container attributes ("field-*").
	Field Attrs
	// Input holds control attributes: the "input-*" namespace overlaid with
	// top-level control keys such as value, options or placeholder.
	Input Attrs

	Inputs         []any
	Labels         []any
	Checked        any
	InputsDisabled any

	PhraseKey string
	Model     model.Model

	// Edit and Display are nil when the caller did not set them.
	Edit    *bool
	Display *bool

	Blocks map[BlockKey]any

	// Content, when HasContent is set, is pre-rendered markup that stands in
	// for the label and main control.
	Content    string
	HasContent bool
}

// Normalize turns a raw attribute bag into a Config. Field-scoped keys are
// read from the top level first, then from the "field" namespace.
func Normalize(raw Attrs) Config {
	flat := NormalizeAttributes(raw)

	fieldNS, _ := element.AsAttrs(flat["field"])
	delete(flat, "field")
	if fieldNS == nil {
		fieldNS = Attrs{}
	}

	take := func(name string) any {
		value := flat[name]
		delete(flat, name)
		if value == nil {
			value = fieldNS[name]
		}
		delete(fieldNS, name)
		return value
	}

	cfg := Config{Field: fieldNS, Blocks: make(map[BlockKey]any)}

	cfg.Input, _ = element.AsAttrs(take("input"))
	if cfg.Input == nil {
		cfg.Input = Attrs{}
	}
	if inputs := take("inputs"); inputs != nil {
		cfg.Inputs = element.List(inputs)
		if cfg.Inputs == nil {
			cfg.Inputs = []any{}
		}
	}
	if labels := take("labels"); labels != nil {
		cfg.Labels = element.List(labels)
		if cfg.Labels == nil {
			cfg.Labels = []any{}
		}
	}
	cfg.Checked = take("checked")
	cfg.InputsDisabled = take("inputs-disabled")
	cfg.PhraseKey = element.Stringify(take("phrase-key"))
	if m, ok := take("model").(model.Model); ok {
		cfg.Model = m
	}
	cfg.Edit = boolPtr(take("edit"))
	cfg.Display = boolPtr(take("display"))
	cfg.Type = element.Stringify(take("type"))

	for _, key := range blockKeys {
		if value := take(string(key)); value != nil {
			cfg.Blocks[key] = value
		}
	}

	if class, ok := flat["class"]; ok {
		cfg.Field["class"] = class
		delete(flat, "class")
	}
	cfg.Class = cfg.Field["class"]
	delete(cfg.Field, "class")

	if content, ok := flat["content"]; ok {
		cfg.Content = element.Stringify(content)
		cfg.HasContent = true
		delete(flat, "content")
	}

	for key, value := range flat {
		if isNamespaceKey(key) {
			continue
		}
		cfg.Input[key] = value
	}
	cfg.Name = cfg.Input.String("name")
	return cfg
}

func isNamespaceKey(key string) bool {
	for _, ns := range defaultNamespaces {
		if key == ns {
			return true
		}
	}
	return false
}

// boolPtr reads booleans and their common string spellings; anything else is
// treated as unset.
func boolPtr(value any) *bool {
	var out bool
	switch v := value.(type) {
	case bool:
		out = v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes", "on":
			out = true
		case "false", "0", "no", "off":
			out = false
		default:
			return nil
		}
	default:
		return nil
	}
	return &out
}
