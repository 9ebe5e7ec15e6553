package element

import (
	"fmt"
	"html"
	"slices"
	"strconv"
	"strings"
)

// Attrs is a flat attribute bag. Values may be strings, booleans, numbers,
// lists (rendered space separated) or nested maps (ignored by Render).
type Attrs map[string]any

// Clone returns a shallow copy of the bag. Nested maps are cloned one level
// deep so namespaced sub-maps can be mutated without touching the source.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	for key, value := range a {
		if nested, ok := AsAttrs(value); ok {
			value = nested.Clone()
		}
		out[key] = value
	}
	return out
}

// Has reports whether key is present with a non-nil value.
func (a Attrs) Has(key string) bool {
	if a == nil {
		return false
	}
	value, ok := a[key]
	return ok && value != nil
}

// String returns the string form of a value, or "" when absent.
func (a Attrs) String(key string) string {
	if a == nil {
		return ""
	}
	return Stringify(a[key])
}

// Element describes one tag to render.
type Element struct {
	// Tag is the element name. An empty Tag renders only the (wrapped) content.
	Tag   string
	Attrs Attrs
	// Content is a string, a list of items, or nil.
	Content any
	// Wrap wraps every list item, or every newline-delimited line of a string,
	// in its own element of this tag.
	Wrap string
	// Raw disables escaping of content that is already markup.
	Raw bool
}

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {},
	"input": {}, "link": {}, "meta": {}, "source": {}, "track": {}, "wbr": {},
}

// Render turns e into an HTML string. Attribute keys are emitted in
// lexicographic order so output is reproducible.
func Render(e Element) string {
	var b strings.Builder
	tag := strings.TrimSpace(e.Tag)

	if tag != "" {
		b.WriteByte('<')
		b.WriteString(tag)
		writeAttrs(&b, e.Attrs)
		b.WriteByte('>')
		if _, void := voidElements[strings.ToLower(tag)]; void {
			return b.String()
		}
	}

	b.WriteString(renderContent(e))

	if tag != "" {
		b.WriteString("</")
		b.WriteString(tag)
		b.WriteByte('>')
	}
	return b.String()
}

func renderContent(e Element) string {
	if e.Content == nil {
		return ""
	}
	escape := func(s string) string {
		if e.Raw {
			return s
		}
		return html.EscapeString(s)
	}

	if e.Wrap == "" {
		if items, ok := asList(e.Content); ok {
			parts := make([]string, 0, len(items))
			for _, item := range items {
				parts = append(parts, escape(Stringify(item)))
			}
			return strings.Join(parts, "")
		}
		return escape(Stringify(e.Content))
	}

	var items []string
	if list, ok := asList(e.Content); ok {
		for _, item := range list {
			items = append(items, Stringify(item))
		}
	} else {
		items = strings.Split(Stringify(e.Content), "\n")
	}

	var b strings.Builder
	for _, item := range items {
		b.WriteByte('<')
		b.WriteString(e.Wrap)
		b.WriteByte('>')
		b.WriteString(escape(item))
		b.WriteString("</")
		b.WriteString(e.Wrap)
		b.WriteByte('>')
	}
	return b.String()
}

func writeAttrs(b *strings.Builder, attrs Attrs) {
	if len(attrs) == 0 {
		return
	}
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		if strings.TrimSpace(key) == "" {
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		value := attrs[key]
		switch v := value.(type) {
		case nil:
			continue
		case bool:
			if v {
				b.WriteByte(' ')
				b.WriteString(key)
			}
			continue
		case Attrs, map[string]any:
			continue
		}

		var rendered string
		if key == "class" {
			rendered = strings.Join(ClassList(value), " ")
			if rendered == "" {
				continue
			}
		} else if items, ok := asList(value); ok {
			parts := make([]string, 0, len(items))
			for _, item := range items {
				parts = append(parts, Stringify(item))
			}
			rendered = strings.Join(parts, " ")
		} else {
			rendered = Stringify(value)
		}

		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(rendered))
		b.WriteByte('"')
	}
}

// ClassList flattens a class value (string, list of strings) into unique,
// sorted tokens.
func ClassList(value any) []string {
	var tokens []string
	if items, ok := asList(value); ok {
		for _, item := range items {
			tokens = append(tokens, strings.Fields(Stringify(item))...)
		}
	} else {
		tokens = strings.Fields(Stringify(value))
	}
	slices.Sort(tokens)
	return slices.Compact(tokens)
}

// Stringify converts scalar values into their attribute/content string form.
// Whole floats print without a fractional part so JSON-decoded numbers match
// their integer spelling.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	}
	if items, ok := asList(value); ok {
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, Stringify(item))
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(value)
}

// List normalises a value into a slice: lists are returned as-is, scalars
// become a one-element list and nil stays nil.
func List(value any) []any {
	if value == nil {
		return nil
	}
	if items, ok := asList(value); ok {
		return items
	}
	return []any{value}
}

func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	case []int:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	case []float64:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	case []bool:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	case []Attrs:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	default:
		return nil, false
	}
}

// AsAttrs reports whether value is an attribute map, accepting both Attrs and
// the map[string]any shape produced by JSON/YAML decoders.
func AsAttrs(value any) (Attrs, bool) {
	switch v := value.(type) {
	case Attrs:
		return v, true
	case map[string]any:
		return Attrs(v), true
	default:
		return nil, false
	}
}
