package field

import (
	"regexp"

	"github.com/goliatone/go-formel/pkg/element"
)

// Block content that already starts with one of these tags is emitted as
// (sanitized) markup rather than wrapped in paragraphs.
var blockMarkup = regexp.MustCompile(`^<(p|div|ul|ol)[ >]`)

// collectBlocks gathers caller blocks, falling back to "<phraseKey>.<block>"
// phrases for blocks without content.
func (r *Renderer) collectBlocks(b Binding, raw map[BlockKey]any) map[BlockKey]Attrs {
	vars := map[string]any{
		"display": b.Mode == ModeDisplay,
		"edit":    b.Mode == ModeEdit,
	}

	blocks := make(map[BlockKey]Attrs)
	for _, key := range blockKeys {
		value := raw[key]
		if b.PhraseKey != "" && needsPhrase(value) {
			if text, ok := r.phrases.Phrase(b.PhraseKey+"."+string(key), vars); ok {
				value = withContent(value, text)
			}
		}
		if block, ok := asBlock(value); ok {
			blocks[key] = block
		}
	}
	return blocks
}

func needsPhrase(value any) bool {
	if value == nil {
		return true
	}
	if m, ok := element.AsAttrs(value); ok {
		return !m.Has("content")
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}

func withContent(value any, content string) Attrs {
	if m, ok := element.AsAttrs(value); ok {
		out := m.Clone()
		out["content"] = content
		return out
	}
	return Attrs{"content": content}
}

// asBlock coerces a block value into attributes with a non-empty content.
func asBlock(value any) (Attrs, bool) {
	var block Attrs
	if m, ok := element.AsAttrs(value); ok {
		block = m.Clone()
	} else {
		block = Attrs{"content": value}
	}
	if isEmpty(block["content"]) {
		return nil, false
	}
	return block, true
}

// renderBlock renders a generic (non-message) block.
func (r *Renderer) renderBlock(key BlockKey, block Attrs) string {
	attrs := block.Clone()
	content := attrs["content"]
	delete(attrs, "content")
	attrs["class"] = mergeClass(attrs["class"], "control-"+string(key))

	if text, ok := content.(string); ok && blockMarkup.MatchString(text) {
		return element.Render(element.Element{
			Tag:     "div",
			Attrs:   attrs,
			Content: r.sanitize(text),
			Raw:     true,
		})
	}
	return element.Render(element.Element{Tag: "div", Attrs: attrs, Content: content, Wrap: "p"})
}

func mergeClass(existing any, classes ...string) []string {
	out := element.ClassList(existing)
	for _, class := range classes {
		if class != "" {
			out = append(out, class)
		}
	}
	return element.ClassList(out)
}
