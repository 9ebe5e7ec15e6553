package field

import (
	"github.com/goliatone/go-formel/pkg/element"
)

// HeadingKeyPrefix prefixes the phrase key of message headings; the block
// kind (error, warning, info) completes it.
const HeadingKeyPrefix = "field.message.heading."

// Message renders a message block for field: an optional <h2> heading from
// the "field.message.heading.<kind>" phrase (variables field and count)
// followed by one list item per message.
func (r *Renderer) Message(field, kind string, messages any) string {
	return r.message(field, kind, Attrs{"content": messages})
}

func (r *Renderer) message(field, kind string, block Attrs) string {
	attrs := block.Clone()
	items := element.List(attrs["content"])
	delete(attrs, "content")

	body := element.Render(element.Element{Tag: "ul", Content: items, Wrap: "li"})
	heading, ok := r.phrases.Phrase(HeadingKeyPrefix+kind, map[string]any{
		"field": field,
		"count": len(items),
	})
	if ok {
		body = "<h2>" + heading + "</h2>" + body
	}

	attrs["class"] = mergeClass(attrs["class"], "control-"+kind)
	return element.Render(element.Element{Tag: "div", Attrs: attrs, Content: body, Raw: true})
}
