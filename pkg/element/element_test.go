package element

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRender_SortsAttributesAndHandlesBooleans(t *testing.T) {
	got := Render(Element{
		Tag: "input",
		Attrs: Attrs{
			"value":    "b",
			"type":     "radio",
			"name":     "bar",
			"id":       "bar-1",
			"checked":  true,
			"disabled": false,
			"data-x":   nil,
		},
	})
	want := `<input checked id="bar-1" name="bar" type="radio" value="b">`
	if got != want {
		t.Fatalf("render mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestRender_EscapesContentUnlessRaw(t *testing.T) {
	escaped := Render(Element{Tag: "label", Content: "<i>foo</i>"})
	if escaped != "<label>&lt;i&gt;foo&lt;/i&gt;</label>" {
		t.Fatalf("expected escaped content, got %s", escaped)
	}

	raw := Render(Element{Tag: "label", Content: "<i>foo</i>", Raw: true})
	if raw != "<label><i>foo</i></label>" {
		t.Fatalf("expected raw content, got %s", raw)
	}
}

func TestRender_EmptyStringAttributeIsKept(t *testing.T) {
	got := Render(Element{Tag: "option", Attrs: Attrs{"value": "", "selected": true}, Content: "Foo"})
	if got != `<option selected value="">Foo</option>` {
		t.Fatalf("unexpected option markup: %s", got)
	}
}

func TestRender_WrapSplitsLinesAndItems(t *testing.T) {
	lines := Render(Element{
		Tag:     "div",
		Attrs:   Attrs{"class": "control-extra"},
		Content: "Bar extra line 1\nBar extra line 2",
		Wrap:    "p",
	})
	want := `<div class="control-extra"><p>Bar extra line 1</p><p>Bar extra line 2</p></div>`
	if lines != want {
		t.Fatalf("wrap mismatch\nwant: %s\n got: %s", want, lines)
	}

	items := Render(Element{Tag: "ul", Content: []string{"Error A", "<b>B</b>"}, Wrap: "li"})
	if items != "<ul><li>Error A</li><li>&lt;b&gt;B&lt;/b&gt;</li></ul>" {
		t.Fatalf("unexpected list markup: %s", items)
	}

	bare := Render(Element{Content: "bar\nbaz", Wrap: "p"})
	if bare != "<p>bar</p><p>baz</p>" {
		t.Fatalf("unexpected tagless markup: %s", bare)
	}
}

func TestClassList_SortsAndDeduplicates(t *testing.T) {
	got := ClassList([]any{"fieldo", "control control-bar", "control"})
	want := []string{"control", "control-bar", "fieldo"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("class list mismatch (-want +got):\n%s", diff)
	}
}

func TestStringify_NumbersMatchTheirStringSpelling(t *testing.T) {
	cases := map[string]any{
		"0":     0,
		"2":     float64(2),
		"1.5":   1.5,
		"true":  true,
		"":      nil,
		"a,b,1": []any{"a", "b", 1},
	}
	for want, input := range cases {
		if got := Stringify(input); got != want {
			t.Fatalf("Stringify(%#v) = %q, want %q", input, got, want)
		}
	}
}

func TestList_WrapsScalars(t *testing.T) {
	if got := List(nil); got != nil {
		t.Fatalf("expected nil list, got %#v", got)
	}
	if diff := cmp.Diff([]any{"x"}, List("x")); diff != "" {
		t.Fatalf("scalar wrap mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"a", "b"}, List([]string{"a", "b"})); diff != "" {
		t.Fatalf("list passthrough mismatch (-want +got):\n%s", diff)
	}
}
