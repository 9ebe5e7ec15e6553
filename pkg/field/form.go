package field

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formel/pkg/element"
	"github.com/goliatone/go-formel/pkg/model"
)

// Scope is the ambient binding a form hands down to the fields rendered in
// its body.
type Scope struct {
	Model model.Model
	// Wizard is an opaque wizard definition carried for nested helpers.
	Wizard any
	// Edit is the ambient mode; nil means edit.
	Edit *bool
}

type scopeKey struct{}

// WithScope returns a context carrying s.
func WithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithModel returns a context whose scope binds m, keeping the other scope
// values.
func WithModel(ctx context.Context, m model.Model) context.Context {
	s := ScopeFrom(ctx)
	s.Model = m
	return WithScope(ctx, s)
}

// ScopeFrom returns the scope carried by ctx, or the zero Scope.
func ScopeFrom(ctx context.Context) Scope {
	if ctx == nil {
		return Scope{}
	}
	s, _ := ctx.Value(scopeKey{}).(Scope)
	return s
}

// Body renders the nested content of a form under the form's scope.
type Body func(ctx context.Context) (string, error)

// Form renders a <form> element. The "model", "wizard" and "edit" attributes
// are removed from the element and bound as scope for body. The method
// defaults to post and body output is emitted unescaped.
func (r *Renderer) Form(ctx context.Context, attrs Attrs, body Body) (string, error) {
	flat := mergeAttributes(attrs)

	scope := ScopeFrom(ctx)
	if m, ok := flat["model"].(model.Model); ok {
		scope.Model = m
	}
	if wizard, ok := flat["wizard"]; ok {
		scope.Wizard = wizard
	}
	if edit := boolPtr(flat["edit"]); edit != nil {
		scope.Edit = edit
	}
	delete(flat, "model")
	delete(flat, "wizard")
	delete(flat, "edit")

	if !flat.Has("method") {
		flat["method"] = "post"
	}

	var content string
	if body != nil {
		out, err := body(WithScope(ctx, scope))
		if err != nil {
			return "", fmt.Errorf("field: render form body: %w", err)
		}
		content = out
	}
	return element.Render(element.Element{Tag: "form", Attrs: flat, Content: content, Raw: true}), nil
}
