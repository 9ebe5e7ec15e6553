// Package field renders HTML form fields from sparse attribute bags.
//
// A field is a container holding a main control and auxiliary blocks
// (introduction, label, description, help, error, warning, info, extra).
// Attributes may be namespaced ("input-placeholder", "label-class",
// "field-id") and are normalised into a Config before rendering. When a
// model is bound, either on the attributes or through a Form scope carried by
// the context, missing pieces are inferred: the phrase namespace, enum
// options and their labels, the control type, and the current value or
// checked set.
//
//	r := field.New(field.WithPhrases(catalog))
//	html, err := r.Form(ctx, field.Attrs{"model": m}, func(ctx context.Context) (string, error) {
//		return r.Field(ctx, field.Attrs{"name": "plan"})
//	})
//
// Edit mode emits introduction, label, description, help, main, error,
// warning, info and extra in that order; display mode only label and main.
package field
