// Package phrase resolves hierarchical phrase keys (for example
// "signup.email.label") into display text.
//
// The renderer only depends on the Lookup interface. Catalog is the bundled
// implementation: per-locale phrase tables with a fallback chain, nested
// document flattening, JSON/YAML loading from an fs.FS, optional hot reload,
// and pongo2 interpolation for phrases containing `{{ }}` or `{% %}` markup:
//
//	There {% if count == 1 %}is a problem{% else %}are {{ count }} problems{% endif %}
//
// FromTranslator adapts any Translate(locale, key, args...) style translator.
package phrase
