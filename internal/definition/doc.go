// Package definition loads form definitions: JSON or YAML files describing
// the form element, the ordered field attribute bags, and the schema, phrase
// key and values of the model the form is bound to. Files without a "forms"
// key are ignored so schemas and phrase tables can share a directory tree.
package definition
