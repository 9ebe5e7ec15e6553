// Package model defines the read-only data source a field renderer binds to.
// A Model answers three questions: the current value of a named field, the
// phrase namespace used to look up labels and help text, and the schema that
// describes each field's shape. Map and Struct cover the common cases; callers
// with their own domain objects implement the interface directly.
package model
