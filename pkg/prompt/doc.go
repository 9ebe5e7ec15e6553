// Package prompt captures model values interactively from a schema, asking
// the same questions a rendered form would: enum choices, booleans, numbers
// and free text. The terminal is reached through a Driver; NewSurveyDriver is
// the default implementation.
package prompt
