// Package element renders single HTML elements from a tag, an attribute bag
// and content. It is the primitive every form control is built on: attribute
// order is deterministic, boolean attributes render as bare names, and content
// is escaped unless explicitly marked as markup.
package element
