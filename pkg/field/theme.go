package field

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme tokens read by ClassNamesFromTheme.
const (
	TokenControlClass   = "formel.class.control"
	TokenEditClass      = "formel.class.edit"
	TokenDisplayClass   = "formel.class.display"
	TokenSelectCueClass = "formel.class.select-cue"
)

// ClassNamesFromTheme derives the CSS vocabulary from a go-theme selection.
// Variant tokens override manifest tokens; missing tokens keep defaults.
func ClassNamesFromTheme(selection *theme.Selection) ClassNames {
	classes := DefaultClassNames()
	if selection == nil || selection.Manifest == nil {
		return classes
	}

	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}

	set := func(target *string, key string) {
		if value := strings.TrimSpace(tokens[key]); value != "" {
			*target = value
		}
	}
	set(&classes.Control, TokenControlClass)
	set(&classes.Edit, TokenEditClass)
	set(&classes.Display, TokenDisplayClass)
	set(&classes.SelectCue, TokenSelectCueClass)
	return classes
}
