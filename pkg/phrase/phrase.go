package phrase

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is reported when a translator-backed lookup is built
// without a translator.
var ErrMissingTranslator = errors.New("phrase: translator is nil")

// Lookup resolves a phrase key. A missing phrase reports false and is never
// an error.
type Lookup interface {
	Phrase(key string, vars map[string]any) (string, bool)
}

// Func adapts a plain function to Lookup.
type Func func(key string, vars map[string]any) (string, bool)

// Phrase implements Lookup.
func (f Func) Phrase(key string, vars map[string]any) (string, bool) {
	if f == nil {
		return "", false
	}
	return f(key, vars)
}

// None is a Lookup that never finds anything.
var None Lookup = Func(func(string, map[string]any) (string, bool) { return "", false })

// Translator matches the Translate(locale, key, args...) contract used by
// common i18n packages.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

type translatorLookup struct {
	translator Translator
	locale     string
}

// FromTranslator returns a Lookup backed by t for the given locale. Lookup
// variables are passed as a single map argument. Translation errors and empty
// results read as missing phrases.
func FromTranslator(t Translator, locale string) (Lookup, error) {
	if t == nil {
		return nil, ErrMissingTranslator
	}
	return translatorLookup{translator: t, locale: strings.TrimSpace(locale)}, nil
}

func (l translatorLookup) Phrase(key string, vars map[string]any) (string, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	var args []any
	if len(vars) > 0 {
		args = append(args, vars)
	}
	msg, err := l.translator.Translate(l.locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return "", false
	}
	return msg, true
}
