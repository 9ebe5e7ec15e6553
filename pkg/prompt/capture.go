package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formel/pkg/element"
	"github.com/goliatone/go-formel/pkg/model"
	"github.com/goliatone/go-formel/pkg/phrase"
	"github.com/goliatone/go-formel/pkg/schema"
)

// Option configures Capture.
type Option func(*config)

type config struct {
	order     []string
	phrases   phrase.Lookup
	phraseKey string
	defaults  model.Model
}

// WithOrder restricts and orders the properties asked for. Unknown names fail
// the capture.
func WithOrder(names ...string) Option {
	return func(cfg *config) {
		cfg.order = append(cfg.order, names...)
	}
}

// WithPhrases reads prompt messages and enum labels from lookup using the
// same keys field rendering does: "<key>.<name>.label" and
// "<key>.<name>.value.<v>.label".
func WithPhrases(lookup phrase.Lookup, key string) Option {
	return func(cfg *config) {
		if lookup != nil {
			cfg.phrases = lookup
		}
		cfg.phraseKey = strings.TrimSpace(key)
	}
}

// WithDefaults pre-fills answers from an existing model. The model's phrase
// key is used when none was given through WithPhrases.
func WithDefaults(m model.Model) Option {
	return func(cfg *config) {
		cfg.defaults = m
	}
}

// Capture walks the schema's properties and asks one Question per property.
// Enumerations become choices (multiple for arrays), booleans become
// confirms, numbers are validated, and "password" formats are not echoed.
// Answers are returned keyed by property name, typed after the schema.
func Capture(ctx context.Context, driver Driver, s *schema.Property, opts ...Option) (map[string]any, error) {
	if driver == nil {
		return nil, fmt.Errorf("prompt: driver is required")
	}
	if s == nil || len(s.Properties) == 0 {
		return nil, ErrNoSchema
	}
	cfg := config{phrases: phrase.None}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.phraseKey == "" && cfg.defaults != nil {
		cfg.phraseKey = cfg.defaults.PhraseKey()
	}

	order := cfg.order
	if len(order) == 0 {
		order = s.Names()
	}

	values := make(map[string]any, len(order))
	for _, name := range order {
		prop, err := s.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("prompt: %w", err)
		}
		value, err := ask(ctx, driver, cfg.question(name, prop))
		if err != nil {
			return nil, fmt.Errorf("prompt: %q: %w", name, err)
		}
		if value != nil {
			values[name] = value
		}
	}
	return values, nil
}

// question prepares the terminal question for property name.
func (cfg config) question(name string, prop *schema.Property) Question {
	q := Question{Name: name, Message: cfg.message(name, prop), Help: prop.Description}
	current, hasCurrent := cfg.current(name)

	items, isArray := prop.Effective()
	if items.Enumerable() {
		q.Kind = KindChoice
		if isArray {
			q.Kind = KindChoices
		}
		var picked []any
		if hasCurrent {
			picked = element.List(current)
		}
		for _, value := range items.Enum {
			q.Choices = append(q.Choices, Choice{
				Label:    cfg.enumLabel(name, value),
				Value:    value,
				Selected: containsValue(picked, value),
			})
		}
		return q
	}

	if hasCurrent {
		q.Default = element.Stringify(current)
	}
	switch {
	case prop.Type == "boolean":
		q.Kind = KindBoolean
	case prop.Type == "integer":
		q.Kind = KindInteger
		q.Check = checkInteger
	case prop.Type == "number":
		q.Kind = KindNumber
		q.Check = checkNumber
	case prop.Format == "password":
		q.Kind = KindSecret
		q.Default = ""
	}
	return q
}

// ask puts q to driver and converts the answer to the question's kind. Empty
// free-text answers come back as nil.
func ask(ctx context.Context, driver Driver, q Question) (any, error) {
	switch q.Kind {
	case KindBoolean:
		return driver.Confirm(ctx, q)
	case KindChoice, KindChoices:
		picked, err := driver.Choose(ctx, q)
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, len(picked))
		for _, idx := range picked {
			if idx < 0 || idx >= len(q.Choices) {
				return nil, fmt.Errorf("choice %d out of range", idx)
			}
			out = append(out, q.Choices[idx].Value)
		}
		if q.Kind == KindChoices {
			return out, nil
		}
		if len(out) != 1 {
			return nil, fmt.Errorf("expected one choice, got %d", len(out))
		}
		return out[0], nil
	}

	raw, err := driver.Text(ctx, q)
	if err != nil {
		return nil, err
	}
	switch q.Kind {
	case KindInteger, KindNumber:
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, nil
		}
		if err := q.Check(raw); err != nil {
			return nil, fmt.Errorf("invalid answer %q: %w", raw, err)
		}
		if q.Kind == KindInteger {
			return strconv.ParseInt(raw, 10, 64)
		}
		return strconv.ParseFloat(raw, 64)
	}
	if raw == "" {
		return nil, nil
	}
	return raw, nil
}

func checkInteger(in string) error {
	if in = strings.TrimSpace(in); in == "" {
		return nil
	}
	_, err := strconv.ParseInt(in, 10, 64)
	return err
}

func checkNumber(in string) error {
	if in = strings.TrimSpace(in); in == "" {
		return nil
	}
	_, err := strconv.ParseFloat(in, 64)
	return err
}

func (cfg config) message(name string, prop *schema.Property) string {
	if cfg.phraseKey != "" {
		if text, ok := cfg.phrases.Phrase(cfg.phraseKey+"."+name+".label", nil); ok {
			return text
		}
	}
	if prop.Title != "" {
		return prop.Title
	}
	return name
}

func (cfg config) enumLabel(name string, value any) string {
	raw := element.Stringify(value)
	if cfg.phraseKey != "" {
		if text, ok := cfg.phrases.Phrase(cfg.phraseKey+"."+name+".value."+raw+".label", nil); ok {
			return text
		}
	}
	return raw
}

func (cfg config) current(name string) (any, bool) {
	if cfg.defaults == nil {
		return nil, false
	}
	return cfg.defaults.Get(name)
}

func containsValue(values []any, value any) bool {
	want := element.Stringify(value)
	for _, candidate := range values {
		if element.Stringify(candidate) == want {
			return true
		}
	}
	return false
}
