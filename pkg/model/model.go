package model

import (
	"maps"
	"slices"

	"github.com/goliatone/go-formel/pkg/schema"
)

// Model is the read-only binding consulted while rendering fields. The
// renderer never writes through it.
type Model interface {
	// Get returns the current value for name and whether one is set.
	Get(name string) (any, bool)
	// PhraseKey returns the namespace prefix for phrase lookups, or "".
	PhraseKey() string
	// Schema returns the object schema describing the model, or nil.
	Schema() *schema.Property
}

// Option customises Map and Struct models.
type Option func(*config)

type config struct {
	phraseKey     string
	phraseKeyFunc func() string
	schema        *schema.Property
}

// WithPhraseKey sets a fixed phrase namespace.
func WithPhraseKey(key string) Option {
	return func(cfg *config) {
		cfg.phraseKey = key
		cfg.phraseKeyFunc = nil
	}
}

// WithPhraseKeyFunc derives the phrase namespace on every lookup, for models
// whose namespace depends on state such as the active locale or record kind.
func WithPhraseKeyFunc(fn func() string) Option {
	return func(cfg *config) {
		cfg.phraseKeyFunc = fn
	}
}

// WithSchema attaches the object schema.
func WithSchema(s *schema.Property) Option {
	return func(cfg *config) {
		cfg.schema = s
	}
}

func (c config) key() string {
	if c.phraseKeyFunc != nil {
		return c.phraseKeyFunc()
	}
	return c.phraseKey
}

// Map is a Model backed by a map of values.
type Map struct {
	values map[string]any
	cfg    config
}

var _ Model = (*Map)(nil)

// NewMap returns a Model over a copy of values.
func NewMap(values map[string]any, options ...Option) *Map {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Map{values: maps.Clone(values), cfg: cfg}
}

// Get implements Model. A key present with a nil value counts as unset.
func (m *Map) Get(name string) (any, bool) {
	if m == nil {
		return nil, false
	}
	value, ok := m.values[name]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// PhraseKey implements Model.
func (m *Map) PhraseKey() string {
	if m == nil {
		return ""
	}
	return m.cfg.key()
}

// Schema implements Model.
func (m *Map) Schema() *schema.Property {
	if m == nil {
		return nil
	}
	return m.cfg.schema
}

// Values returns the set values of m and their keys in order. With a schema
// only declared properties are reported, in schema order; otherwise struct
// field order or sorted map keys.
func Values(m Model) (map[string]any, []string) {
	if m == nil {
		return nil, nil
	}
	var names []string
	if s := m.Schema(); s != nil {
		names = s.Names()
	} else if mm, ok := m.(*Map); ok {
		names = slices.Sorted(maps.Keys(mm.values))
	} else if sm, ok := m.(*Struct); ok {
		names = slices.Clone(sm.order)
	}

	out := make(map[string]any, len(names))
	keys := make([]string, 0, len(names))
	for _, name := range names {
		if value, ok := m.Get(name); ok {
			out[name] = value
			keys = append(keys, name)
		}
	}
	return out, keys
}
