package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-formel/pkg/schema"
)

// Struct is a Model over an exported-field Go struct. Field names follow the
// struct's json tags; zero values read as unset.
type Struct struct {
	value reflect.Value
	index map[string][]int
	order []string
	cfg   config
}

var _ Model = (*Struct)(nil)

// NewStruct binds v, which must be a struct or a pointer to one. Unless
// WithSchema is supplied the schema is reflected from the struct type.
func NewStruct(v any, options ...Option) (*Struct, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errors.New("model: struct pointer is nil")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model: expected struct, got %s", rv.Kind())
	}

	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.schema == nil {
		reflected, err := schema.Reflect(reflect.New(rv.Type()).Interface())
		if err != nil {
			return nil, fmt.Errorf("model: reflect schema: %w", err)
		}
		cfg.schema = reflected
	}

	s := &Struct{value: rv, index: make(map[string][]int), cfg: cfg}
	collectFields(rv.Type(), nil, s)
	return s, nil
}

// MustStruct panics when v cannot be bound.
func MustStruct(v any, options ...Option) *Struct {
	s, err := NewStruct(v, options...)
	if err != nil {
		panic(err)
	}
	return s
}

func collectFields(t reflect.Type, parent []int, s *Struct) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		index := append(append([]int(nil), parent...), i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			if _, tagged := f.Tag.Lookup("json"); !tagged {
				collectFields(f.Type, index, s)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		name := jsonName(f)
		if name == "-" {
			continue
		}
		if _, exists := s.index[name]; exists {
			continue
		}
		s.index[name] = index
		s.order = append(s.order, name)
	}
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

// Get implements Model.
func (s *Struct) Get(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	index, ok := s.index[name]
	if !ok {
		return nil, false
	}
	field, err := s.value.FieldByIndexErr(index)
	if err != nil || !field.IsValid() || field.IsZero() {
		return nil, false
	}
	for field.Kind() == reflect.Pointer {
		field = field.Elem()
	}
	return field.Interface(), true
}

// PhraseKey implements Model.
func (s *Struct) PhraseKey() string {
	if s == nil {
		return ""
	}
	return s.cfg.key()
}

// Schema implements Model.
func (s *Struct) Schema() *schema.Property {
	if s == nil {
		return nil
	}
	return s.cfg.schema
}
