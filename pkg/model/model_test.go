package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formel/pkg/schema"
)

func TestMap_GetTreatsNilAsUnset(t *testing.T) {
	m := NewMap(map[string]any{"baz": "Model baz value", "empty": nil})

	if value, ok := m.Get("baz"); !ok || value != "Model baz value" {
		t.Fatalf("unexpected baz: %v %v", value, ok)
	}
	if _, ok := m.Get("empty"); ok {
		t.Fatal("expected nil value to read as unset")
	}
	if _, ok := m.Get("missing"); ok {
		t.Fatal("expected missing value to read as unset")
	}
}

func TestMap_DoesNotAliasCallerValues(t *testing.T) {
	values := map[string]any{"bar": "a"}
	m := NewMap(values)
	values["bar"] = "b"
	if value, _ := m.Get("bar"); value != "a" {
		t.Fatalf("expected model to keep its own copy, got %v", value)
	}
}

func TestMap_PhraseKeyFuncIsEvaluatedPerCall(t *testing.T) {
	current := "foo"
	m := NewMap(nil, WithPhraseKeyFunc(func() string { return current }))
	if m.PhraseKey() != "foo" {
		t.Fatalf("unexpected phrase key %q", m.PhraseKey())
	}
	current = "bar"
	if m.PhraseKey() != "bar" {
		t.Fatalf("expected phrase key to follow the func, got %q", m.PhraseKey())
	}

	fixed := NewMap(nil, WithPhraseKeyFunc(func() string { return "x" }), WithPhraseKey("foo"))
	if fixed.PhraseKey() != "foo" {
		t.Fatalf("expected later fixed key to win, got %q", fixed.PhraseKey())
	}
}

type account struct {
	Name     string   `json:"name"`
	Plan     string   `json:"plan" jsonschema:"enum=free,enum=pro"`
	Tags     []string `json:"tags,omitempty"`
	Password string   `json:"password"`
	internal string
	Skipped  string `json:"-"`
}

func TestStruct_ReadsJSONNamesAndReflectsSchema(t *testing.T) {
	m, err := NewStruct(&account{Name: "Ada", Plan: "pro", internal: "x", Skipped: "y"}, WithPhraseKey("account"))
	if err != nil {
		t.Fatalf("new struct: %v", err)
	}
	if value, ok := m.Get("name"); !ok || value != "Ada" {
		t.Fatalf("unexpected name: %v %v", value, ok)
	}
	if _, ok := m.Get("tags"); ok {
		t.Fatal("expected zero slice to read as unset")
	}
	if _, ok := m.Get("Skipped"); ok {
		t.Fatal("expected json:\"-\" field to be hidden")
	}
	if m.PhraseKey() != "account" {
		t.Fatalf("unexpected phrase key %q", m.PhraseKey())
	}

	plan, err := m.Schema().Lookup("plan")
	if err != nil {
		t.Fatalf("lookup plan: %v", err)
	}
	if diff := cmp.Diff([]any{"free", "pro"}, plan.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
}

func TestNewStruct_RejectsNonStruct(t *testing.T) {
	if _, err := NewStruct(42); err == nil {
		t.Fatal("expected error for non-struct value")
	}
	var nilPtr *account
	if _, err := NewStruct(nilPtr); err == nil {
		t.Fatal("expected error for nil pointer")
	}
}

func TestValues_FollowsSchemaOrder(t *testing.T) {
	s := schema.MustParse([]byte(`{"properties":{"wozz":{"type":"string"},"baz":{"type":"number"},"jim":{}}}`))
	m := NewMap(map[string]any{"baz": 2, "wozz": "wiz", "extra": true}, WithSchema(s))

	values, keys := Values(m)
	if diff := cmp.Diff([]string{"wozz", "baz"}, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"baz": 2, "wozz": "wiz"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	plain := NewMap(map[string]any{"b": 1, "a": 2})
	_, keys = Values(plain)
	if diff := cmp.Diff([]string{"a", "b"}, keys); diff != "" {
		t.Fatalf("sorted keys mismatch (-want +got):\n%s", diff)
	}
}
