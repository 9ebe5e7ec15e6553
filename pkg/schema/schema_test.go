package schema

import (
	"context"
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestParse_YAMLKeepsDeclarationOrder(t *testing.T) {
	raw, err := os.ReadFile("testdata/foo.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	prop, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"bar", "baz", "jim", "flim", "wozz", "gozz"}
	if diff := cmp.Diff(want, prop.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	jim, err := prop.Lookup("jim")
	if err != nil {
		t.Fatalf("lookup jim: %v", err)
	}
	if jim.Type != "" {
		t.Fatalf("expected untyped jim, got %q", jim.Type)
	}
	if diff := cmp.Diff([]any{"bim", "bam", "bom"}, jim.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_JSONTypeListSkipsNull(t *testing.T) {
	prop := MustParse([]byte(`{"properties":{"age":{"type":["null","integer"]}}}`))
	if prop.Type != "object" {
		t.Fatalf("expected inferred object type, got %q", prop.Type)
	}
	age, err := prop.Lookup("age")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if age.Type != "integer" {
		t.Fatalf("expected integer, got %q", age.Type)
	}
}

func TestParse_RejectsNonObjectRoot(t *testing.T) {
	if _, err := Parse([]byte(`[1,2]`)); err == nil {
		t.Fatal("expected error for array root")
	}
	if _, err := Parse([]byte("   ")); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestProperty_EffectiveUnwrapsArrays(t *testing.T) {
	prop := MustParse([]byte(`{"properties":{"gozz":{"type":"array","items":{"enum":["gaz","gez"]}},"bar":{"type":"string"}}}`))

	gozz, _ := prop.Lookup("gozz")
	items, isArray := gozz.Effective()
	if !isArray {
		t.Fatal("expected array indirection")
	}
	if !items.Enumerable() {
		t.Fatal("expected enumerable items")
	}

	bar, _ := prop.Lookup("bar")
	same, isArray := bar.Effective()
	if isArray || same != bar {
		t.Fatal("expected scalar property to be returned unchanged")
	}
}

func TestProperty_LookupUnknownWrapsSentinel(t *testing.T) {
	prop := MustParse([]byte(`{"properties":{"bar":{"type":"string"}}}`))
	_, err := prop.Lookup("nope")
	if !errors.Is(err, ErrUnknownProperty) {
		t.Fatalf("expected ErrUnknownProperty, got %v", err)
	}

	var nilProp *Property
	if _, err := nilProp.Lookup("bar"); !errors.Is(err, ErrUnknownProperty) {
		t.Fatalf("expected ErrUnknownProperty on nil schema, got %v", err)
	}
}

func TestProperty_CloneIsDeep(t *testing.T) {
	prop := MustParse([]byte(`{"properties":{"flim":{"enum":["a","b"]}}}`))
	clone := prop.Clone()
	clone.Properties["flim"].Enum[0] = "changed"
	if prop.Properties["flim"].Enum[0] != "a" {
		t.Fatal("clone shares enum storage with source")
	}
}

func TestFromOpenAPI_SelectsComponent(t *testing.T) {
	raw, err := os.ReadFile("testdata/petstore.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	prop, err := FromOpenAPI(context.Background(), raw, "Pet")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}
	if diff := cmp.Diff([]string{"kind", "name", "tags"}, prop.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	tags, _ := prop.Lookup("tags")
	items, isArray := tags.Effective()
	if !isArray || items.Type != "string" {
		t.Fatalf("unexpected tags items: %+v", items)
	}
	if diff := cmp.Diff([]any{"small", "large"}, items.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}

	if _, err := FromOpenAPI(context.Background(), raw, "Owner"); err == nil {
		t.Fatal("expected error for missing component")
	}
}

type signup struct {
	Email   string   `json:"email"`
	Plan    string   `json:"plan" jsonschema:"enum=free,enum=pro"`
	Topics  []string `json:"topics,omitempty"`
	Consent bool     `json:"consent"`
}

func TestReflect_UsesStructFieldOrder(t *testing.T) {
	prop, err := Reflect(&signup{})
	if err != nil {
		t.Fatalf("reflect: %v", err)
	}
	if diff := cmp.Diff([]string{"email", "plan", "topics", "consent"}, prop.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	plan, _ := prop.Lookup("plan")
	if diff := cmp.Diff([]any{"free", "pro"}, plan.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	topics, _ := prop.Lookup("topics")
	if topics.Type != "array" {
		t.Fatalf("expected array topics, got %q", topics.Type)
	}
	consent, _ := prop.Lookup("consent")
	if consent.Type != "boolean" {
		t.Fatalf("expected boolean consent, got %q", consent.Type)
	}
}

func TestLoad_ReadsFSAndOpenAPISources(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/foo.json": &fstest.MapFile{Data: []byte(`{"properties":{"bar":{"type":"string"}}}`)},
	}
	prop, err := Load(context.Background(), SourceFromFS("forms/foo.json"), WithFS(fsys))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if _, err := prop.Lookup("bar"); err != nil {
		t.Fatalf("lookup bar: %v", err)
	}

	if _, err := Load(context.Background(), SourceFromFS("forms/foo.json")); err == nil {
		t.Fatal("expected error when fs source has no filesystem")
	}

	pet, err := Load(context.Background(), SourceFromFile("testdata/petstore.json"), WithComponent("Pet"))
	if err != nil {
		t.Fatalf("load openapi: %v", err)
	}
	if _, err := pet.Lookup("kind"); err != nil {
		t.Fatalf("lookup kind: %v", err)
	}
}
