package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formel/pkg/model"
	"github.com/goliatone/go-formel/pkg/phrase"
	"github.com/goliatone/go-formel/pkg/schema"
)

// LoadSchema reads a JSON or YAML schema fixture. Testing helpers fail the
// test on error to keep table setups concise.
func LoadSchema(t *testing.T, path string) *schema.Property {
	t.Helper()

	prop, err := LoadSchemaFromPath(path)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return prop
}

// LoadSchemaFromPath returns a schema without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadSchemaFromPath(path string) (*schema.Property, error) {
	if path == "" {
		return nil, errors.New("testsupport: schema path is required")
	}
	prop, err := schema.Load(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		return nil, fmt.Errorf("testsupport: load schema: %w", err)
	}
	return prop, nil
}

// LoadCatalog builds a phrase catalog from every phrase file under dir.
func LoadCatalog(t *testing.T, dir string, options ...phrase.Option) *phrase.Catalog {
	t.Helper()

	catalog := phrase.NewCatalog(options...)
	if err := catalog.LoadFS(os.DirFS(dir)); err != nil {
		t.Fatalf("load phrases: %v", err)
	}
	return catalog
}

// LoadModel reads a JSON object of field values and binds it to s under the
// given phrase key.
func LoadModel(t *testing.T, path, phraseKey string, s *schema.Property) *model.Map {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read model: %v", err)
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		t.Fatalf("unmarshal model: %v", err)
	}
	return model.NewMap(values, model.WithPhraseKey(phraseKey), model.WithSchema(s))
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
