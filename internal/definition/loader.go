package definition

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formel/pkg/field"
	"github.com/goliatone/go-formel/pkg/model"
	"github.com/goliatone/go-formel/pkg/schema"
)

// Store holds the definitions read from one filesystem.
type Store struct {
	fsys  fs.FS
	forms map[string]Form
}

// LoadFS walks the provided filesystem and parses JSON/YAML definition files.
// When fsys is nil or no definitions are present, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{fsys: fsys, forms: make(map[string]Form)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", p, err)
		}
		doc, err := parseDocument(data, p)
		if err != nil {
			return err
		}

		for rawID, raw := range doc.Forms {
			id := strings.TrimSpace(rawID)
			if id == "" {
				return fmt.Errorf("definition: file %s defines an empty form id", p)
			}
			if _, exists := store.forms[id]; exists {
				return fmt.Errorf("definition: duplicate form %q (file %s)", id, p)
			}
			store.forms[id] = normaliseForm(raw, id, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Form returns the definition registered under id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	f, ok := s.forms[id]
	return f, ok
}

// IDs lists the loaded form ids, sorted.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.forms))
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

// Model builds the model of form id: its schema, phrase key and values.
// Values, when non-nil, replace the definition's own values.
func (s *Store) Model(ctx context.Context, id string, values map[string]any) (model.Model, error) {
	f, ok := s.Form(id)
	if !ok {
		return nil, fmt.Errorf("definition: form %q not found", id)
	}
	if values == nil {
		values = f.Values
	}

	opts := []model.Option{model.WithPhraseKey(f.PhraseKey)}
	if f.Schema != "" {
		var loadOpts []schema.LoadOption
		loadOpts = append(loadOpts, schema.WithFS(s.fsys))
		if f.Component != "" {
			loadOpts = append(loadOpts, schema.WithComponent(f.Component))
		}
		prop, err := schema.Load(ctx, schema.SourceFromFS(resolvePath(f.Source, f.Schema)), loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("definition: form %q: %w", id, err)
		}
		opts = append(opts, model.WithSchema(prop))
	}
	return model.NewMap(values, opts...), nil
}

// Render renders form id bound to m through r. The definition's edit flag
// applies only when ctx carries no mode of its own.
func (s *Store) Render(ctx context.Context, r *field.Renderer, id string, m model.Model) (string, error) {
	f, ok := s.Form(id)
	if !ok {
		return "", fmt.Errorf("definition: form %q not found", id)
	}

	attrs := f.Attrs.Clone()
	if m != nil {
		attrs["model"] = m
	}
	// A mode already bound on ctx (display previews, submissions) wins over
	// the definition's default.
	if f.Edit != nil && field.ScopeFrom(ctx).Edit == nil {
		attrs["edit"] = *f.Edit
	}

	fields := f.Fields
	if len(fields) == 0 && m != nil {
		for _, name := range m.Schema().Names() {
			fields = append(fields, field.Attrs{"name": name})
		}
	}

	return r.Form(ctx, attrs, func(ctx context.Context) (string, error) {
		var out strings.Builder
		for i, attrs := range fields {
			html, err := r.Field(ctx, attrs)
			if err != nil {
				return "", fmt.Errorf("definition: form %q field %d: %w", id, i, err)
			}
			out.WriteString(html)
		}
		return out.String(), nil
	})
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("definition: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("definition: parse %s: invalid JSON or YAML", source)
}

func normaliseForm(raw formFile, id, source string) Form {
	f := Form{
		ID:        id,
		Source:    source,
		Attrs:     field.Attrs(raw.Form).Clone(),
		Schema:    strings.TrimSpace(raw.Schema),
		Component: strings.TrimSpace(raw.Component),
		PhraseKey: strings.TrimSpace(raw.PhraseKey),
		Values:    maps.Clone(raw.Values),
		Edit:      raw.Edit,
	}
	if f.PhraseKey == "" {
		f.PhraseKey = id
	}
	for _, attrs := range raw.Fields {
		f.Fields = append(f.Fields, field.Attrs(attrs).Clone())
	}
	return f
}

// resolvePath resolves a schema reference relative to the definition file.
// References starting with "/" are rooted at the filesystem.
func resolvePath(source, ref string) string {
	if strings.HasPrefix(ref, "/") {
		return strings.TrimPrefix(path.Clean(ref), "/")
	}
	return path.Join(path.Dir(source), ref)
}

func isDefinitionFile(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
