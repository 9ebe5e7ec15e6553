package schema

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Source identifies where a schema document lives so Load can read files and
// fs.FS entries through one entry point.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside the fs.FS passed
// to Load via WithFS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type loadConfig struct {
	fsys      fs.FS
	component string
}

// LoadOption customises Load.
type LoadOption func(*loadConfig)

// WithFS sets the filesystem used by SourceFromFS sources.
func WithFS(fsys fs.FS) LoadOption {
	return func(cfg *loadConfig) {
		cfg.fsys = fsys
	}
}

// WithComponent treats the document as OpenAPI 3 and selects
// components.schemas.<name>.
func WithComponent(name string) LoadOption {
	return func(cfg *loadConfig) {
		cfg.component = strings.TrimSpace(name)
	}
}

// Load reads the document behind src and converts it into a Property.
func Load(ctx context.Context, src Source, opts ...LoadOption) (*Property, error) {
	if src == nil {
		return nil, errors.New("schema: source is required")
	}
	cfg := loadConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		raw []byte
		err error
	)
	switch src.Kind() {
	case SourceKindFile:
		raw, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if cfg.fsys == nil {
			return nil, fmt.Errorf("schema: fs source %q requires WithFS", src.Location())
		}
		raw, err = fs.ReadFile(cfg.fsys, src.Location())
	default:
		return nil, fmt.Errorf("schema: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", src.Location(), err)
	}

	if cfg.component != "" {
		return FromOpenAPI(ctx, raw, cfg.component)
	}
	prop, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w (source %s)", err, src.Location())
	}
	return prop, nil
}
