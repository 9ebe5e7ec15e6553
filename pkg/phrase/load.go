package phrase

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks fsys and loads every JSON/YAML file as a phrase table. The file
// name without extension is the locale, so "en.yaml" and "forms/en-GB.json"
// feed "en" and "en-GB". Several files for one locale are merged.
func (c *Catalog) LoadFS(fsys fs.FS) error {
	if fsys == nil {
		return nil
	}
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isPhraseFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("phrase: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		locale := localeFromPath(path)
		c.AddLanguage(locale, doc)
		c.logger.Debug("phrase file loaded", slog.String("path", path), slog.String("locale", locale))
		return nil
	})
}

// LoadFile loads a single phrase file from disk, replacing any phrases
// previously held for its locale.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("phrase: read %s: %w", path, err)
	}
	doc, err := parseDocument(data, path)
	if err != nil {
		return err
	}
	c.replace(localeFromPath(path), doc)
	return nil
}

func parseDocument(data []byte, source string) (map[string]any, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("phrase: file %s is empty", source)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = nil
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return nil, fmt.Errorf("phrase: parse %s: invalid JSON or YAML", source)
}

func isPhraseFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func localeFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
