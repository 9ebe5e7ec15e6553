package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formel/internal/definition"
	"github.com/goliatone/go-formel/pkg/field"
	"github.com/goliatone/go-formel/pkg/phrase"
)

func runRender(cfg Config, args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	defs := fs.String("definitions", cfg.Definitions, "directory holding form definitions")
	phrases := fs.String("phrases", cfg.Phrases, "directory holding phrase files")
	locale := fs.String("locale", cfg.Locale, "phrase locale")
	formID := fs.String("form", "", "form id to render")
	valuesPath := fs.String("values", "", "JSON or YAML file with model values")
	display := fs.Bool("display", false, "render in display mode")
	output := fs.String("output", "", "output file (stdout if empty)")
	logFormat := fs.String("log-format", cfg.LogFormat, "log format (text or json)")
	logLevel := fs.String("log-level", cfg.LogLevel, "log level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger := newLogger(*logFormat, *logLevel)

	if strings.TrimSpace(*formID) == "" {
		return fmt.Errorf("-form is required")
	}

	ctx := context.Background()
	store, err := definition.LoadFS(os.DirFS(*defs))
	if err != nil {
		return err
	}

	var values map[string]any
	if *valuesPath != "" {
		values, err = readValues(*valuesPath)
		if err != nil {
			return err
		}
	}
	m, err := store.Model(ctx, *formID, values)
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(*phrases, *locale, logger)
	if err != nil {
		return err
	}
	renderer := field.New(field.WithPhrases(catalog), field.WithLogger(logger))

	if *display {
		off := false
		ctx = field.WithScope(ctx, field.Scope{Edit: &off})
	}
	out, err := store.Render(ctx, renderer, *formID, m)
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(out+"\n"), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("Form written to %s\n", *output)
		return nil
	}
	fmt.Println(out)
	return nil
}

// loadCatalog builds the phrase catalog for locale, falling back to English.
// An empty dir yields an empty catalog.
func loadCatalog(dir, locale string, logger *slog.Logger) (*phrase.Catalog, error) {
	catalog := phrase.NewCatalog(
		phrase.WithLocale(locale),
		phrase.WithFallback("en"),
		phrase.WithLogger(logger),
	)
	if strings.TrimSpace(dir) == "" {
		return catalog, nil
	}
	if err := catalog.LoadFS(os.DirFS(dir)); err != nil {
		return nil, err
	}
	return catalog, nil
}

// readValues parses a JSON or YAML object of model values.
func readValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err == nil {
		return values, nil
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse values %s: invalid JSON or YAML", path)
	}
	return values, nil
}
