package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-formel/internal/definition"
	"github.com/goliatone/go-formel/pkg/prompt"
)

func runPrompt(cfg Config, args []string) error {
	fs := flag.NewFlagSet("prompt", flag.ExitOnError)
	defs := fs.String("definitions", cfg.Definitions, "directory holding form definitions")
	phrases := fs.String("phrases", cfg.Phrases, "directory holding phrase files")
	locale := fs.String("locale", cfg.Locale, "phrase locale")
	formID := fs.String("form", "", "form whose model values are captured")
	output := fs.String("output", "", "JSON output file (stdout if empty)")
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
	m, err := store.Model(ctx, *formID, nil)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(*phrases, *locale, logger)
	if err != nil {
		return err
	}

	values, err := prompt.Capture(ctx, prompt.NewSurveyDriver(), m.Schema(),
		prompt.WithDefaults(m),
		prompt.WithPhrases(catalog, m.PhraseKey()),
	)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode values: %w", err)
	}
	if *output != "" {
		if err := os.WriteFile(*output, append(payload, '\n'), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("Values written to %s\n", *output)
		return nil
	}
	fmt.Println(string(payload))
	return nil
}
