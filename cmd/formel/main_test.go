package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"FORMEL_LOG_FORMAT", "FORMEL_LOG_LEVEL", "FORMEL_DEFINITIONS", "FORMEL_PHRASES", "FORMEL_LOCALE", "FORMEL_ADDR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("FORMEL_LOCALE", "fr")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	want := Config{LogFormat: "text", LogLevel: "info", Definitions: ".", Locale: "fr", Addr: ":8080"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"":      slog.LevelInfo,
		"nope":  slog.LevelInfo,
	}
	for raw, want := range cases {
		if got := parseLevel(raw); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestReadValues_JSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "values.json")
	yamlPath := filepath.Join(dir, "values.yaml")
	if err := os.WriteFile(jsonPath, []byte(`{"plan":"pro"}`), 0o644); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if err := os.WriteFile(yamlPath, []byte("plan: pro\n"), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	for _, path := range []string{jsonPath, yamlPath} {
		got, err := readValues(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if diff := cmp.Diff(map[string]any{"plan": "pro"}, got); diff != "" {
			t.Fatalf("values mismatch for %s (-want +got):\n%s", path, diff)
		}
	}
}
