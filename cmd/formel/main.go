package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joeshaw/envdecode"
)

// Config holds defaults read from the environment; subcommand flags override
// them.
type Config struct {
	// ENV: FORMEL_LOG_FORMAT (text or json)
	LogFormat string `env:"FORMEL_LOG_FORMAT,default=text"`

	// ENV: FORMEL_LOG_LEVEL (debug, info, warn, error)
	LogLevel string `env:"FORMEL_LOG_LEVEL,default=info"`

	// Directory holding form definitions and their schemas.
	Definitions string `env:"FORMEL_DEFINITIONS,default=."`

	// Directory holding one phrase file per locale. Empty disables phrases.
	Phrases string `env:"FORMEL_PHRASES"`

	Locale string `env:"FORMEL_LOCALE,default=en"`
	Addr   string `env:"FORMEL_ADDR,default=:8080"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("formel: decode environment: %w", err)
	}
	return cfg, nil
}

func newLogger(format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}

const usage = `usage: formel <command> [flags]

commands:
  render   render a form definition to HTML
  serve    preview form definitions over HTTP, reloading phrases on change
  prompt   capture model values for a form interactively
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "render":
		err = runRender(cfg, args)
	case "serve":
		err = runServe(cfg, args)
	case "prompt":
		err = runPrompt(cfg, args)
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("formel %s: %v", os.Args[1], err)
	}
}
