package field

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-formel/pkg/phrase"
)

// ClassNames is the CSS vocabulary the renderer emits.
type ClassNames struct {
	// Control is added to every field container, together with
	// "<Control>-<name>".
	Control string
	// Edit and Display wrap the main control, or each group pair.
	Edit    string
	Display string
	// SelectCue marks string cues prepended to selects.
	SelectCue string
}

// DefaultClassNames returns the stock vocabulary.
func DefaultClassNames() ClassNames {
	return ClassNames{
		Control:   "control",
		Edit:      "edit",
		Display:   "display",
		SelectCue: "select-cue",
	}
}

func (c ClassNames) mode(m Mode) string {
	if m == ModeDisplay {
		return c.Display
	}
	return c.Edit
}

func (c ClassNames) withDefaults() ClassNames {
	def := DefaultClassNames()
	if strings.TrimSpace(c.Control) == "" {
		c.Control = def.Control
	}
	if strings.TrimSpace(c.Edit) == "" {
		c.Edit = def.Edit
	}
	if strings.TrimSpace(c.Display) == "" {
		c.Display = def.Display
	}
	if strings.TrimSpace(c.SelectCue) == "" {
		c.SelectCue = def.SelectCue
	}
	return c
}

type Option func(*config)

type config struct {
	phrases  phrase.Lookup
	policy   *bluemonday.Policy
	classes  ClassNames
	controls *Controls
	logger   *slog.Logger
	language language.Tag
}

// WithPhrases sets the phrase lookup used for labels, blocks, enum labels and
// message headings.
func WithPhrases(lookup phrase.Lookup) Option {
	return func(cfg *config) {
		if lookup != nil {
			cfg.phrases = lookup
		}
	}
}

// WithPolicy replaces the sanitizer applied to markup-looking block content.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithClassNames overrides the CSS vocabulary. Empty entries keep defaults.
func WithClassNames(classes ClassNames) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// WithControls swaps the control registry.
func WithControls(controls *Controls) Option {
	return func(cfg *config) {
		if controls != nil {
			cfg.controls = controls
		}
	}
}

// WithLogger routes debug output (missing phrases, control fallbacks).
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithLanguage sets the language used to capitalise default labels.
func WithLanguage(tag language.Tag) Option {
	return func(cfg *config) {
		cfg.language = tag
	}
}

// Renderer renders fields, forms and the standalone control helpers. It holds
// no per-render state and is safe for concurrent use.
type Renderer struct {
	phrases  phrase.Lookup
	policy   *bluemonday.Policy
	classes  ClassNames
	controls *Controls
	logger   *slog.Logger
	title    cases.Caser
	titleMu  sync.Mutex
}

// New constructs a Renderer applying any provided options.
func New(options ...Option) *Renderer {
	cfg := config{
		phrases:  phrase.None,
		classes:  DefaultClassNames(),
		language: language.English,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.policy == nil {
		cfg.policy = defaultPolicy()
	}
	if cfg.controls == nil {
		cfg.controls = DefaultControls()
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Renderer{
		phrases:  cfg.phrases,
		policy:   cfg.policy,
		classes:  cfg.classes.withDefaults(),
		controls: cfg.controls,
		logger:   cfg.logger,
		title:    cases.Title(cfg.language, cases.NoLower),
	}
}

// Controls exposes the control registry.
func (r *Renderer) Controls() *Controls {
	return r.controls
}

// capitalize upper-cases the first letter of s and leaves the rest alone.
func (r *Renderer) capitalize(s string) string {
	if s == "" {
		return s
	}
	first, rest := s, ""
	for i := range s {
		if i > 0 {
			first, rest = s[:i], s[i:]
			break
		}
	}
	r.titleMu.Lock()
	defer r.titleMu.Unlock()
	return r.title.String(first) + rest
}

func (r *Renderer) sanitize(markup string) string {
	return r.policy.Sanitize(markup)
}

var (
	blockPolicyOnce sync.Once
	blockPolicy     *bluemonday.Policy
)

// defaultPolicy allows user-generated-content markup plus class attributes.
func defaultPolicy() *bluemonday.Policy {
	blockPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		blockPolicy = policy
	})
	return blockPolicy
}
