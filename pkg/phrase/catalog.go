package phrase

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Option configures a Catalog before construction.
type Option func(*config)

type config struct {
	locale    string
	fallbacks []string
	languages map[string]map[string]any
	logger    *slog.Logger
}

// WithLocale selects the active locale. Defaults to "en".
func WithLocale(locale string) Option {
	return func(cfg *config) {
		cfg.locale = strings.TrimSpace(locale)
	}
}

// WithFallback appends locales consulted, in order, when the active locale has
// no entry for a key.
func WithFallback(locales ...string) Option {
	return func(cfg *config) {
		for _, locale := range locales {
			if locale = strings.TrimSpace(locale); locale != "" {
				cfg.fallbacks = append(cfg.fallbacks, locale)
			}
		}
	}
}

// WithLanguage seeds a locale with phrases. Nested maps are flattened into
// dotted keys.
func WithLanguage(locale string, phrases map[string]any) Option {
	return func(cfg *config) {
		if cfg.languages == nil {
			cfg.languages = make(map[string]map[string]any)
		}
		cfg.languages[locale] = phrases
	}
}

// WithLogger routes catalog diagnostics (template failures, reloads).
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// Catalog is a Lookup over in-memory phrase tables. It is safe for concurrent
// use.
type Catalog struct {
	mu        sync.RWMutex
	locale    string
	fallbacks []string
	languages map[string]map[string]string
	templates map[string]*pongo2.Template
	logger    *slog.Logger
}

var _ Lookup = (*Catalog)(nil)

// NewCatalog constructs a Catalog using the provided options.
func NewCatalog(options ...Option) *Catalog {
	cfg := &config{locale: "en"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	registerDefaultFilters()

	c := &Catalog{
		locale:    cfg.locale,
		fallbacks: cfg.fallbacks,
		languages: make(map[string]map[string]string),
		templates: make(map[string]*pongo2.Template),
		logger:    cfg.logger,
	}
	locales := slices.Sorted(maps.Keys(cfg.languages))
	for _, locale := range locales {
		c.AddLanguage(locale, cfg.languages[locale])
	}
	return c
}

// AddLanguage merges phrases into locale, replacing existing keys.
func (c *Catalog) AddLanguage(locale string, phrases map[string]any) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return
	}
	flat := make(map[string]string)
	flatten("", phrases, flat)

	c.mu.Lock()
	defer c.mu.Unlock()

	table := c.languages[locale]
	if table == nil {
		table = make(map[string]string, len(flat))
		c.languages[locale] = table
	}
	maps.Copy(table, flat)
}

// SetLocale switches the active locale.
func (c *Catalog) SetLocale(locale string) {
	c.mu.Lock()
	c.locale = strings.TrimSpace(locale)
	c.mu.Unlock()
}

// Locale returns the active locale.
func (c *Catalog) Locale() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.locale
}

// Locales lists the loaded locales in sorted order.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.languages))
}

// Phrase implements Lookup for the active locale.
func (c *Catalog) Phrase(key string, vars map[string]any) (string, bool) {
	return c.lookup(c.Locale(), key, vars)
}

// Translate resolves key for an explicit locale. The first map argument, if
// any, supplies interpolation variables.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	var vars map[string]any
	for _, arg := range args {
		if m, ok := arg.(map[string]any); ok {
			vars = m
			break
		}
	}
	msg, ok := c.lookup(locale, key, vars)
	if !ok {
		return "", fmt.Errorf("phrase: no phrase %q for locale %q", key, locale)
	}
	return msg, nil
}

// ForLocale returns a Lookup pinned to locale, independent of the active one.
func (c *Catalog) ForLocale(locale string) Lookup {
	return Func(func(key string, vars map[string]any) (string, bool) {
		return c.lookup(locale, key, vars)
	})
}

func (c *Catalog) lookup(locale, key string, vars map[string]any) (string, bool) {
	key = strings.TrimSpace(key)
	if c == nil || key == "" {
		return "", false
	}

	raw, ok := c.raw(locale, key)
	if !ok {
		c.logger.Debug("phrase missing", slog.String("locale", locale), slog.String("key", key))
		return "", false
	}
	if !isTemplateContent(raw) {
		return raw, raw != ""
	}

	tmpl, err := c.template(raw)
	if err != nil {
		c.logger.Warn("phrase template invalid", slog.String("key", key), slog.String("err", err.Error()))
		return "", false
	}
	out, err := tmpl.Execute(convertToContext(vars))
	if err != nil {
		c.logger.Warn("phrase template failed", slog.String("key", key), slog.String("err", err.Error()))
		return "", false
	}
	return out, out != ""
}

func (c *Catalog) raw(locale, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	chain := append([]string{locale}, c.fallbacks...)
	if base, _, found := strings.Cut(locale, "-"); found {
		chain = slices.Insert(chain, 1, base)
	}
	for _, candidate := range chain {
		if table, ok := c.languages[candidate]; ok {
			if msg, ok := table[key]; ok {
				return msg, true
			}
		}
	}
	return "", false
}

func (c *Catalog) template(source string) (*pongo2.Template, error) {
	c.mu.RLock()
	if tmpl, ok := c.templates[source]; ok {
		c.mu.RUnlock()
		return tmpl, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if tmpl, ok := c.templates[source]; ok {
		return tmpl, nil
	}
	tmpl, err := pongo2.FromString(source)
	if err != nil {
		return nil, fmt.Errorf("phrase: parse template: %w", err)
	}
	c.templates[source] = tmpl
	return tmpl, nil
}

// replace swaps a locale table wholesale, used by reloads.
func (c *Catalog) replace(locale string, phrases map[string]any) {
	flat := make(map[string]string)
	flatten("", phrases, flat)

	c.mu.Lock()
	c.languages[locale] = flat
	c.mu.Unlock()
}

// flatten turns nested phrase documents into dotted keys. A nested "_" key
// names the value of its parent path, so a document can hold both
// "foo.bar" and "foo.bar.label".
func flatten(prefix string, in map[string]any, out map[string]string) {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := key
		if key == "_" {
			path = prefix
		} else if prefix != "" {
			path = prefix + "." + key
		}
		if path == "" {
			continue
		}
		switch v := in[key].(type) {
		case nil:
			continue
		case map[string]any:
			flatten(path, v, out)
		case map[string]string:
			for k, s := range v {
				out[path+"."+k] = s
			}
		case string:
			out[path] = v
		default:
			out[path] = fmt.Sprint(v)
		}
	}
}

func isTemplateContent(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}

func convertToContext(vars map[string]any) pongo2.Context {
	ctx := make(pongo2.Context, len(vars))
	for key, value := range vars {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		ctx[key] = value
	}
	return ctx
}

var filtersOnce sync.Once

func registerDefaultFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", filterTrim)
		}
	})
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
