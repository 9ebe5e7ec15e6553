// Package preview serves rendered form definitions over HTTP so phrase and
// definition edits can be checked in a browser.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formel/internal/definition"
	"github.com/goliatone/go-formel/pkg/field"
	"github.com/goliatone/go-formel/pkg/model"
	"github.com/goliatone/go-formel/pkg/phrase"
)

// Handler renders definitions from a store.
type Handler struct {
	store   *definition.Store
	catalog *phrase.Catalog
	logger  *slog.Logger
	options []field.Option
}

// Option configures a Handler.
type Option func(*Handler)

// WithCatalog sets the phrase catalog; the "locale" query parameter selects
// the locale per request.
func WithCatalog(catalog *phrase.Catalog) Option {
	return func(h *Handler) {
		h.catalog = catalog
	}
}

// WithLogger routes request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithFieldOptions adds renderer options applied to every request.
func WithFieldOptions(options ...field.Option) Option {
	return func(h *Handler) {
		h.options = append(h.options, options...)
	}
}

// New constructs a Handler over store.
func New(store *definition.Store, options ...Option) *Handler {
	h := &Handler{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// RegisterRoutes mounts the preview endpoints:
//
//	GET  /forms       form ids as JSON
//	GET  /forms/{id}  the rendered form (?locale=, ?mode=display)
//	POST /forms/{id}  the form re-rendered in display mode from the submission
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/forms", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"forms": h.store.IDs()})
		})
		r.Get("/{id}", h.show)
		r.Post("/{id}", h.submit)
	})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.URL.Query().Get("mode") == "display" {
		off := false
		ctx = field.WithScope(ctx, field.Scope{Edit: &off})
	}
	h.render(ctx, w, r, nil)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	values := make(map[string]any, len(r.PostForm))
	for key, list := range r.PostForm {
		if len(list) == 1 {
			values[key] = list[0]
			continue
		}
		items := make([]any, len(list))
		for i, item := range list {
			items[i] = item
		}
		values[key] = items
	}

	off := false
	ctx := field.WithScope(r.Context(), field.Scope{Edit: &off})
	h.render(ctx, w, r, values)
}

func (h *Handler) render(ctx context.Context, w http.ResponseWriter, r *http.Request, values map[string]any) {
	id := chi.URLParam(r, "id")
	if _, ok := h.store.Form(id); !ok {
		http.NotFound(w, r)
		return
	}

	m, err := h.store.Model(ctx, id, values)
	if err != nil {
		h.fail(w, r, id, err)
		return
	}
	if values != nil {
		h.logger.DebugContext(ctx, "form submitted", slog.String("form", id), slog.Any("values", submittedValues(m)))
	}
	out, err := h.store.Render(ctx, h.renderer(r), id, m)
	if err != nil {
		h.fail(w, r, id, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprintf(w, "<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head><body>%s</body></html>\n", html.EscapeString(id), out)
}

func (h *Handler) renderer(r *http.Request) *field.Renderer {
	options := append([]field.Option(nil), h.options...)
	options = append(options, field.WithLogger(h.logger))
	if h.catalog != nil {
		var lookup phrase.Lookup = h.catalog
		if locale := strings.TrimSpace(r.URL.Query().Get("locale")); locale != "" {
			lookup = h.catalog.ForLocale(locale)
		}
		options = append(options, field.WithPhrases(lookup))
	}
	return field.New(options...)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, id string, err error) {
	h.logger.ErrorContext(r.Context(), "render form failed", slog.String("form", id), slog.String("err", err.Error()))
	status := http.StatusInternalServerError
	if errors.Is(err, context.Canceled) {
		status = http.StatusServiceUnavailable
	}
	http.Error(w, http.StatusText(status), status)
}

// submittedValues lists the bound values in schema order as name=value pairs.
func submittedValues(m model.Model) []string {
	values, order := model.Values(m)
	out := make([]string, 0, len(order))
	for _, name := range order {
		out = append(out, fmt.Sprintf("%s=%v", name, values[name]))
	}
	return out
}
