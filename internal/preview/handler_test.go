package preview

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formel/internal/definition"
	"github.com/goliatone/go-formel/pkg/phrase"
)

var previewFS = fstest.MapFS{
	"schema.yaml": {Data: []byte(`
type: object
properties:
  name:
    type: string
  color:
    type: string
    enum: [red, blue]
`)},
	"forms.yaml": {Data: []byte(`
forms:
  paint:
    form: { action: /paint }
    schema: schema.yaml
    values: { name: Ada }
    fields:
      - name: name
      - name: color
        type: select
`)},
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newServerFS(t, previewFS)
}

func newServerFS(t *testing.T, fsys fstest.MapFS) *httptest.Server {
	t.Helper()
	store, err := definition.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load definitions: %v", err)
	}
	catalog := phrase.NewCatalog(
		phrase.WithLanguage("en", map[string]any{"paint": map[string]any{"name": map[string]any{"label": "Your name"}}}),
		phrase.WithLanguage("fr", map[string]any{"paint": map[string]any{"name": map[string]any{"label": "Votre nom"}}}),
	)

	router := chi.NewRouter()
	New(store, WithCatalog(catalog)).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(data)
}

func TestHandler_ListsForms(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/forms/")
	if err != nil {
		t.Fatalf("get forms: %v", err)
	}
	body := readBody(t, resp)
	if strings.TrimSpace(body) != `{"forms":["paint"]}` {
		t.Fatalf("unexpected listing: %s", body)
	}
}

func TestHandler_RendersFormPerLocale(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/forms/paint")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, `<label for="input-name">Your name</label>`) {
		t.Fatalf("expected english label: %s", body)
	}
	if !strings.Contains(body, `<input id="input-name" name="name" type="text" value="Ada">`) {
		t.Fatalf("expected model value: %s", body)
	}

	resp, err = http.Get(srv.URL + "/forms/paint?locale=fr&mode=display")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	body = readBody(t, resp)
	if !strings.Contains(body, `<h3>Votre nom</h3><div class="display"><p>Ada</p></div>`) {
		t.Fatalf("expected french display markup: %s", body)
	}
}

func TestHandler_SubmitRendersDisplay(t *testing.T) {
	srv := newServer(t)
	resp, err := http.PostForm(srv.URL+"/forms/paint", url.Values{"name": {"Grace"}, "color": {"blue"}})
	if err != nil {
		t.Fatalf("post form: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, `<div class="display"><p>Grace</p></div>`) {
		t.Fatalf("expected submitted name: %s", body)
	}
	if !strings.Contains(body, `<div class="display"><p>blue</p></div>`) {
		t.Fatalf("expected selected colour: %s", body)
	}
}

func TestHandler_DisplayOverridesEditableDefinition(t *testing.T) {
	srv := newServerFS(t, fstest.MapFS{
		"forms.yaml": {Data: []byte(`
forms:
  draft:
    edit: true
    fields:
      - name: name
`)},
	})

	resp, err := http.PostForm(srv.URL+"/forms/draft", url.Values{"name": {"Ada"}})
	if err != nil {
		t.Fatalf("post form: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, `<h3>Name</h3><div class="display"><p>Ada</p></div>`) {
		t.Fatalf("expected submission in display mode: %s", body)
	}
	if strings.Contains(body, `class="edit"`) {
		t.Fatalf("submission rendered editable controls: %s", body)
	}

	resp, err = http.Get(srv.URL + "/forms/draft?mode=display")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	body = readBody(t, resp)
	if strings.Contains(body, `class="edit"`) {
		t.Fatalf("display preview rendered editable controls: %s", body)
	}

	resp, err = http.Get(srv.URL + "/forms/draft")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	body = readBody(t, resp)
	if !strings.Contains(body, `<input id="input-name" name="name" type="text">`) {
		t.Fatalf("expected editable default: %s", body)
	}
}

func TestHandler_UnknownForm(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/forms/nope")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
