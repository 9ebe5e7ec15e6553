package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formel/pkg/model"
	"github.com/goliatone/go-formel/pkg/phrase"
	"github.com/goliatone/go-formel/pkg/schema"
)

type stubDriver struct {
	texts    []string
	confirms []bool
	choices  [][]int

	questions []Question
}

func (s *stubDriver) Text(_ context.Context, q Question) (string, error) {
	s.questions = append(s.questions, q)
	if len(s.texts) == 0 {
		return "", errors.New("no text scripted")
	}
	val := s.texts[0]
	s.texts = s.texts[1:]
	if q.Check != nil {
		if err := q.Check(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, q Question) (bool, error) {
	s.questions = append(s.questions, q)
	if len(s.confirms) == 0 {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirms[0]
	s.confirms = s.confirms[1:]
	return val, nil
}

func (s *stubDriver) Choose(_ context.Context, q Question) ([]int, error) {
	s.questions = append(s.questions, q)
	if len(s.choices) == 0 {
		return nil, errors.New("no choice scripted")
	}
	val := s.choices[0]
	s.choices = s.choices[1:]
	return val, nil
}

func (s *stubDriver) question(t *testing.T, name string) Question {
	t.Helper()
	for _, q := range s.questions {
		if q.Name == name {
			return q
		}
	}
	t.Fatalf("question %q was not asked", name)
	return Question{}
}

const signupSchema = `
type: object
properties:
  email:
    type: string
    title: Email address
  secret:
    type: string
    format: password
  plan:
    type: string
    enum: [free, pro]
  topics:
    type: array
    items:
      enum: [news, tips, offers]
  seats:
    type: integer
  consent:
    type: boolean
`

func TestCapture_AsksInSchemaOrder(t *testing.T) {
	driver := &stubDriver{
		texts:    []string{"ada@example.com", "hunter2", "3"},
		choices:  [][]int{{1}, {0, 2}},
		confirms: []bool{true},
	}
	catalog := phrase.NewCatalog(phrase.WithLanguage("en", map[string]any{
		"signup": map[string]any{
			"plan": map[string]any{
				"label": "Choose a plan",
				"value": map[string]any{"pro": map[string]any{"label": "Pro plan"}},
			},
		},
	}))

	got, err := Capture(context.Background(), driver, schema.MustParse([]byte(signupSchema)), WithPhrases(catalog, "signup"))
	if err != nil {
		t.Fatalf("capture: %v", err)
	}

	want := map[string]any{
		"email":   "ada@example.com",
		"secret":  "hunter2",
		"plan":    "pro",
		"topics":  []any{"news", "offers"},
		"seats":   int64(3),
		"consent": true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	var asked []string
	var kinds []Kind
	for _, q := range driver.questions {
		asked = append(asked, q.Message)
		kinds = append(kinds, q.Kind)
	}
	wantAsked := []string{"Email address", "secret", "Choose a plan", "topics", "seats", "consent"}
	if diff := cmp.Diff(wantAsked, asked); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	wantKinds := []Kind{KindText, KindSecret, KindChoice, KindChoices, KindInteger, KindBoolean}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}

	plan := driver.question(t, "plan")
	wantChoices := []Choice{{Label: "free", Value: "free"}, {Label: "Pro plan", Value: "pro"}}
	if diff := cmp.Diff(wantChoices, plan.Choices); diff != "" {
		t.Fatalf("plan choices mismatch (-want +got):\n%s", diff)
	}
}

func TestCapture_UsesModelDefaultsAndOrder(t *testing.T) {
	s := schema.MustParse([]byte(signupSchema))
	defaults := model.NewMap(map[string]any{
		"plan":   "pro",
		"email":  "old@example.com",
		"topics": []any{"tips"},
		"secret": "hunter2",
	})
	driver := &stubDriver{
		texts:   []string{"new@example.com", ""},
		choices: [][]int{{1}, {1}},
	}

	got, err := Capture(context.Background(), driver, s, WithDefaults(defaults), WithOrder("plan", "topics", "email", "secret"))
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	want := map[string]any{"plan": "pro", "topics": []any{"tips"}, "email": "new@example.com"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	selected := func(q Question) []bool {
		out := make([]bool, len(q.Choices))
		for i, c := range q.Choices {
			out[i] = c.Selected
		}
		return out
	}
	if diff := cmp.Diff([]bool{false, true}, selected(driver.question(t, "plan"))); diff != "" {
		t.Fatalf("plan defaults mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false, true, false}, selected(driver.question(t, "topics"))); diff != "" {
		t.Fatalf("topics defaults mismatch (-want +got):\n%s", diff)
	}
	if got := driver.question(t, "email").Default; got != "old@example.com" {
		t.Fatalf("expected email default, got %q", got)
	}
	if got := driver.question(t, "secret").Default; got != "" {
		t.Fatalf("secret default leaked into question: %q", got)
	}
}

func TestCapture_Errors(t *testing.T) {
	s := schema.MustParse([]byte(signupSchema))

	if _, err := Capture(context.Background(), &stubDriver{}, nil); !errors.Is(err, ErrNoSchema) {
		t.Fatalf("expected ErrNoSchema, got %v", err)
	}
	if _, err := Capture(context.Background(), &stubDriver{}, s, WithOrder("missing")); !errors.Is(err, schema.ErrUnknownProperty) {
		t.Fatalf("expected ErrUnknownProperty, got %v", err)
	}
	if _, err := Capture(context.Background(), &stubDriver{texts: []string{"many"}}, s, WithOrder("seats")); err == nil {
		t.Fatalf("expected integer validation error")
	}
	if _, err := Capture(context.Background(), &stubDriver{choices: [][]int{{5}}}, s, WithOrder("plan")); err == nil {
		t.Fatalf("expected out of range choice error")
	}
	if _, err := Capture(context.Background(), &stubDriver{choices: [][]int{{0, 1}}}, s, WithOrder("plan")); err == nil {
		t.Fatalf("expected single choice error")
	}
}

func TestPositions_MapsLabelsToChoices(t *testing.T) {
	got := positions([]string{"free", "Pro plan", "free"}, []string{"Pro plan", "free", "gone"})
	if diff := cmp.Diff([]int{1, 0}, got); diff != "" {
		t.Fatalf("positions mismatch (-want +got):\n%s", diff)
	}
}
