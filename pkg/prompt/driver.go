package prompt

import (
	"context"
	"errors"
	"slices"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Kind is the shape of answer a Question expects.
type Kind int

const (
	KindText Kind = iota
	KindSecret
	KindInteger
	KindNumber
	KindBoolean
	KindChoice
	KindChoices
)

// Choice is one enum value offered by a choice question.
type Choice struct {
	Label    string
	Value    any
	Selected bool
}

// Question is a schema property prepared for the terminal. Message and Help
// come from phrases or the schema; Default and the Selected choices come from
// the model being edited.
type Question struct {
	Name    string
	Kind    Kind
	Message string
	Help    string
	Default string
	Choices []Choice
	// Check validates free-text answers before they are accepted.
	Check func(string) error
}

// Driver asks questions on a terminal. Capture picks the method from the
// question's Kind.
type Driver interface {
	// Text answers KindText, KindSecret, KindInteger and KindNumber.
	Text(ctx context.Context, q Question) (string, error)
	Confirm(ctx context.Context, q Question) (bool, error)
	// Choose returns the indices of the picked choices. KindChoice questions
	// return exactly one.
	Choose(ctx context.Context, q Question) ([]int, error)
}

type surveyDriver struct {
	opts []survey.AskOpt
}

// NewSurveyDriver returns a Driver backed by survey. The ask options apply to
// every question (stdio, icons, page size).
func NewSurveyDriver(opts ...survey.AskOpt) Driver {
	return &surveyDriver{opts: opts}
}

func (d *surveyDriver) Text(ctx context.Context, q Question) (string, error) {
	var p survey.Prompt
	if q.Kind == KindSecret {
		p = &survey.Password{Message: q.Message, Help: q.Help}
	} else {
		p = &survey.Input{Message: q.Message, Help: q.Help, Default: q.Default}
	}
	var out string
	err := d.ask(ctx, p, &out, q.Check)
	return out, err
}

func (d *surveyDriver) Confirm(ctx context.Context, q Question) (bool, error) {
	def, _ := strconv.ParseBool(q.Default)
	var out bool
	err := d.ask(ctx, &survey.Confirm{Message: q.Message, Help: q.Help, Default: def}, &out, nil)
	return out, err
}

func (d *surveyDriver) Choose(ctx context.Context, q Question) ([]int, error) {
	labels := make([]string, len(q.Choices))
	var selected []string
	for i, choice := range q.Choices {
		labels[i] = choice.Label
		if choice.Selected {
			selected = append(selected, choice.Label)
		}
	}

	if q.Kind == KindChoices {
		p := &survey.MultiSelect{Message: q.Message, Help: q.Help, Options: labels}
		if len(selected) > 0 {
			p.Default = selected
		}
		var out []string
		if err := d.ask(ctx, p, &out, nil); err != nil {
			return nil, err
		}
		return positions(labels, out), nil
	}

	p := &survey.Select{Message: q.Message, Help: q.Help, Options: labels}
	if len(selected) > 0 {
		p.Default = selected[0]
	}
	var out string
	if err := d.ask(ctx, p, &out, nil); err != nil {
		return nil, err
	}
	return positions(labels, []string{out}), nil
}

func (d *surveyDriver) ask(ctx context.Context, p survey.Prompt, out any, check func(string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opts := slices.Clone(d.opts)
	if check != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return check(s)
		}))
	}
	if err := survey.AskOne(p, out, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// positions maps picked labels back to choice indices. Duplicate labels
// resolve to their first occurrence.
func positions(labels, picked []string) []int {
	out := make([]int, 0, len(picked))
	for _, label := range picked {
		if i := slices.Index(labels, label); i >= 0 {
			out = append(out, i)
		}
	}
	return out
}
