package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// TextPrompt asks for free text. Multiline prompts open an editor-style
// block and keep line breaks.
type TextPrompt struct {
	Label     string
	Value     string
	Hint      string
	Multiline bool
}

// ConfirmPrompt asks a yes/no question.
type ConfirmPrompt struct {
	Label string
	Hint  string
	Value bool
}

// ChoicePrompt offers a fixed list. Selected holds indices into Choices that
// start checked; Choose uses only the first.
type ChoicePrompt struct {
	Label    string
	Hint     string
	Choices  []string
	Selected []int
}

// PromptDriver is the terminal seen by a Session.
type PromptDriver interface {
	Text(ctx context.Context, p TextPrompt) (string, error)
	Confirm(ctx context.Context, p ConfirmPrompt) (bool, error)
	Choose(ctx context.Context, p ChoicePrompt) (int, error)
	ChooseMany(ctx context.Context, p ChoicePrompt) ([]int, error)
	Notify(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out  io.Writer
	opts []survey.AskOpt
}

// NewSurveyDriver prompts on the process terminal through survey. Notices
// are written to out, or stdout when out is nil.
func NewSurveyDriver(out io.Writer, opts ...survey.AskOpt) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out, opts: opts}
}

func (d *surveyDriver) ask(ctx context.Context, prompt survey.Prompt, answer any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := survey.AskOne(prompt, answer, d.opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func (d *surveyDriver) Text(ctx context.Context, p TextPrompt) (string, error) {
	var prompt survey.Prompt = &survey.Input{Message: p.Label, Help: p.Hint, Default: p.Value}
	if p.Multiline {
		prompt = &survey.Multiline{Message: p.Label, Help: p.Hint, Default: p.Value}
	}
	var answer string
	if err := d.ask(ctx, prompt, &answer); err != nil {
		return "", err
	}
	return answer, nil
}

func (d *surveyDriver) Confirm(ctx context.Context, p ConfirmPrompt) (bool, error) {
	var answer bool
	err := d.ask(ctx, &survey.Confirm{Message: p.Label, Help: p.Hint, Default: p.Value}, &answer)
	return answer, err
}

func (d *surveyDriver) Choose(ctx context.Context, p ChoicePrompt) (int, error) {
	prompt := &survey.Select{Message: p.Label, Help: p.Hint, Options: p.Choices, PageSize: len(p.Choices)}
	if picked := pick(p.Choices, p.Selected); len(picked) > 0 {
		prompt.Default = picked[0]
	}
	var answer string
	if err := d.ask(ctx, prompt, &answer); err != nil {
		return -1, err
	}
	return positions(p.Choices, []string{answer})[0], nil
}

func (d *surveyDriver) ChooseMany(ctx context.Context, p ChoicePrompt) ([]int, error) {
	prompt := &survey.MultiSelect{Message: p.Label, Help: p.Hint, Options: p.Choices, PageSize: len(p.Choices)}
	if picked := pick(p.Choices, p.Selected); len(picked) > 0 {
		prompt.Default = picked
	}
	var answer []string
	if err := d.ask(ctx, prompt, &answer); err != nil {
		return nil, err
	}
	return positions(p.Choices, answer), nil
}

func (d *surveyDriver) Notify(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// pick returns the choices at the given indices, skipping any out of range.
func pick(choices []string, indices []int) []string {
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(choices) {
			out = append(out, choices[idx])
		}
	}
	return out
}

// positions maps each answer to its index in choices, or -1.
func positions(choices, answers []string) []int {
	out := make([]int, 0, len(answers))
	for _, answer := range answers {
		idx := -1
		for i, choice := range choices {
			if choice == answer {
				idx = i
				break
			}
		}
		out = append(out, idx)
	}
	return out
}
