package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/lt/internal/app"
	"github.com/alexanderramin/lt/internal/cli/formatter"
	"github.com/alexanderramin/lt/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var errNeedsConfirmation = errors.New("refusing to log without confirmation, pass --yes")

// Prompter asks the user for input. Implementations return
// domain.ErrAborted when the user cancels.
type Prompter interface {
	Confirm(title string, defaultYes bool) (bool, error)
	Input(title, placeholder string, validate func(string) error) (string, error)
	Password(title string) (string, error)
}

// HuhPrompter prompts on the terminal with huh forms.
type HuhPrompter struct{}

func ltHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func runForm(field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).
		WithTheme(ltHuhTheme()).
		WithShowHelp(false).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return domain.ErrAborted
	}
	return err
}

func (HuhPrompter) Confirm(title string, defaultYes bool) (bool, error) {
	answer := defaultYes
	err := runForm(huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&answer))
	return answer, err
}

func (HuhPrompter) Input(title, placeholder string, validate func(string) error) (string, error) {
	var value string
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value)
	if validate != nil {
		input = input.Validate(validate)
	}
	err := runForm(input)
	return value, err
}

func (HuhPrompter) Password(title string) (string, error) {
	var value string
	err := runForm(huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value))
	return value, err
}

// logPrompter asks the questions of the log flow. Without a terminal,
// suggestions are reported as errors and unconfirmed logs are refused.
type logPrompter struct {
	app     *App
	printer *formatter.Printer
}

func (a *App) logPrompter(cmd *cobra.Command) app.LogPrompter {
	return &logPrompter{app: a, printer: a.printer(cmd)}
}

func (p *logPrompter) Warn(_ context.Context, w domain.OverlapWarning) {
	p.printer.Warn("Warning: %s", w)
}

func (p *logPrompter) ConfirmSuggestion(_ context.Context, input string, c domain.Candidate) (bool, error) {
	if !p.app.interactive() {
		return false, &domain.IssueResolutionError{Input: input, Candidates: []domain.Candidate{c}}
	}
	title := fmt.Sprintf("Did you mean '%s'", c.Key)
	if c.Hint != "" {
		title += fmt.Sprintf(" (%s)", c.Hint)
	}
	return p.app.Prompter.Confirm(title+"?", true)
}

func (p *logPrompter) ConfirmLog(_ context.Context, preview app.LogPreview) (bool, error) {
	if !p.app.interactive() {
		return false, errNeedsConfirmation
	}
	p.printer.Plain("%s", formatter.FormatLogPreview(preview))
	return p.app.Prompter.Confirm("Continue?", true)
}
