package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sprout-cli/sprout/internal/plan"
)

// Run executes the questionnaire and returns the collected answers.
// Each question runs as its own independent huh.Form to avoid the huh
// v0.8.x YOffset scroll bug that occurs when multiple groups share a
// single viewport.
func Run(questions []Question) (*plan.AnswerSet, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	answers := &plan.AnswerSet{}
	theme := newWizardTheme()

	for i := range questions {
		q := &questions[i]

		var field huh.Field
		switch q.Type {
		case QuestionTypeSelect:
			field = buildSelectField(q, answers)
		case QuestionTypeInput:
			field = buildInputField(q, answers)
		case QuestionTypeConfirm:
			field = buildConfirmField(q, answers)
		}

		form := huh.NewForm(huh.NewGroup(field)).
			WithTheme(theme).
			WithAccessible(false)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("wizard error: %w", err)
		}
	}

	return answers, nil
}

// buildSelectField creates a huh.Select field for a select-type question.
func buildSelectField(q *Question, answers *plan.AnswerSet) *huh.Select[string] {
	selected := q.Default

	opts := make([]huh.Option[string], len(q.Options))
	for i, opt := range q.Options {
		key := opt.Label
		if opt.Desc != "" {
			key = opt.Label + " - " + opt.Desc
		}
		opts[i] = huh.NewOption(key, opt.Value)
	}

	sel := huh.NewSelect[string]().
		Title(q.Title).
		Description(q.Description).
		Options(opts...).
		Value(&selected)

	// Wire up value storage after each change.
	sel.Validate(func(val string) error {
		saveAnswer(q.ID, val, answers)
		return nil
	})

	return sel
}

// buildInputField creates a huh.Input field for an input-type question.
func buildInputField(q *Question, answers *plan.AnswerSet) *huh.Input {
	value := q.Default

	inp := huh.NewInput().
		Title(q.Title).
		Description(q.Description).
		Value(&value)

	if q.Default != "" {
		inp = inp.Placeholder(q.Default)
	}

	qID := q.ID
	required := q.Required
	defVal := q.Default
	validate := q.Validate
	inp = inp.Validate(func(val string) error {
		v := strings.TrimSpace(val)
		if v == "" && defVal != "" {
			v = defVal
		}
		if required && v == "" {
			return errors.New("a value is required")
		}
		if validate != nil {
			if err := validate(v); err != nil {
				return err
			}
		}
		saveAnswer(qID, v, answers)
		return nil
	})

	return inp
}

// buildConfirmField creates a huh.Confirm field for a toggle question.
func buildConfirmField(q *Question, answers *plan.AnswerSet) *huh.Confirm {
	value := q.DefaultBool

	qID := q.ID
	conf := huh.NewConfirm().
		Title(q.Title).
		Description(q.Description).
		Affirmative("Yes").
		Negative("No").
		Value(&value)

	conf = conf.Validate(func(val bool) error {
		saveToggle(qID, val, answers)
		return nil
	})

	return conf
}

// Brand colors for the wizard theme.
const (
	colorPrimary = "#34D399"
	colorText    = "#E5E7EB"
	colorMuted   = "#6B7280"
	colorError   = "#EF4444"
	colorBorder  = "#4B5563"
)

// newWizardTheme creates a huh.Theme with sprout branding.
func newWizardTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#059669", Dark: colorPrimary}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: colorError}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: colorText}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: colorMuted}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: colorBorder}

	t.Focused.Base = t.Focused.Base.BorderForeground(border)
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(primary)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(text).
		Background(lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"})

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
