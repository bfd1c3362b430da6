// Package wizard provides the interactive questionnaire that collects
// a scaffolding answer set. Questions are presented in fixed order as
// independent huh forms; nothing here touches the filesystem.
package wizard

import (
	"errors"

	"github.com/sprout-cli/sprout/internal/plan"
)

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect QuestionType = iota
	// QuestionTypeInput is a text input question.
	QuestionTypeInput
	// QuestionTypeConfirm is a yes/no toggle question.
	QuestionTypeConfirm
)

// Question defines a single wizard question.
type Question struct {
	ID          string       // Unique identifier mapped to an AnswerSet field.
	Type        QuestionType // Select, Input, or Confirm.
	Title       string       // Question title.
	Description string       // Additional description.
	Options     []Option     // Options for select questions.
	Default     string       // Default value for select/input questions.
	DefaultBool bool         // Default value for confirm questions.
	Required    bool         // Whether the field is required.
	Validate    func(string) error
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label.
	Value string // Actual value stored.
	Desc  string // Optional description.
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	// The run is aborted with no side effects.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
)

// saveAnswer stores a string answer in the answer set.
func saveAnswer(id, value string, answers *plan.AnswerSet) {
	switch id {
	case "project_name":
		answers.ProjectName = value
	case "language":
		answers.Language = plan.Language(value)
	}
}

// saveToggle stores a confirm answer in the answer set.
func saveToggle(id string, value bool, answers *plan.AnswerSet) {
	switch id {
	case "cors":
		answers.EnableCORS = value
	case "error_handler":
		answers.ErrorHandler = value
	case "env_file":
		answers.EnvFile = value
	case "morgan":
		answers.MorganLogging = value
	case "docker":
		answers.Docker = value
	}
}
