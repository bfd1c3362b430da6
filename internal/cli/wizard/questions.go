package wizard

import (
	"github.com/sprout-cli/sprout/internal/plan"
)

// DefaultQuestions returns the questionnaire in its fixed order:
// project name, language, then the five feature toggles.
func DefaultQuestions(defaultName string, defaultLang plan.Language) []Question {
	if defaultName == "" {
		defaultName = "my-app"
	}
	if defaultLang == "" {
		defaultLang = plan.LangJavaScript
	}

	return []Question{
		{
			ID:          "project_name",
			Type:        QuestionTypeInput,
			Title:       "Enter project name",
			Description: "Directory name of the generated project.",
			Default:     defaultName,
			Required:    true,
			Validate:    plan.ValidateProjectName,
		},
		{
			ID:          "language",
			Type:        QuestionTypeSelect,
			Title:       "Select language",
			Description: "TypeScript adds a compile step and type-stub dependencies.",
			Options: []Option{
				{Label: "JavaScript", Value: string(plan.LangJavaScript), Desc: "Plain Node.js"},
				{Label: "TypeScript", Value: string(plan.LangTypeScript), Desc: "Typed, compiled to dist/"},
			},
			Default:  string(defaultLang),
			Required: true,
		},
		{
			ID:          "cors",
			Type:        QuestionTypeConfirm,
			Title:       "Enable CORS?",
			Description: "Adds the cors middleware and registers it on the app.",
			DefaultBool: true,
		},
		{
			ID:          "error_handler",
			Type:        QuestionTypeConfirm,
			Title:       "Generate an error handler?",
			Description: "Adds an HttpError helper and an error-handling middleware.",
			DefaultBool: true,
		},
		{
			ID:          "env_file",
			Type:        QuestionTypeConfirm,
			Title:       "Add a .env file?",
			Description: "Wires dotenv and writes PORT and NODE_ENV defaults.",
			DefaultBool: true,
		},
		{
			ID:          "morgan",
			Type:        QuestionTypeConfirm,
			Title:       "Enable request logging (morgan)?",
			Description: "Logs incoming HTTP requests in dev format.",
			DefaultBool: false,
		},
		{
			ID:          "docker",
			Type:        QuestionTypeConfirm,
			Title:       "Generate a Dockerfile?",
			Description: "Container image building the project and exposing port 3000.",
			DefaultBool: false,
		},
	}
}
