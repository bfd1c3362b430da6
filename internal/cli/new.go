package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sprout-cli/sprout/internal/cli/wizard"
	"github.com/sprout-cli/sprout/internal/config"
	"github.com/sprout-cli/sprout/internal/npm"
	"github.com/sprout-cli/sprout/internal/plan"
	"github.com/sprout-cli/sprout/internal/scaffold"
	"github.com/sprout-cli/sprout/internal/ui"
	"github.com/sprout-cli/sprout/pkg/version"
)

var newCmd = &cobra.Command{
	Use:   "new [project-name]",
	Short: "Scaffold a new Express backend project",
	Long: `Scaffold a new Express backend project in the current directory.

Without --non-interactive, sprout asks a short questionnaire. With it,
all answers come from flags and defaults.

Examples:
  sprout new                 Ask everything, including the project name
  sprout new my-api          Preselect the project name
  sprout new my-api --non-interactive --language typescript --docker`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateNewFlags,
	RunE:    runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().String("name", "", "Project name (default: positional argument)")
	newCmd.Flags().String("language", "", "Project language: javascript or typescript")
	newCmd.Flags().Bool("cors", false, "Enable CORS middleware")
	newCmd.Flags().Bool("error-handler", false, "Generate error helper and middleware")
	newCmd.Flags().Bool("env", false, "Generate a .env file and wire dotenv")
	newCmd.Flags().Bool("morgan", false, "Enable morgan request logging")
	newCmd.Flags().Bool("docker", false, "Generate a Dockerfile")
	newCmd.Flags().Bool("non-interactive", false, "Skip the questionnaire; use flags and defaults")
	newCmd.Flags().Bool("skip-install", false, "Generate files only, skip npm init and install")
	newCmd.Flags().String("registry", "", "npm registry base URL (default: from config)")
	newCmd.Flags().Bool("verbose", false, "Log internal steps to stderr")
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// validateNewFlags validates flag values before execution.
func validateNewFlags(cmd *cobra.Command, _ []string) error {
	lang := getStringFlag(cmd, "language")
	if lang != "" && lang != string(plan.LangJavaScript) && lang != string(plan.LangTypeScript) {
		return fmt.Errorf("invalid --language value %q: must be one of: javascript, typescript", lang)
	}
	return nil
}

// runNew executes the scaffolding workflow: collect answers, build the
// plan, apply it to disk, then initialize the manifest and install
// dependencies. Install failures are reported as warnings; the
// generated files remain usable without them.
func runNew(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if getBoolFlag(cmd, "verbose") {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		_, _ = fmt.Fprintln(out, cliWarn.Render(fmt.Sprintf("Warning: config load failed, using defaults: %v", err)))
		cfg = config.NewDefaultConfig()
	}

	answers, err := collectAnswers(cmd, args, cfg)
	if err != nil {
		if errors.Is(err, wizard.ErrCancelled) {
			_, _ = fmt.Fprintln(out, "Scaffolding cancelled.")
			return nil
		}
		return fmt.Errorf("collect answers: %w", err)
	}

	p, err := plan.Plan(answers)
	if err != nil {
		return fmt.Errorf("plan generation: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	executor := scaffold.NewExecutor(logger)
	result, err := executor.Apply(ctx, cwd, p)
	if err != nil {
		return fmt.Errorf("apply generation plan: %w", err)
	}

	// Files are on disk before any install starts; install problems are
	// warnings from here on.
	var warnings []string
	if getBoolFlag(cmd, "skip-install") {
		warnings = append(warnings, "Install skipped (--skip-install); run npm install manually.")
	} else {
		warnings = installDependencies(ctx, cmd, cfg, p, filepath.Join(cwd, p.Root), logger)
	}

	details := []string{
		renderKeyValueLines([]kvPair{
			{"Directories", fmt.Sprintf("%d created", len(result.CreatedDirs))},
			{"Files", fmt.Sprintf("%d created", len(result.CreatedFiles))},
			{"Language", string(answers.Language)},
		}),
	}
	for _, w := range warnings {
		details = append(details, cliWarn.Render("Warning: "+w))
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderSuccessCard(fmt.Sprintf("Project %q scaffolded", p.Root), details...))
	_, _ = fmt.Fprint(out, renderMarkdown(nextStepsMarkdown(p, answers)))

	return nil
}

// collectAnswers produces the answer set, either interactively through
// the wizard or from flags. No filesystem side effects happen before
// the answer set has been validated by the planner.
func collectAnswers(cmd *cobra.Command, args []string, cfg *config.Config) (*plan.AnswerSet, error) {
	name := getStringFlag(cmd, "name")
	if name == "" && len(args) > 0 {
		name = args[0]
	}

	interactive := !getBoolFlag(cmd, "non-interactive") && isatty.IsTerminal(os.Stdin.Fd())
	if !interactive {
		lang := getStringFlag(cmd, "language")
		if lang == "" {
			lang = cfg.DefaultLanguage
		}
		return &plan.AnswerSet{
			ProjectName:   name,
			Language:      plan.Language(lang),
			EnableCORS:    getBoolFlag(cmd, "cors"),
			ErrorHandler:  getBoolFlag(cmd, "error-handler"),
			EnvFile:       getBoolFlag(cmd, "env"),
			MorganLogging: getBoolFlag(cmd, "morgan"),
			Docker:        getBoolFlag(cmd, "docker"),
		}, nil
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), banner(version.GetVersion()))
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	return wizard.Run(wizard.DefaultQuestions(name, plan.Language(cfg.DefaultLanguage)))
}

// installDependencies initializes the manifest and installs the runtime
// and dev dependency sets, strictly after all file writes. Every
// failure is returned as a user-facing warning rather than an error.
func installDependencies(ctx context.Context, cmd *cobra.Command, cfg *config.Config, p *plan.GenerationPlan, projectDir string, logger *slog.Logger) []string {
	registry := getStringFlag(cmd, "registry")
	if registry == "" {
		registry = cfg.Registry
	}

	resolver := npm.NewRegistryResolver(registry, nil)
	installer := npm.NewInstaller(resolver, npm.NewExecRunner(), cfg.NpmBin, logger)

	hm := ui.NewHeadlessManager()
	spin := ui.NewSpinner(hm, cmd.OutOrStdout(), "Initializing package manifest")
	defer spin.Stop()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.InstallTimeoutSeconds)*time.Second)
	defer cancel()

	if err := installer.InitManifest(ctx, projectDir, p.Main, p.Scripts); err != nil {
		spin.Stop()
		return []string{fmt.Sprintf("manifest initialization failed: %v; run npm init and install manually", err)}
	}

	var warnings []string
	spin.SetTitle(fmt.Sprintf("Installing dependencies (%s)", strings.Join(p.RuntimeDeps, ", ")))
	if err := installer.Install(ctx, p.RuntimeDeps, projectDir, false); err != nil {
		warnings = append(warnings, fmt.Sprintf("dependency install failed: %v; run npm install manually", err))
	}

	spin.SetTitle(fmt.Sprintf("Installing dev dependencies (%s)", strings.Join(p.DevDeps, ", ")))
	if err := installer.Install(ctx, p.DevDeps, projectDir, true); err != nil {
		warnings = append(warnings, fmt.Sprintf("dev dependency install failed: %v; run npm install --save-dev manually", err))
	}

	return warnings
}

// nextStepsMarkdown builds the post-generation guidance panel.
func nextStepsMarkdown(p *plan.GenerationPlan, answers *plan.AnswerSet) string {
	var b strings.Builder
	b.WriteString("## Next steps\n\n")
	fmt.Fprintf(&b, "```sh\ncd %s\nnpm run dev\n```\n", p.Root)
	if answers.Language == plan.LangTypeScript {
		b.WriteString("\nRecompile on change with `npm run watch`.\n")
	}
	if answers.EnvFile {
		b.WriteString("\nEdit `.env` to change the port or environment.\n")
	}
	if answers.Docker {
		fmt.Fprintf(&b, "\nBuild the container with `docker build -t %s .`.\n", p.Root)
	}
	return b.String()
}
