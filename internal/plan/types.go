// Package plan turns a collected answer set into a deterministic
// generation plan: an ordered list of filesystem operations plus the
// npm dependency sets the scaffolded project needs. Planning is pure;
// nothing in this package touches the filesystem.
package plan

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for answer validation.
var (
	// ErrEmptyProjectName indicates the project name is empty after trimming.
	ErrEmptyProjectName = errors.New("plan: project name must not be empty")

	// ErrUnsafeProjectName indicates the project name is not filesystem-safe.
	ErrUnsafeProjectName = errors.New("plan: project name contains unsafe characters")

	// ErrUnknownLanguage indicates the language is not a supported choice.
	ErrUnknownLanguage = errors.New("plan: unknown language")
)

// Language is the target language of the generated project.
type Language string

const (
	// LangJavaScript generates a plain JavaScript project.
	LangJavaScript Language = "javascript"
	// LangTypeScript generates a TypeScript project with a compile step.
	LangTypeScript Language = "typescript"
)

// Ext returns the source file extension for the language.
func (l Language) Ext() string {
	if l == LangTypeScript {
		return "ts"
	}
	return "js"
}

// AnswerSet is the structured result of the questionnaire. It is the
// sole input to planning and is never mutated after collection.
type AnswerSet struct {
	ProjectName   string   // Directory name of the generated project.
	Language      Language // javascript or typescript.
	EnableCORS    bool     // Add the cors middleware.
	ErrorHandler  bool     // Generate the error helper and error middleware.
	EnvFile       bool     // Generate .env and wire dotenv.
	MorganLogging bool     // Add the morgan request logger.
	Docker        bool     // Generate a Dockerfile.
}

// Validate checks that the answer set can be planned. The project name
// must be a single filesystem-safe path component.
func (a *AnswerSet) Validate() error {
	if err := ValidateProjectName(a.ProjectName); err != nil {
		return err
	}
	if a.Language != LangJavaScript && a.Language != LangTypeScript {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, a.Language)
	}
	return nil
}

// ValidateProjectName checks that name is a non-empty, filesystem-safe
// single path component. It is used both during planning and at prompt
// time, so invalid names are rejected before anything touches disk.
func ValidateProjectName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyProjectName
	}
	if trimmed == "." || trimmed == ".." || !isSafeName(trimmed) {
		return fmt.Errorf("%w: %q", ErrUnsafeProjectName, name)
	}
	return nil
}

// isSafeName reports whether name is a single path component made of
// portable filename characters.
func isSafeName(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}

// OpKind is the kind of a planned filesystem operation.
type OpKind int

const (
	// OpMkDir creates a directory (idempotent on application).
	OpMkDir OpKind = iota
	// OpWriteFile writes a file, overwriting any existing content.
	OpWriteFile
)

// String returns a human-readable name for the op kind.
func (k OpKind) String() string {
	switch k {
	case OpMkDir:
		return "mkdir"
	case OpWriteFile:
		return "write"
	default:
		return "unknown"
	}
}

// FileOp is one planned filesystem action. Path is slash-separated and
// relative to the generation target directory; the first component is
// always the project root.
type FileOp struct {
	Kind    OpKind
	Path    string
	Content string // Only set for OpWriteFile.
}

// GenerationPlan is the finished output of planning: an ordered op
// sequence plus the dependency sets to install. It is built once per
// run and never mutated afterwards. Dependency slices preserve the
// deterministic enumeration order the planner produced.
type GenerationPlan struct {
	Root        string   // Project root directory name.
	Ops         []FileOp // Ordered: a file's parent directory always precedes it.
	RuntimeDeps []string
	DevDeps     []string

	// Manifest additions applied after `npm init`.
	Main    string            // Entry point recorded in package.json.
	Scripts map[string]string // Script entries; "watch" only exists with a compile step.
}

// WriteOps returns the WriteFile ops of the plan in sequence order.
func (p *GenerationPlan) WriteOps() []FileOp {
	var ops []FileOp
	for _, op := range p.Ops {
		if op.Kind == OpWriteFile {
			ops = append(ops, op)
		}
	}
	return ops
}
