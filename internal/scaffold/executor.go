// Package scaffold applies a generation plan to disk. Directory
// creation is idempotent and file writes overwrite unconditionally;
// a failed operation aborts the remaining plan with no rollback.
package scaffold

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sprout-cli/sprout/internal/plan"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FSError wraps a failed filesystem operation with the op kind and the
// path it was applied to.
type FSError struct {
	Op   plan.OpKind
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FSError) Error() string {
	return fmt.Sprintf("scaffold: %s %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *FSError) Unwrap() error {
	return e.Err
}

// Result summarizes the outcome of applying a plan.
type Result struct {
	CreatedDirs  []string // Directories that were created (or already present).
	CreatedFiles []string // Files that were written.
}

// Executor applies generation plans under a target directory.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates an Executor. A nil logger discards output.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Executor{logger: logger}
}

// Apply executes every op of the plan in sequence order, rooted at
// targetDir. It checks context cancellation before each op and stops at
// the first failure, returning an *FSError; already-applied ops are not
// rolled back; partial application is the caller's to detect.
func (e *Executor) Apply(ctx context.Context, targetDir string, p *plan.GenerationPlan) (*Result, error) {
	targetDir = filepath.Clean(targetDir)
	result := &Result{}

	e.logger.Info("applying generation plan",
		"target", targetDir,
		"root", p.Root,
		"ops", len(p.Ops),
	)

	for _, op := range p.Ops {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := validatePath(targetDir, op.Path); err != nil {
			return result, &FSError{Op: op.Kind, Path: op.Path, Err: err}
		}
		dest := filepath.Join(targetDir, filepath.FromSlash(op.Path))

		switch op.Kind {
		case plan.OpMkDir:
			if err := os.MkdirAll(dest, dirPerm); err != nil {
				return result, &FSError{Op: op.Kind, Path: op.Path, Err: err}
			}
			result.CreatedDirs = append(result.CreatedDirs, op.Path)

		case plan.OpWriteFile:
			if err := os.WriteFile(dest, []byte(op.Content), filePerm); err != nil {
				return result, &FSError{Op: op.Kind, Path: op.Path, Err: err}
			}
			result.CreatedFiles = append(result.CreatedFiles, op.Path)

		default:
			return result, &FSError{Op: op.Kind, Path: op.Path, Err: fmt.Errorf("unknown op kind %d", op.Kind)}
		}
	}

	e.logger.Info("plan applied",
		"dirs", len(result.CreatedDirs),
		"files", len(result.CreatedFiles),
	)

	return result, nil
}

// validatePath ensures a planned path cannot escape targetDir.
func validatePath(targetDir, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("absolute path %q", relPath)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("parent reference in %q", relPath)
	}

	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolve target dir: %w", err)
	}
	absPath := filepath.Join(absTarget, cleaned)
	if absPath != absTarget && !strings.HasPrefix(absPath, absTarget+string(filepath.Separator)) {
		return fmt.Errorf("path %q escapes target directory", relPath)
	}

	return nil
}
