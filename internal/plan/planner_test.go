package plan

import (
	"errors"
	"path"
	"reflect"
	"slices"
	"strings"
	"testing"
)

func baseAnswers() *AnswerSet {
	return &AnswerSet{
		ProjectName: "demo",
		Language:    LangJavaScript,
	}
}

func TestPlanDeterministic(t *testing.T) {
	answers := &AnswerSet{
		ProjectName:   "demo",
		Language:      LangTypeScript,
		EnableCORS:    true,
		ErrorHandler:  true,
		EnvFile:       true,
		MorganLogging: true,
		Docker:        true,
	}

	first, err := Plan(answers)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	second, err := Plan(answers)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("two plans from the same answers differ")
	}
}

func TestPlanValidation(t *testing.T) {
	tests := []struct {
		name    string
		answers AnswerSet
		wantErr error
	}{
		{"empty name", AnswerSet{ProjectName: "", Language: LangJavaScript}, ErrEmptyProjectName},
		{"whitespace name", AnswerSet{ProjectName: "   ", Language: LangJavaScript}, ErrEmptyProjectName},
		{"path separator", AnswerSet{ProjectName: "a/b", Language: LangJavaScript}, ErrUnsafeProjectName},
		{"parent reference", AnswerSet{ProjectName: "..", Language: LangJavaScript}, ErrUnsafeProjectName},
		{"space in name", AnswerSet{ProjectName: "my app", Language: LangJavaScript}, ErrUnsafeProjectName},
		{"unknown language", AnswerSet{ProjectName: "demo", Language: "rust"}, ErrUnknownLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Plan(&tt.answers)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlanPathsUnderRoot(t *testing.T) {
	combos := []AnswerSet{
		{ProjectName: "demo", Language: LangJavaScript},
		{ProjectName: "demo", Language: LangTypeScript, EnableCORS: true, ErrorHandler: true, EnvFile: true, MorganLogging: true, Docker: true},
		{ProjectName: "api-server", Language: LangJavaScript, EnvFile: true},
	}

	for _, answers := range combos {
		p, err := Plan(&answers)
		if err != nil {
			t.Fatalf("Plan() error: %v", err)
		}
		for _, op := range p.Ops {
			if op.Path != p.Root && !strings.HasPrefix(op.Path, p.Root+"/") {
				t.Errorf("op path %q escapes project root %q", op.Path, p.Root)
			}
		}
	}
}

func TestPlanParentDirPrecedesFile(t *testing.T) {
	answers := &AnswerSet{
		ProjectName:   "demo",
		Language:      LangTypeScript,
		EnableCORS:    true,
		ErrorHandler:  true,
		EnvFile:       true,
		MorganLogging: true,
		Docker:        true,
	}
	p, err := Plan(answers)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}

	seen := map[string]bool{}
	for _, op := range p.Ops {
		if op.Kind == OpMkDir {
			seen[op.Path] = true
			continue
		}
		parent := path.Dir(op.Path)
		if parent != "." && !seen[parent] {
			t.Errorf("write %q has no earlier mkdir for parent %q", op.Path, parent)
		}
	}
}

func TestPlanConditionalFiles(t *testing.T) {
	countFile := func(p *GenerationPlan, name string) int {
		n := 0
		for _, op := range p.WriteOps() {
			if path.Base(op.Path) == name {
				n++
			}
		}
		return n
	}

	t.Run("docker off", func(t *testing.T) {
		p, _ := Plan(baseAnswers())
		if got := countFile(p, "Dockerfile"); got != 0 {
			t.Errorf("Dockerfile ops = %d, want 0", got)
		}
	})

	t.Run("docker on", func(t *testing.T) {
		a := baseAnswers()
		a.Docker = true
		p, _ := Plan(a)
		if got := countFile(p, "Dockerfile"); got != 1 {
			t.Errorf("Dockerfile ops = %d, want 1", got)
		}
	})

	t.Run("javascript has no tsconfig", func(t *testing.T) {
		p, _ := Plan(baseAnswers())
		if got := countFile(p, "tsconfig.json"); got != 0 {
			t.Errorf("tsconfig.json ops = %d, want 0", got)
		}
	})

	t.Run("typescript has strict tsconfig", func(t *testing.T) {
		a := baseAnswers()
		a.Language = LangTypeScript
		p, _ := Plan(a)
		if got := countFile(p, "tsconfig.json"); got != 1 {
			t.Fatalf("tsconfig.json ops = %d, want 1", got)
		}
		for _, op := range p.WriteOps() {
			if path.Base(op.Path) == "tsconfig.json" && !strings.Contains(op.Content, `"strict": true`) {
				t.Error("tsconfig.json does not enable strict mode")
			}
		}
	})

	t.Run("error handler off", func(t *testing.T) {
		p, _ := Plan(baseAnswers())
		for _, op := range p.WriteOps() {
			if strings.Contains(op.Path, "errorHandler") || strings.Contains(op.Path, "httpError") {
				t.Errorf("unexpected error-handler file %q", op.Path)
			}
		}
	})
}

func TestPlanJavaScriptScenario(t *testing.T) {
	answers := &AnswerSet{
		ProjectName:  "demo",
		Language:     LangJavaScript,
		EnableCORS:   true,
		ErrorHandler: true,
		EnvFile:      true,
	}
	p, err := Plan(answers)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}

	wantRuntime := []string{"express", "dotenv", "cors"}
	if !sameSet(p.RuntimeDeps, wantRuntime) {
		t.Errorf("runtime deps = %v, want set %v", p.RuntimeDeps, wantRuntime)
	}
	if !sameSet(p.DevDeps, []string{"nodemon"}) {
		t.Errorf("dev deps = %v, want {nodemon}", p.DevDeps)
	}

	entry := findContent(t, p, "index.js")
	if !strings.Contains(entry, `const cors = require("cors");`) {
		t.Error("entry file is missing the cors require line")
	}
	if strings.Contains(entry, "morgan") {
		t.Error("entry file references morgan with morganLogging=false")
	}
	if !strings.Contains(entry, "module.exports = app;") {
		t.Error("JavaScript entry file should use module.exports")
	}

	if findContent(t, p, ".env") != "PORT=3000\nNODE_ENV=development\n" {
		t.Error(".env content is not the verbatim two-line form")
	}

	for _, op := range p.WriteOps() {
		base := path.Base(op.Path)
		if base == "Dockerfile" || base == "tsconfig.json" {
			t.Errorf("unexpected %s op in JavaScript/no-docker plan", base)
		}
	}
}

func TestPlanTypeScriptScenario(t *testing.T) {
	answers := &AnswerSet{
		ProjectName:  "demo",
		Language:     LangTypeScript,
		EnableCORS:   true,
		ErrorHandler: true,
		EnvFile:      true,
		Docker:       true,
	}
	p, err := Plan(answers)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}

	for _, dep := range []string{"nodemon", "typescript", "ts-node-dev", "@types/express", "@types/node", "@types/cors"} {
		if !slices.Contains(p.DevDeps, dep) {
			t.Errorf("dev deps missing %q: %v", dep, p.DevDeps)
		}
	}

	var haveDocker, haveTsconfig bool
	for _, op := range p.WriteOps() {
		switch path.Base(op.Path) {
		case "Dockerfile":
			haveDocker = true
		case "tsconfig.json":
			haveTsconfig = true
		}
	}
	if !haveDocker {
		t.Error("docker=true plan has no Dockerfile op")
	}
	if !haveTsconfig {
		t.Error("TypeScript plan has no tsconfig.json op")
	}

	entry := findContent(t, p, "index.ts")
	if !strings.Contains(entry, `import express from "express";`) {
		t.Error("TypeScript entry file should use import syntax")
	}
	if !strings.Contains(entry, "export default app;") {
		t.Error("TypeScript entry file should use an export statement")
	}
	if strings.Contains(entry, "module.exports") {
		t.Error("TypeScript entry file should not use module.exports")
	}
}

func TestErrorMiddlewareReferencesHelper(t *testing.T) {
	a := baseAnswers()
	a.ErrorHandler = true
	p, _ := Plan(a)

	mw := findContent(t, p, "errorHandler.js")
	if !strings.Contains(mw, "httpError") {
		t.Error("error middleware does not reference the error helper")
	}
	if !strings.Contains(mw, "NODE_ENV") {
		t.Error("error middleware does not reference the environment mode")
	}
}

// findContent returns the content of the write op whose base name matches.
func findContent(t *testing.T, p *GenerationPlan, base string) string {
	t.Helper()
	for _, op := range p.WriteOps() {
		if path.Base(op.Path) == base {
			return op.Content
		}
	}
	t.Fatalf("no write op for %q in plan", base)
	return ""
}

// sameSet reports whether two slices contain the same elements.
func sameSet(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for _, w := range want {
		if !slices.Contains(got, w) {
			return false
		}
	}
	return true
}
