package plan

import "path"

// srcSubdirs are the fixed folders created under src/, in plan order.
var srcSubdirs = []string{
	"controllers",
	"middlewares",
	"models",
	"routes",
	"tests",
	"lib",
	"utils",
}

// feature describes how one questionnaire toggle maps onto the plan:
// which runtime dependency it adds, which type-stub dev dependency it
// adds for TypeScript projects, and which lines it contributes to the
// application entry point. Folding this table over the answer set
// avoids branching on every language x toggle pair.
type feature struct {
	enabled    func(*AnswerSet) bool
	runtimeDep string
	typeStub   string // Added to dev deps iff TypeScript; empty when the package bundles its own types.
	module     string // Identifier and module name imported in the entry file.
	setup      string // Line emitted after app construction (invocation or app.use registration).
}

// features lists the toggle rules in the fixed entry-file order:
// env loader first, then CORS, then the request logger.
var features = []feature{
	{
		enabled:    func(a *AnswerSet) bool { return a.EnvFile },
		runtimeDep: "dotenv",
		module:     "dotenv",
		setup:      "dotenv.config();",
	},
	{
		enabled:    func(a *AnswerSet) bool { return a.EnableCORS },
		runtimeDep: "cors",
		typeStub:   "@types/cors",
		module:     "cors",
		setup:      "app.use(cors());",
	},
	{
		enabled:    func(a *AnswerSet) bool { return a.MorganLogging },
		runtimeDep: "morgan",
		typeStub:   "@types/morgan",
		module:     "morgan",
		setup:      `app.use(morgan("dev"));`,
	},
}

// tsToolchain are the dev dependencies every TypeScript project gets.
var tsToolchain = []string{"typescript", "ts-node-dev", "@types/express", "@types/node"}

// Plan maps an answer set to a generation plan. It is pure and
// deterministic: the same answers always yield a byte-identical plan.
// The only error condition is a malformed answer set.
func Plan(answers *AnswerSet) (*GenerationPlan, error) {
	if err := answers.Validate(); err != nil {
		return nil, err
	}

	root := answers.ProjectName
	ext := answers.Language.Ext()

	p := &GenerationPlan{
		Root:        root,
		RuntimeDeps: []string{"express"},
		DevDeps:     []string{"nodemon"},
	}

	p.Main = "src/index." + ext
	if answers.Language == LangTypeScript {
		p.DevDeps = append(p.DevDeps, tsToolchain...)
		p.Scripts = map[string]string{
			"dev":   "ts-node-dev --respawn src/index.ts",
			"watch": "tsc -w",
		}
	} else {
		p.Scripts = map[string]string{
			"dev": "nodemon src/index.js",
		}
	}

	for _, f := range features {
		if !f.enabled(answers) {
			continue
		}
		p.RuntimeDeps = append(p.RuntimeDeps, f.runtimeDep)
		if answers.Language == LangTypeScript && f.typeStub != "" {
			p.DevDeps = append(p.DevDeps, f.typeStub)
		}
	}

	// Directories: root, then src, then the fixed subfolders.
	p.Ops = append(p.Ops, FileOp{Kind: OpMkDir, Path: root})
	p.Ops = append(p.Ops, FileOp{Kind: OpMkDir, Path: path.Join(root, "src")})
	for _, sub := range srcSubdirs {
		p.Ops = append(p.Ops, FileOp{Kind: OpMkDir, Path: path.Join(root, "src", sub)})
	}

	if answers.ErrorHandler {
		p.Ops = append(p.Ops, FileOp{
			Kind:    OpWriteFile,
			Path:    path.Join(root, "src", "utils", "httpError."+ext),
			Content: errorHelperContent(answers.Language),
		})
	}

	p.Ops = append(p.Ops, FileOp{
		Kind:    OpWriteFile,
		Path:    path.Join(root, "src", "index."+ext),
		Content: entryPointContent(answers),
	})

	if answers.ErrorHandler {
		p.Ops = append(p.Ops, FileOp{
			Kind:    OpWriteFile,
			Path:    path.Join(root, "src", "middlewares", "errorHandler."+ext),
			Content: errorMiddlewareContent(answers.Language),
		})
	}

	if answers.EnvFile {
		p.Ops = append(p.Ops, FileOp{
			Kind:    OpWriteFile,
			Path:    path.Join(root, ".env"),
			Content: envFileContent,
		})
	}
	if answers.Language == LangTypeScript {
		p.Ops = append(p.Ops, FileOp{
			Kind:    OpWriteFile,
			Path:    path.Join(root, "tsconfig.json"),
			Content: tsconfigContent,
		})
	}
	if answers.Docker {
		p.Ops = append(p.Ops, FileOp{
			Kind:    OpWriteFile,
			Path:    path.Join(root, "Dockerfile"),
			Content: dockerfileContent(answers.EnvFile),
		})
	}

	p.Ops = append(p.Ops, FileOp{
		Kind:    OpWriteFile,
		Path:    path.Join(root, ".gitignore"),
		Content: gitignoreContent,
	})
	p.Ops = append(p.Ops, FileOp{
		Kind:    OpWriteFile,
		Path:    path.Join(root, "README.md"),
		Content: readmeContent(answers),
	})

	return p, nil
}
