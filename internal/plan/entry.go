package plan

import (
	"fmt"
	"strings"
)

// entryPointContent assembles src/index in a fixed sequence: imports,
// app construction, feature setup lines, port binding, root route,
// listen call, and the module-system-specific export.
func entryPointContent(answers *AnswerSet) string {
	var b strings.Builder

	writeImport := func(module string) {
		if answers.Language == LangTypeScript {
			fmt.Fprintf(&b, "import %s from %q;\n", module, module)
		} else {
			fmt.Fprintf(&b, "const %s = require(%q);\n", module, module)
		}
	}

	writeImport("express")
	for _, f := range features {
		if f.enabled(answers) {
			writeImport(f.module)
		}
	}

	b.WriteString("\nconst app = express();\n")

	var setup []string
	for _, f := range features {
		if f.enabled(answers) {
			setup = append(setup, f.setup)
		}
	}
	if len(setup) > 0 {
		b.WriteString("\n")
		for _, line := range setup {
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\nconst PORT = process.env.PORT || 3000;\n")
	if answers.Language == LangTypeScript {
		b.WriteString(`
app.get("/", (req: express.Request, res: express.Response) => {
  res.send("Hello World!");
});
`)
	} else {
		b.WriteString(`
app.get("/", (req, res) => {
  res.send("Hello World!");
});
`)
	}
	b.WriteString(`
app.listen(PORT, () => {
  console.log(` + "`Server listening on port ${PORT}`" + `);
});
`)

	if answers.Language == LangTypeScript {
		b.WriteString("\nexport default app;\n")
	} else {
		b.WriteString("\nmodule.exports = app;\n")
	}

	return b.String()
}
