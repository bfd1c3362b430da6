package plan

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// envFileContent is written verbatim when the env file toggle is set.
const envFileContent = "PORT=3000\nNODE_ENV=development\n"

const gitignoreContent = `node_modules/
dist/
.env
`

const tsconfigContent = `{
  "compilerOptions": {
    "target": "ES2020",
    "module": "commonjs",
    "rootDir": "./src",
    "outDir": "./dist",
    "strict": true,
    "esModuleInterop": true,
    "skipLibCheck": true
  },
  "include": ["src/**/*"],
  "exclude": ["node_modules", "dist"]
}
`

// errorHelperContent is the error helper placed under src/utils.
func errorHelperContent(lang Language) string {
	if lang == LangTypeScript {
		return `export class HttpError extends Error {
  statusCode: number;

  constructor(statusCode: number, message: string) {
    super(message);
    this.statusCode = statusCode;
  }
}
`
	}
	return `class HttpError extends Error {
  constructor(statusCode, message) {
    super(message);
    this.statusCode = statusCode;
  }
}

module.exports = { HttpError };
`
}

// errorMiddlewareContent is the error-handling middleware. It references
// the error helper and the NODE_ENV development mode.
func errorMiddlewareContent(lang Language) string {
	if lang == LangTypeScript {
		return `import { NextFunction, Request, Response } from "express";
import { HttpError } from "../utils/httpError";

export const errorHandler = (err: Error, req: Request, res: Response, next: NextFunction) => {
  const status = err instanceof HttpError ? err.statusCode : 500;
  res.status(status).json({
    message: err.message,
    stack: process.env.NODE_ENV === "development" ? err.stack : undefined,
  });
};
`
	}
	return `const { HttpError } = require("../utils/httpError");

const errorHandler = (err, req, res, next) => {
  const status = err instanceof HttpError ? err.statusCode : 500;
  res.status(status).json({
    message: err.message,
    stack: process.env.NODE_ENV === "development" ? err.stack : undefined,
  });
};

module.exports = { errorHandler };
`
}

// dockerfileContent builds the Dockerfile. The production NODE_ENV line
// is emitted only when the project also carries a .env file, so the
// container overrides the development default.
func dockerfileContent(envFile bool) string {
	var b strings.Builder
	b.WriteString("FROM node:20-alpine\n\n")
	b.WriteString("WORKDIR /app\n\n")
	b.WriteString("COPY package*.json ./\n\n")
	b.WriteString("RUN npm install\n\n")
	b.WriteString("COPY . .\n\n")
	if envFile {
		b.WriteString("ENV NODE_ENV=production\n\n")
	}
	b.WriteString("EXPOSE 3000\n\n")
	b.WriteString(`CMD ["npm", "run", "dev"]` + "\n")
	return b.String()
}

// readmeTitle is the Unicode-aware title caser for project names.
var readmeTitle = cases.Title(language.English)

// readmeContent builds a short README for the generated project.
func readmeContent(answers *AnswerSet) string {
	var b strings.Builder
	title := readmeTitle.String(strings.ReplaceAll(answers.ProjectName, "-", " "))
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString("Express backend scaffolded with sprout.\n\n")
	b.WriteString("## Getting started\n\n")
	b.WriteString("```sh\nnpm run dev\n```\n")
	if answers.Language == LangTypeScript {
		b.WriteString("\nRecompile on change:\n\n```sh\nnpm run watch\n```\n")
	}
	if answers.ErrorHandler {
		b.WriteString("\n## Error handling\n\n")
		b.WriteString("`src/utils/httpError` and `src/middlewares/errorHandler` are generated;\n")
		b.WriteString("register the middleware after your routes with `app.use(errorHandler)`.\n")
	}
	if answers.Docker {
		fmt.Fprintf(&b, "\n## Docker\n\n```sh\ndocker build -t %s .\ndocker run -p 3000:3000 %s\n```\n",
			answers.ProjectName, answers.ProjectName)
	}
	return b.String()
}
