package generator

import (
	"strings"

	_ "embed"
)

//go:embed resume.tex.tmpl
var texTemplate string

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

func escapeLaTeX(text string) string {
	return latexEscaper.Replace(text)
}

// renderLaTeX turns resume Markdown into a standalone LaTeX document. Lines
// are classified before their content is escaped, so a heading marker stays
// a heading and never leaks into the output as a literal \#.
func renderLaTeX(name, markdown string) string {
	var lines []string
	inList := false

	flush := func() {
		if inList {
			lines = append(lines, `\end{itemize}`)
			inList = false
		}
	}

	for _, raw := range strings.Split(markdown, "\n") {
		line := strings.TrimSpace(raw)

		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "#"):
			flush()

			title := strings.TrimSpace(strings.TrimLeft(line, "#"))
			lines = append(lines, `\section*{`+escapeLaTeX(title)+`}`)
		case strings.HasPrefix(line, "-"):
			if !inList {
				lines = append(lines, `\begin{itemize}`)
				inList = true
			}

			item := strings.TrimSpace(strings.TrimPrefix(line, "-"))
			lines = append(lines, `\item `+escapeLaTeX(item))
		default:
			flush()
			lines = append(lines, escapeLaTeX(line)+`\\`)
		}
	}
	flush()

	doc := strings.ReplaceAll(texTemplate, "{{CANDIDATE_NAME}}", escapeLaTeX(name))
	doc = strings.ReplaceAll(doc, "{{BODY}}", strings.Join(lines, "\n"))

	return doc
}
