package generator

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spigell/resume-agent/internal/magicresume"
)

// writeDocx builds the structured resume from the Markdown and renders the
// json snapshot and the Word document. Failures degrade to warnings: the
// run has already produced md and tex.
func (g *Generator) writeDocx(markdown, name, templateID, outputDir string) (jsonPath, docxPath string) {
	resume := magicresume.FromMarkdown(markdown, name, templateID, g.logger).Build()

	jsonPath = filepath.Join(outputDir, jsonFile)
	if err := resume.WriteJSON(jsonPath); err != nil {
		g.logger.Warn("skipping resume.json", zap.Error(err))

		jsonPath = ""
	}

	docxPath = filepath.Join(outputDir, docxFile)
	if err := magicresume.WriteDocx(resume, docxPath); err != nil {
		g.logger.Warn("skipping word generation", zap.Error(err))

		return jsonPath, ""
	}

	g.logger.Debug("word document written", zap.String("path", docxPath))

	return jsonPath, docxPath
}
