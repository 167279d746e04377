package generator

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
)

// compilePDF shells out to pdflatex in the output directory. A missing
// binary downgrades to a warning so the run still delivers md and tex.
func (g *Generator) compilePDF(ctx context.Context, outputDir string) (string, error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		g.logger.Warn("pdflatex not found, skipping pdf generation",
			zap.String("hint", "install a TeX distribution such as TeX Live to enable pdf output"),
		)

		return "", nil
	}

	cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", texFile)
	cmd.Dir = outputDir
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	// nonstopmode exits nonzero on recoverable complaints; the produced
	// pdf decides whether compilation worked.
	if err := cmd.Run(); err != nil {
		g.logger.Debug("pdflatex exited with an error", zap.Error(err))
	}

	pdfPath := filepath.Join(outputDir, pdfFile)
	if _, err := os.Stat(pdfPath); err != nil {
		return "", errors.New("latex compilation failed: resume.pdf was not produced")
	}

	g.logger.Debug("pdf written", zap.String("path", pdfPath))

	return pdfPath, nil
}
