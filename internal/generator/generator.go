// Package generator renders the final resume documents. Markdown and LaTeX
// are always written; PDF and Word output is produced on request.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Format is a requested output document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
)

const (
	defaultOutputDir     = "output"
	defaultCandidateName = "Candidate"

	markdownFile = "resume.md"
	texFile      = "resume.tex"
	pdfFile      = "resume.pdf"
	docxFile     = "resume.docx"
	jsonFile     = "resume.json"
)

// ParseFormats normalizes raw format names. "word" is an alias for docx and
// duplicates collapse; an unknown name is an error.
func ParseFormats(raw []string) ([]Format, error) {
	var formats []Format
	seen := make(map[Format]bool)

	for _, value := range raw {
		value = strings.ToLower(strings.TrimSpace(value))

		var format Format
		switch value {
		case "pdf":
			format = FormatPDF
		case "docx", "word":
			format = FormatDocx
		default:
			return nil, fmt.Errorf("unsupported output format: %s", value)
		}

		if seen[format] {
			continue
		}

		seen[format] = true
		formats = append(formats, format)
	}

	return formats, nil
}

// Request describes one generation run.
type Request struct {
	Markdown      string
	OutputDir     string
	Formats       []Format
	CandidateName string
	TemplateID    string
}

// Result lists the files written. Outputs skipped because a toolchain or
// renderer was unavailable stay empty.
type Result struct {
	MarkdownPath string
	TexPath      string
	PDFPath      string
	DocxPath     string
	JSONPath     string
}

type Generator struct {
	logger *zap.Logger
}

func New(log *zap.Logger) *Generator {
	return &Generator{logger: log}
}

// Generate writes resume.md and resume.tex into the output directory, then
// the requested extra formats. The LaTeX output is deterministic: the same
// Markdown always yields the same bytes.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Markdown) == "" {
		return nil, errors.New("markdown content is required")
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = defaultOutputDir
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %q: %w", outputDir, err)
	}

	name := strings.TrimSpace(req.CandidateName)
	if name == "" {
		name = defaultCandidateName
	}

	result := &Result{
		MarkdownPath: filepath.Join(outputDir, markdownFile),
		TexPath:      filepath.Join(outputDir, texFile),
	}

	if err := os.WriteFile(result.MarkdownPath, []byte(req.Markdown), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", markdownFile, err)
	}

	g.logger.Debug("markdown written", zap.String("path", result.MarkdownPath))

	tex := renderLaTeX(name, req.Markdown)
	if err := os.WriteFile(result.TexPath, []byte(tex), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", texFile, err)
	}

	g.logger.Debug("latex written", zap.String("path", result.TexPath))

	for _, format := range req.Formats {
		switch format {
		case FormatPDF:
			pdfPath, err := g.compilePDF(ctx, outputDir)
			if err != nil {
				return nil, err
			}

			result.PDFPath = pdfPath
		case FormatDocx:
			result.JSONPath, result.DocxPath = g.writeDocx(req.Markdown, name, req.TemplateID, outputDir)
		}
	}

	return result, nil
}
