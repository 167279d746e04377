package input

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Kind classifies the source a resume draft came from.
type Kind string

const (
	KindText     Kind = "text"
	KindMarkdown Kind = "markdown"
	KindPDF      Kind = "pdf"
	KindDocx     Kind = "docx"
)

// Payload is the declared pipeline input: raw text or a path to a source
// document. Raw text wins when both are set.
type Payload struct {
	SourcePath string
	RawText    string
}

// Processor converts text, PDF and Word input into normalized Markdown.
type Processor struct {
	logger *zap.Logger
}

func NewProcessor(logger *zap.Logger) *Processor {
	return &Processor{logger: logger}
}

// Process returns the normalized Markdown for the payload and the detected
// source kind. Unsupported, unreadable and empty sources are fatal for the
// run: there is nothing to degrade to.
func (p *Processor) Process(payload Payload) (string, Kind, error) {
	if strings.TrimSpace(payload.RawText) != "" {
		text, err := normalize(payload.RawText)
		if err != nil {
			return "", KindText, err
		}
		return text, KindText, nil
	}

	path := strings.TrimSpace(payload.SourcePath)
	if path == "" {
		return "", "", errors.New("either raw text or a source path must be provided")
	}

	if _, err := os.Stat(path); err != nil {
		return "", "", fmt.Errorf("input file not found: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	p.logger.Debug("processing input file", zap.String("path", path), zap.String("ext", ext))

	switch ext {
	case ".txt", ".md":
		kind := KindText
		if ext == ".md" {
			kind = KindMarkdown
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return "", kind, fmt.Errorf("reading input file: %w", err)
		}

		text, err := normalize(string(data))
		if err != nil {
			return "", kind, err
		}
		return text, kind, nil
	case ".pdf":
		raw, err := extractPDF(path)
		if err != nil {
			return "", KindPDF, fmt.Errorf("reading pdf %q: %w", path, err)
		}

		text, err := normalize(raw)
		if err != nil {
			return "", KindPDF, err
		}
		return text, KindPDF, nil
	case ".docx", ".doc":
		raw, err := extractDocx(path)
		if err != nil {
			return "", KindDocx, fmt.Errorf("reading word document %q: %w", path, err)
		}

		text, err := normalize(raw)
		if err != nil {
			return "", KindDocx, err
		}
		return text, KindDocx, nil
	default:
		return "", "", fmt.Errorf("unsupported input format: %s", ext)
	}
}

func normalize(text string) (string, error) {
	normalized := strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if normalized == "" {
		return "", errors.New("input text is empty after normalization")
	}
	return normalized, nil
}

var (
	spaceRuns   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRuns = regexp.MustCompile(`\n+`)
)

// collapseWhitespace squeezes the whitespace noise left behind by document
// text extraction: runs of spaces become one space, runs of newlines one
// newline, and every line is trimmed.
func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spaceRuns.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n")

	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}
