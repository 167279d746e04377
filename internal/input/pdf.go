package input

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
)

// extractPDF pulls the text layer out of a PDF file. A document with no text
// layer at all (a scanned image) is reported as an error rather than passed
// on as an empty resume.
func extractPDF(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", err
	}

	text := collapseWhitespace(buf.String())
	if text == "" {
		return "", errors.New("no extractable text, the document looks like a scanned image")
	}

	return text, nil
}
