package input

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestProcessRawText(t *testing.T) {
	p := NewProcessor(zap.NewNop())

	text, kind, err := p.Process(Payload{RawText: "Software engineer\r\n3 years\r\n"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if kind != KindText {
		t.Fatalf("expected text kind, got %q", kind)
	}

	if text != "Software engineer\n3 years" {
		t.Fatalf("unexpected normalized text: %q", text)
	}
}

func TestProcessRawTextWinsOverPath(t *testing.T) {
	p := NewProcessor(zap.NewNop())

	text, kind, err := p.Process(Payload{RawText: "inline", SourcePath: "does-not-exist.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if kind != KindText || text != "inline" {
		t.Fatalf("expected inline text to win, got %q (%q)", text, kind)
	}
}

func TestProcessTextFiles(t *testing.T) {
	p := NewProcessor(zap.NewNop())
	dir := t.TempDir()

	cases := []struct {
		file string
		kind Kind
	}{
		{"resume.txt", KindText},
		{"resume.md", KindMarkdown},
	}

	for _, tc := range cases {
		t.Run(tc.file, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			if err := os.WriteFile(path, []byte("# Summary\r\n- built tools\r\n"), 0o644); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}

			text, kind, err := p.Process(Payload{SourcePath: path})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if kind != tc.kind {
				t.Fatalf("expected kind %q, got %q", tc.kind, kind)
			}

			if text != "# Summary\n- built tools" {
				t.Fatalf("unexpected text: %q", text)
			}
		})
	}
}

func TestProcessEmptyInput(t *testing.T) {
	p := NewProcessor(zap.NewNop())

	if _, _, err := p.Process(Payload{}); err == nil {
		t.Fatal("expected error for empty payload")
	}

	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("   \r\n \n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, _, err := p.Process(Payload{SourcePath: path}); err == nil {
		t.Fatal("expected error for whitespace-only file")
	}
}

func TestProcessMissingFile(t *testing.T) {
	p := NewProcessor(zap.NewNop())

	if _, _, err := p.Process(Payload{SourcePath: filepath.Join(t.TempDir(), "nope.txt")}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestProcessUnsupportedFormat(t *testing.T) {
	p := NewProcessor(zap.NewNop())

	path := filepath.Join(t.TempDir(), "resume.odt")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	_, _, err := p.Process(Payload{SourcePath: path})
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}

	if !strings.Contains(err.Error(), ".odt") {
		t.Fatalf("expected error to name the extension, got %q", err)
	}
}

func writeDocxFixture(t *testing.T, path, documentXML string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("creating document.xml: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("writing document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
}

func TestProcessDocx(t *testing.T) {
	p := NewProcessor(zap.NewNop())

	path := filepath.Join(t.TempDir(), "resume.docx")
	writeDocxFixture(t, path, `<w:document><w:body>`+
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Senior</w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>`+
		`<w:p/>`+
		`</w:body></w:document>`)

	text, kind, err := p.Process(Payload{SourcePath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if kind != KindDocx {
		t.Fatalf("expected docx kind, got %q", kind)
	}

	if text != "Jane Doe\nSenior Engineer" {
		t.Fatalf("unexpected extracted text: %q", text)
	}
}

func TestProcessDocxWithoutDocumentXML(t *testing.T) {
	p := NewProcessor(zap.NewNop())

	path := filepath.Join(t.TempDir(), "resume.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	zw := zip.NewWriter(f)
	if _, err := zw.Create("word/styles.xml"); err != nil {
		t.Fatalf("creating entry: %v", err)
	}
	zw.Close()
	f.Close()

	if _, _, err := p.Process(Payload{SourcePath: path}); err == nil {
		t.Fatal("expected error for docx without document.xml")
	}
}

func TestProcessCorruptDocuments(t *testing.T) {
	p := NewProcessor(zap.NewNop())
	dir := t.TempDir()

	for _, file := range []string{"resume.doc", "resume.pdf"} {
		t.Run(file, func(t *testing.T) {
			path := filepath.Join(dir, file)
			if err := os.WriteFile(path, []byte("this is not a real document"), 0o644); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}

			if _, _, err := p.Process(Payload{SourcePath: path}); err == nil {
				t.Fatal("expected error for corrupt document")
			}
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"spaces", "a \t b", "a b"},
		{"newlines", "a\n\n\nb", "a\nb"},
		{"line trim", "  a  \n b  ", "a\nb"},
		{"empty", " \n \t \n", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := collapseWhitespace(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
