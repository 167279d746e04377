package magicresume

import (
	"regexp"
	"strings"
)

var (
	boldStars         = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnderscores   = regexp.MustCompile(`__(.+?)__`)
	italicStars       = regexp.MustCompile(`\*(.+?)\*`)
	italicUnderscores = regexp.MustCompile(`_(.+?)_`)
	inlineCode        = regexp.MustCompile("`(.+?)`")

	listItems = regexp.MustCompile(`(?s)<li[^>]*>(.*?)</li>`)
	htmlTags  = regexp.MustCompile(`<[^>]+>`)
)

func convertInline(text string) string {
	text = boldStars.ReplaceAllString(text, "<strong>$1</strong>")
	text = boldUnderscores.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicStars.ReplaceAllString(text, "<em>$1</em>")
	text = italicUnderscores.ReplaceAllString(text, "<em>$1</em>")
	text = inlineCode.ReplaceAllString(text, "<code>$1</code>")

	return text
}

// MarkdownToHTML converts the bullet-and-paragraph Markdown dialect used in
// resume bodies into the HTML fragments the document stores. Bullets become
// list items, everything else becomes a paragraph.
func MarkdownToHTML(markdown string) string {
	var parts []string
	inList := false

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if inList {
				parts = append(parts, "</ul>")
				inList = false
			}
			continue
		}

		line = convertInline(line)

		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			if !inList {
				parts = append(parts, `<ul class="custom-list">`)
				inList = true
			}
			parts = append(parts, "<li><p>"+strings.TrimSpace(line[2:])+"</p></li>")
			continue
		}

		if inList {
			parts = append(parts, "</ul>")
			inList = false
		}
		parts = append(parts, "<p>"+line+"</p>")
	}

	if inList {
		parts = append(parts, "</ul>")
	}

	return strings.Join(parts, "\n")
}

// htmlToLines flattens an HTML fragment into display lines, preferring list
// items when the fragment has them.
func htmlToLines(html string) []string {
	if html == "" {
		return nil
	}

	var lines []string
	for _, match := range listItems.FindAllStringSubmatch(html, -1) {
		if text := stripHTML(match[1]); text != "" {
			lines = append(lines, text)
		}
	}
	if len(lines) > 0 {
		return lines
	}

	for _, line := range strings.Split(htmlTags.ReplaceAllString(html, "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

func stripHTML(html string) string {
	return strings.TrimSpace(htmlTags.ReplaceAllString(html, ""))
}
