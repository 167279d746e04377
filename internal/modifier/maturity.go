package modifier

import "strings"

// Maturity describes how close the extracted text already is to a finished
// resume. It picks the rewriting guidance.
type Maturity string

const (
	// MaturityPureText is prose with no Markdown structure at all.
	MaturityPureText Maturity = "pure_text"
	// MaturityMature already has headings covering the standard sections.
	MaturityMature Maturity = "mature_resume"
	// MaturityImmature has some structure but misses standard sections.
	MaturityImmature Maturity = "immature_resume"
)

var standardSections = []string{"education", "experience", "project", "skill", "summary"}

// Classify grades Markdown by its headings: none at all means pure text, two
// or more recognizable resume sections mean a mature document, anything in
// between is immature.
func Classify(markdown string) Maturity {
	headings := 0
	matched := 0
	seen := make(map[string]bool)

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#") {
			continue
		}

		headings++

		title := strings.ToLower(strings.TrimSpace(strings.TrimLeft(line, "#")))
		for _, section := range standardSections {
			if seen[section] || !strings.Contains(title, section) {
				continue
			}
			seen[section] = true
			matched++
		}
	}

	switch {
	case headings == 0:
		return MaturityPureText
	case matched >= 2:
		return MaturityMature
	default:
		return MaturityImmature
	}
}
