package magicresume

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d ()-]{6,}\d`)
	gpaPattern   = regexp.MustCompile(`(?i)^gpa[:\s]+(.+)$`)
	slugPattern  = regexp.MustCompile(`[^a-z0-9]+`)
)

// sectionKinds maps heading keywords onto structured sections. Checked in
// order; experience goes last so "Project Experience" lands in projects.
var sectionKinds = []struct {
	id       string
	keywords []string
}{
	{"education", []string{"education", "academic"}},
	{"projects", []string{"project"}},
	{"skills", []string{"skill", "technolog", "stack"}},
	{"summary", []string{"summary", "about", "profile", "objective"}},
	{"experience", []string{"experience", "employment", "work history"}},
}

type section struct {
	title string
	level int
	body  []string
}

type sectionItem struct {
	header  []string
	date    string
	gpa     string
	details []string
}

// FromMarkdown maps a heading-structured resume onto the document model.
// Recognized sections fill the dedicated slots, anything else is preserved
// as a custom section. The candidate name argument wins over a name heading.
func FromMarkdown(markdown, candidateName, templateID string, log *zap.Logger) *Builder {
	b := NewBuilder(templateID, log)

	preamble, sections := splitSections(markdown)

	// A leading level-1 heading that is no known section is the name line;
	// its body feeds the contact scan.
	if len(preamble) == 0 && len(sections) > 0 {
		first := sections[0]
		if first.level == 1 && classifySection(first.title) == "" {
			if candidateName == "" {
				candidateName = first.title
			}
			preamble = first.body
			sections = sections[1:]
		}
	}

	email, phone, title, summary := scanPreamble(preamble, candidateName)
	b.SetBasicInfo(candidateName, title, email, phone, "")
	if len(summary) > 0 {
		b.SetCustomSection("summary", "Summary", strings.Join(summary, "\n"))
	}

	for _, sec := range sections {
		switch classifySection(sec.title) {
		case "education":
			for _, it := range parseItems(sec.body) {
				edu := Education{
					GPA:         it.gpa,
					Description: strings.Join(it.details, "\n"),
				}
				if len(it.header) > 0 {
					edu.School = it.header[0]
				}
				if len(it.header) > 1 {
					edu.Major = it.header[1]
				}
				if len(it.header) > 2 {
					edu.Degree = it.header[2]
				}
				edu.StartDate, edu.EndDate = splitDateRange(it.date)
				b.AddEducation(edu)
			}
		case "experience":
			for _, it := range parseItems(sec.body) {
				exp := Experience{
					Date:    it.date,
					Details: strings.Join(it.details, "\n"),
				}
				if len(it.header) > 0 {
					exp.Company = it.header[0]
				}
				if len(it.header) > 1 {
					exp.Position = it.header[1]
				}
				b.AddExperience(exp)
			}
		case "projects":
			for _, it := range parseItems(sec.body) {
				proj := Project{
					Date:        it.date,
					Description: strings.Join(it.details, "\n"),
				}
				if len(it.header) > 0 {
					proj.Name = it.header[0]
				}
				if len(it.header) > 1 {
					proj.Role = it.header[1]
				}
				b.AddProject(proj)
			}
		case "skills":
			b.SetSkills(strings.Join(sec.body, "\n"))
		case "summary":
			b.SetCustomSection("summary", sec.title, strings.Join(sec.body, "\n"))
		default:
			key := slugify(sec.title)
			if key == "" {
				key = "section"
			}
			b.SetCustomSection(key, sec.title, strings.Join(sec.body, "\n"))
		}
	}

	return b
}

func splitSections(markdown string) (preamble []string, sections []section) {
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			sections = append(sections, section{
				title: strings.TrimSpace(strings.TrimLeft(line, "#")),
				level: len(line) - len(strings.TrimLeft(line, "#")),
			})
			continue
		}

		if len(sections) == 0 {
			preamble = append(preamble, line)
			continue
		}

		last := &sections[len(sections)-1]
		last.body = append(last.body, line)
	}

	return preamble, sections
}

func classifySection(title string) string {
	title = strings.ToLower(title)
	for _, kind := range sectionKinds {
		for _, keyword := range kind.keywords {
			if strings.Contains(title, keyword) {
				return kind.id
			}
		}
	}

	return ""
}

// parseItems splits a section body into items: every non-bullet line starts
// a new item and is read as pipe-separated header parts with an optional
// trailing date, following bullets become the item's details.
func parseItems(body []string) []sectionItem {
	var items []sectionItem

	for _, line := range body {
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			if len(items) == 0 {
				items = append(items, sectionItem{})
			}
			cur := &items[len(items)-1]

			detail := strings.TrimSpace(line[2:])
			if m := gpaPattern.FindStringSubmatch(detail); m != nil {
				cur.gpa = strings.TrimSpace(m[1])
				continue
			}
			cur.details = append(cur.details, line)
			continue
		}

		it := sectionItem{header: splitHeader(line)}
		if n := len(it.header); n > 1 && looksLikeDate(it.header[n-1]) {
			it.date = it.header[n-1]
			it.header = it.header[:n-1]
		}
		items = append(items, it)
	}

	return items
}

func splitHeader(line string) []string {
	var parts []string
	for _, part := range strings.Split(line, "|") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}

	return parts
}

func looksLikeDate(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

func splitDateRange(s string) (string, string) {
	for _, sep := range []string{" - ", "–", "—", " to "} {
		if idx := strings.Index(s, sep); idx != -1 {
			return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+len(sep):])
		}
	}

	return strings.TrimSpace(s), ""
}

func scanPreamble(preamble []string, candidateName string) (email, phone, title string, summary []string) {
	joined := strings.Join(preamble, "\n")
	email = emailPattern.FindString(joined)
	phone = findPhone(joined)

	for _, line := range preamble {
		if candidateName != "" && strings.EqualFold(line, candidateName) {
			continue
		}
		if email != "" && strings.Contains(line, email) {
			continue
		}
		if phone != "" && strings.Contains(line, phone) {
			continue
		}
		if title == "" && utf8.RuneCountInString(line) <= 60 && !strings.Contains(line, ".") {
			title = line
			continue
		}
		summary = append(summary, line)
	}

	return email, phone, title, summary
}

// findPhone rejects number runs that are really date ranges: a phone has at
// least nine digits or an explicit country prefix.
func findPhone(text string) string {
	for _, cand := range phonePattern.FindAllString(text, -1) {
		digits := 0
		for _, r := range cand {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 9 || strings.HasPrefix(cand, "+") {
			return strings.TrimSpace(cand)
		}
	}

	return ""
}

func slugify(title string) string {
	return strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(title), "-"), "-")
}
