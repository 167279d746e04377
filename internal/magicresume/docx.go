package magicresume

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
)

const (
	pxToPtRatio = 0.58

	grayText   = "646464"
	grayDetail = "505050"
)

type docxWriter struct {
	doc      *docx.Docx
	settings GlobalSettings
	color    string
}

// WriteDocx renders the document to a Word file. Sections follow the menu
// order; a summary custom section is placed right below the header, any
// other custom sections go last.
func WriteDocx(resume *Resume, path string) error {
	w := &docxWriter{
		doc:      docx.New().WithDefaultTheme(),
		settings: resume.GlobalSettings,
		color:    themeColor(resume.GlobalSettings.ThemeColor),
	}

	w.build(resume)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := w.doc.WriteTo(f); err != nil {
		return fmt.Errorf("write word document: %w", err)
	}

	return nil
}

func (w *docxWriter) build(resume *Resume) {
	sections := make([]MenuSection, len(resume.MenuSections))
	copy(sections, resume.MenuSections)
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Order < sections[j].Order })

	rendered := make(map[string]bool)

	for _, sec := range sections {
		if !sec.Enabled {
			continue
		}

		switch sec.ID {
		case "basic":
			w.addBasic(resume.Basic)
			if summary, ok := resume.CustomData["summary"]; ok {
				w.addCustom(summary)
				rendered["summary"] = true
			}
		case "education":
			w.addEducation(sec.Title, resume.Education)
		case "experience":
			w.addExperience(sec.Title, resume.Experience)
		case "projects":
			w.addProjects(sec.Title, resume.Projects)
		case "skills":
			w.addSkills(sec.Title, resume.SkillContent)
		}
	}

	keys := make([]string, 0, len(resume.CustomData))
	for key := range resume.CustomData {
		if !rendered[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		w.addCustom(resume.CustomData[key])
	}
}

func (w *docxWriter) addBasic(basic BasicInfo) {
	if basic.Name != "" {
		p := w.doc.AddParagraph().Justification("center")
		p.AddText(basic.Name).Size(w.size(float64(w.settings.HeaderSize) * 1.3)).Color(w.color).Bold()
	}

	if basic.Title != "" {
		p := w.doc.AddParagraph().Justification("center")
		p.AddText(basic.Title).Size(w.size(float64(w.settings.BaseFontSize))).Color(grayText)
	}

	var contact []string
	for _, value := range []string{basic.Email, basic.Phone, basic.Location} {
		if value != "" {
			contact = append(contact, value)
		}
	}
	if len(contact) > 0 {
		p := w.doc.AddParagraph().Justification("center")
		p.AddText(strings.Join(contact, "  |  ")).Size(w.size(float64(w.settings.BaseFontSize) * 0.85))
	}
}

func (w *docxWriter) addEducation(title string, entries []Education) {
	if len(entries) == 0 {
		return
	}

	w.addSectionTitle(title)

	for _, edu := range entries {
		if !edu.Visible {
			continue
		}

		var parts []string
		for _, part := range []string{edu.School, edu.Degree, edu.Major} {
			if part != "" {
				parts = append(parts, part)
			}
		}

		var date string
		switch {
		case edu.StartDate != "" && edu.EndDate != "":
			date = edu.StartDate + " - " + edu.EndDate
		case edu.StartDate != "":
			date = edu.StartDate
		case edu.EndDate != "":
			date = edu.EndDate
		}

		w.addItemHeader(strings.Join(parts, "  |  "), date)

		if edu.GPA != "" {
			p := w.doc.AddParagraph()
			p.AddText("GPA: "+edu.GPA).Size(w.size(float64(w.settings.BaseFontSize) * 0.85)).Color(grayDetail)
		}

		for _, line := range htmlToLines(edu.Description) {
			w.addListItem(line)
		}
	}
}

func (w *docxWriter) addExperience(title string, entries []Experience) {
	if len(entries) == 0 {
		return
	}

	w.addSectionTitle(title)

	for _, exp := range entries {
		if !exp.Visible {
			continue
		}

		header := exp.Company
		switch {
		case exp.Company != "" && exp.Position != "":
			header = exp.Company + "  |  " + exp.Position
		case exp.Position != "":
			header = exp.Position
		}

		w.addItemHeader(header, exp.Date)

		for _, line := range htmlToLines(exp.Details) {
			w.addListItem(line)
		}
	}
}

func (w *docxWriter) addProjects(title string, entries []Project) {
	if len(entries) == 0 {
		return
	}

	w.addSectionTitle(title)

	for _, proj := range entries {
		if !proj.Visible {
			continue
		}

		header := proj.Name
		switch {
		case proj.Name != "" && proj.Role != "":
			header = proj.Name + "  |  " + proj.Role
		case proj.Role != "":
			header = proj.Role
		}

		w.addItemHeader(header, proj.Date)

		for _, line := range htmlToLines(proj.Description) {
			w.addListItem(line)
		}
	}
}

func (w *docxWriter) addSkills(title, content string) {
	if content == "" {
		return
	}

	w.addSectionTitle(title)

	lines := htmlToLines(content)
	if len(lines) == 0 {
		if text := stripHTML(content); text != "" {
			p := w.doc.AddParagraph()
			p.AddText(text).Size(w.size(float64(w.settings.BaseFontSize)))
		}
		return
	}

	for _, line := range lines {
		w.addListItem(line)
	}
}

func (w *docxWriter) addCustom(sec CustomSection) {
	lines := htmlToLines(sec.Content)
	if len(lines) == 0 {
		return
	}

	if sec.Title != "" {
		w.addSectionTitle(sec.Title)
	}

	bullets := strings.Contains(sec.Content, "<li")
	for _, line := range lines {
		if bullets {
			w.addListItem(line)
			continue
		}
		p := w.doc.AddParagraph()
		p.AddText(line).Size(w.size(float64(w.settings.BaseFontSize)))
	}
}

func (w *docxWriter) addSectionTitle(title string) {
	p := w.doc.AddParagraph()
	p.AddText(title).Size(w.size(float64(w.settings.HeaderSize))).Color(w.color).Bold()
}

// addItemHeader puts the bold entry name and the dimmed date on one line.
func (w *docxWriter) addItemHeader(left, date string) {
	if left == "" && date == "" {
		return
	}

	p := w.doc.AddParagraph()
	if left != "" {
		p.AddText(left).Size(w.size(float64(w.settings.SubheaderSize))).Bold()
	}
	if date != "" {
		p.AddText("    " + date).Size(w.size(float64(w.settings.SubheaderSize) * 0.85)).Color(grayText)
	}
}

func (w *docxWriter) addListItem(text string) {
	p := w.doc.AddParagraph()
	p.AddText("•  " + text).Size(w.size(float64(w.settings.BaseFontSize)))
}

// size converts the settings' pixel values to the half-point units Word
// runs use.
func (w *docxWriter) size(px float64) string {
	return strconv.Itoa(int(math.Round(px * pxToPtRatio * 2)))
}

// themeColor normalizes a #rrggbb setting to the bare hex Word expects.
func themeColor(hex string) string {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return "000000"
	}
	for _, r := range hex {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return "000000"
		}
	}

	return hex
}
