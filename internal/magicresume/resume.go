// Package magicresume builds resumes in the Magic Resume interchange
// format: a JSON document the Magic Resume editor can open, plus a styled
// Word rendering of the same data.
package magicresume

import (
	"encoding/json"
	"fmt"
	"os"
)

// Resume is a Magic Resume document. JSON keys follow the editor's wire
// format, camelCase included.
type Resume struct {
	Title          string                   `json:"title"`
	ID             string                   `json:"id"`
	CreatedAt      string                   `json:"createdAt"`
	UpdatedAt      string                   `json:"updatedAt"`
	TemplateID     string                   `json:"templateId"`
	Basic          BasicInfo                `json:"basic"`
	Education      []Education              `json:"education"`
	Experience     []Experience             `json:"experience"`
	Projects       []Project                `json:"projects"`
	SkillContent   string                   `json:"skillContent"`
	MenuSections   []MenuSection            `json:"menuSections"`
	GlobalSettings GlobalSettings           `json:"globalSettings"`
	CustomData     map[string]CustomSection `json:"customData"`
}

type BasicInfo struct {
	Name         string            `json:"name"`
	Title        string            `json:"title"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	Location     string            `json:"location"`
	FieldOrder   []BasicField      `json:"fieldOrder"`
	Icons        map[string]string `json:"icons"`
	PhotoConfig  PhotoConfig       `json:"photoConfig"`
	CustomFields []CustomField     `json:"customFields"`
}

type BasicField struct {
	ID      string `json:"id"`
	Key     string `json:"key"`
	Label   string `json:"label"`
	Type    string `json:"type"`
	Visible bool   `json:"visible"`
}

type PhotoConfig struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AspectRatio  string `json:"aspectRatio"`
	BorderRadius string `json:"borderRadius"`
	Visible      bool   `json:"visible"`
}

type CustomField struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Education, Experience and Project descriptions hold HTML fragments, not
// Markdown. The Builder converts on the way in.
type Education struct {
	ID          string `json:"id"`
	School      string `json:"school"`
	Major       string `json:"major"`
	Degree      string `json:"degree"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	GPA         string `json:"gpa"`
	Description string `json:"description"`
	Visible     bool   `json:"visible"`
}

type Experience struct {
	ID       string `json:"id"`
	Company  string `json:"company"`
	Position string `json:"position"`
	Date     string `json:"date"`
	Details  string `json:"details"`
	Visible  bool   `json:"visible"`
}

type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Visible     bool   `json:"visible"`
}

type MenuSection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Icon    string `json:"icon"`
	Enabled bool   `json:"enabled"`
	Order   int    `json:"order"`
}

type GlobalSettings struct {
	BaseFontSize     int     `json:"baseFontSize"`
	PagePadding      int     `json:"pagePadding"`
	ParagraphSpacing int     `json:"paragraphSpacing"`
	LineHeight       float64 `json:"lineHeight"`
	SectionSpacing   int     `json:"sectionSpacing"`
	HeaderSize       int     `json:"headerSize"`
	SubheaderSize    int     `json:"subheaderSize"`
	UseIconMode      bool    `json:"useIconMode"`
	ThemeColor       string  `json:"themeColor"`
	CenterSubtitle   bool    `json:"centerSubtitle"`
}

// CustomSection carries content that has no dedicated section, keyed in
// Resume.CustomData by a heading slug.
type CustomSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

var defaultGlobalSettings = GlobalSettings{
	BaseFontSize:     16,
	PagePadding:      32,
	ParagraphSpacing: 12,
	LineHeight:       1.3,
	SectionSpacing:   10,
	HeaderSize:       18,
	SubheaderSize:    16,
	UseIconMode:      true,
	ThemeColor:       "#000000",
	CenterSubtitle:   true,
}

func defaultMenuSections() []MenuSection {
	return []MenuSection{
		{ID: "basic", Title: "Basic Info", Icon: "👤", Enabled: true, Order: 0},
		{ID: "education", Title: "Education", Icon: "🎓", Enabled: true, Order: 1},
		{ID: "experience", Title: "Work Experience", Icon: "💼", Enabled: true, Order: 2},
		{ID: "projects", Title: "Projects", Icon: "🚀", Enabled: true, Order: 3},
		{ID: "skills", Title: "Skills", Icon: "⚡", Enabled: true, Order: 4},
	}
}

// WriteJSON writes the document in the editor's format: two-space indent,
// HTML fragments unescaped.
func (r *Resume) WriteJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode resume json: %w", err)
	}

	return nil
}
