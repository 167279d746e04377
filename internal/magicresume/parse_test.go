package magicresume

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

const sampleResume = `# Jane Doe
Senior Backend Engineer
jane.doe@example.com | +1 555 123 4567

# Summary
Engineer with ten years of experience building services.

# Work Experience
Example Corp | Senior Engineer | 2020 - Present
- Led the payments team
- Cut checkout latency by 40%

Initech | Engineer | 2016 - 2020
- Built internal tools

# Education
State University | Computer Science | BSc | 2012 - 2016
- GPA: 3.8
- Graduated with honors

# Projects
resume-agent | Author | 2024
- Wrote a resume generation pipeline

# Skills
- Go
- PostgreSQL

# Volunteering
Organizes a local engineering meetup.
`

func TestFromMarkdownFullResume(t *testing.T) {
	r := FromMarkdown(sampleResume, "", DefaultTemplateID, zap.NewNop()).Build()

	basic := r.Basic
	if basic.Name != "Jane Doe" {
		t.Fatalf("expected the heading name, got %q", basic.Name)
	}
	if basic.Title != "Senior Backend Engineer" {
		t.Fatalf("expected the title line, got %q", basic.Title)
	}
	if basic.Email != "jane.doe@example.com" {
		t.Fatalf("unexpected email: %q", basic.Email)
	}
	if basic.Phone != "+1 555 123 4567" {
		t.Fatalf("unexpected phone: %q", basic.Phone)
	}

	summary, ok := r.CustomData["summary"]
	if !ok || !strings.Contains(summary.Content, "ten years of experience") {
		t.Fatalf("summary section not captured: %+v", r.CustomData)
	}

	if len(r.Experience) != 2 {
		t.Fatalf("expected 2 experience entries, got %d", len(r.Experience))
	}
	first := r.Experience[0]
	if first.Company != "Example Corp" || first.Position != "Senior Engineer" || first.Date != "2020 - Present" {
		t.Fatalf("unexpected first experience: %+v", first)
	}
	if !strings.Contains(first.Details, "<li><p>Led the payments team</p></li>") {
		t.Fatalf("experience details lost: %s", first.Details)
	}

	if len(r.Education) != 1 {
		t.Fatalf("expected 1 education entry, got %d", len(r.Education))
	}
	edu := r.Education[0]
	if edu.School != "State University" || edu.Major != "Computer Science" || edu.Degree != "BSc" {
		t.Fatalf("unexpected education: %+v", edu)
	}
	if edu.StartDate != "2012" || edu.EndDate != "2016" {
		t.Fatalf("unexpected education dates: %q / %q", edu.StartDate, edu.EndDate)
	}
	if edu.GPA != "3.8" {
		t.Fatalf("gpa not extracted: %q", edu.GPA)
	}
	if strings.Contains(edu.Description, "GPA") || !strings.Contains(edu.Description, "Graduated with honors") {
		t.Fatalf("unexpected education description: %s", edu.Description)
	}

	if len(r.Projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(r.Projects))
	}
	proj := r.Projects[0]
	if proj.Name != "resume-agent" || proj.Role != "Author" || proj.Date != "2024" {
		t.Fatalf("unexpected project: %+v", proj)
	}

	if !strings.Contains(r.SkillContent, "<li><p>Go</p></li>") || !strings.Contains(r.SkillContent, "PostgreSQL") {
		t.Fatalf("skills lost: %s", r.SkillContent)
	}

	custom, ok := r.CustomData["volunteering"]
	if !ok || custom.Title != "Volunteering" || !strings.Contains(custom.Content, "meetup") {
		t.Fatalf("custom section not preserved: %+v", r.CustomData)
	}
}

func TestFromMarkdownNameArgumentWins(t *testing.T) {
	r := FromMarkdown(sampleResume, "Custom Name", DefaultTemplateID, zap.NewNop()).Build()

	if r.Basic.Name != "Custom Name" {
		t.Fatalf("expected the explicit name, got %q", r.Basic.Name)
	}
}

func TestFromMarkdownPreambleProse(t *testing.T) {
	md := "# Jane Doe\nSeasoned engineer who has built payment systems at scale. Shipped three platforms.\n\n# Skills\n- Go"

	r := FromMarkdown(md, "", DefaultTemplateID, zap.NewNop()).Build()

	summary, ok := r.CustomData["summary"]
	if !ok || !strings.Contains(summary.Content, "payment systems") {
		t.Fatalf("preamble prose should land in the summary: %+v", r.CustomData)
	}
	if r.Basic.Title != "" {
		t.Fatalf("long prose must not become the title, got %q", r.Basic.Title)
	}
}

func TestFromMarkdownPlainText(t *testing.T) {
	r := FromMarkdown("Software engineer, 3 years, built internal tools", "Candidate", DefaultTemplateID, zap.NewNop()).Build()

	if r.Basic.Name != "Candidate" {
		t.Fatalf("unexpected name: %q", r.Basic.Name)
	}
	if r.Basic.Title != "Software engineer, 3 years, built internal tools" {
		t.Fatalf("short preamble line should become the title, got %q", r.Basic.Title)
	}
	if len(r.Experience) != 0 || len(r.Education) != 0 {
		t.Fatalf("plain text must not invent entries: %+v", r)
	}
}

func TestClassifySection(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Work Experience", "experience"},
		{"Employment History", "experience"},
		{"Project Experience", "projects"},
		{"Education", "education"},
		{"Academic Background", "education"},
		{"Technical Skills", "skills"},
		{"Technologies", "skills"},
		{"About Me", "summary"},
		{"Hobbies", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := classifySection(tt.title); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSplitDateRange(t *testing.T) {
	tests := []struct {
		input string
		start string
		end   string
	}{
		{"2015 - 2019", "2015", "2019"},
		{"2020 - Present", "2020", "Present"},
		{"2021", "2021", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		start, end := splitDateRange(tt.input)
		if start != tt.start || end != tt.end {
			t.Fatalf("splitDateRange(%q): expected %q/%q, got %q/%q", tt.input, tt.start, tt.end, start, end)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Volunteering", "volunteering"},
		{"Side Notes!", "side-notes"},
		{"Awards & Honors", "awards-honors"},
	}

	for _, tt := range tests {
		if got := slugify(tt.input); got != tt.want {
			t.Fatalf("slugify(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}
