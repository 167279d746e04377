package magicresume

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Builder assembles a Resume step by step. Calls chain; descriptions are
// accepted as Markdown and stored as HTML.
type Builder struct {
	resume *Resume
	logger *zap.Logger
}

// NewBuilder starts a resume on the given template preset. Unknown ids log
// a warning and fall back to the default preset.
func NewBuilder(templateID string, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}

	tpl, ok := Template(templateID)
	if !ok {
		log.Warn("unknown resume template, using the default",
			zap.String("template", templateID),
			zap.String("default", DefaultTemplateID),
		)
		templateID = DefaultTemplateID
		tpl, _ = Template(templateID)
	}

	id := uuid.NewString()
	now := time.Now().Format(time.RFC3339)

	settings := defaultGlobalSettings
	settings.ThemeColor = tpl.ColorScheme.Primary

	return &Builder{
		logger: log,
		resume: &Resume{
			Title:          "resume_" + id[:8],
			ID:             id,
			CreatedAt:      now,
			UpdatedAt:      now,
			TemplateID:     templateID,
			Education:      []Education{},
			Experience:     []Experience{},
			Projects:       []Project{},
			MenuSections:   defaultMenuSections(),
			GlobalSettings: settings,
			CustomData:     map[string]CustomSection{},
		},
	}
}

func (b *Builder) SetBasicInfo(name, title, email, phone, location string) *Builder {
	b.resume.Basic = BasicInfo{
		Name:     name,
		Title:    title,
		Email:    email,
		Phone:    phone,
		Location: location,
		FieldOrder: []BasicField{
			{ID: "1", Key: "name", Label: "Name", Type: "text", Visible: true},
			{ID: "2", Key: "title", Label: "Title", Type: "text", Visible: title != ""},
			{ID: "5", Key: "email", Label: "Email", Type: "text", Visible: email != ""},
			{ID: "6", Key: "phone", Label: "Phone", Type: "text", Visible: phone != ""},
			{ID: "7", Key: "location", Label: "Location", Type: "text", Visible: location != ""},
		},
		Icons: map[string]string{
			"email":    "Mail",
			"phone":    "Phone",
			"location": "MapPin",
		},
		PhotoConfig: PhotoConfig{
			Width:        90,
			Height:       120,
			AspectRatio:  "1:1",
			BorderRadius: "none",
			Visible:      false,
		},
		CustomFields: []CustomField{},
	}

	return b
}

// AddEducation appends an entry. Description is Markdown.
func (b *Builder) AddEducation(edu Education) *Builder {
	edu.ID = uuid.NewString()
	edu.Visible = true
	if edu.Description != "" {
		edu.Description = MarkdownToHTML(edu.Description)
	}

	b.resume.Education = append(b.resume.Education, edu)

	return b
}

// AddExperience appends an entry. Details is Markdown.
func (b *Builder) AddExperience(exp Experience) *Builder {
	exp.ID = uuid.NewString()
	exp.Visible = true
	if exp.Details != "" {
		exp.Details = MarkdownToHTML(exp.Details)
	}

	b.resume.Experience = append(b.resume.Experience, exp)

	return b
}

// AddProject appends an entry. Description is Markdown.
func (b *Builder) AddProject(proj Project) *Builder {
	proj.ID = uuid.NewString()
	proj.Visible = true
	if proj.Description != "" {
		proj.Description = MarkdownToHTML(proj.Description)
	}

	b.resume.Projects = append(b.resume.Projects, proj)

	return b
}

func (b *Builder) SetSkills(markdown string) *Builder {
	b.resume.SkillContent = MarkdownToHTML(markdown)

	return b
}

// SetCustomSection stores an extra section under the given key.
func (b *Builder) SetCustomSection(key, title, markdown string) *Builder {
	b.resume.CustomData[key] = CustomSection{
		Title:   title,
		Content: MarkdownToHTML(markdown),
	}

	return b
}

func (b *Builder) SetGlobalSettings(settings GlobalSettings) *Builder {
	b.resume.GlobalSettings = settings

	return b
}

// Build returns the assembled document with a fresh update timestamp.
func (b *Builder) Build() *Resume {
	b.resume.UpdatedAt = time.Now().Format(time.RFC3339)

	return b.resume
}
