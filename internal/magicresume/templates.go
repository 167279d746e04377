package magicresume

import (
	"fmt"
	"sort"

	_ "embed"

	"gopkg.in/yaml.v3"
)

// DefaultTemplateID is used when no template or an unknown one is requested.
const DefaultTemplateID = "classic"

//go:embed templates.yaml
var templatesYAML []byte

// TemplateConfig is a visual preset. The JSON spelling matches the editor's
// template objects.
type TemplateConfig struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Layout      string      `json:"layout" yaml:"layout"`
	ColorScheme ColorScheme `json:"colorScheme" yaml:"colorScheme"`
	Spacing     Spacing     `json:"spacing" yaml:"spacing"`
	Basic       BasicLayout `json:"basic" yaml:"basic"`
}

type ColorScheme struct {
	Primary    string `json:"primary" yaml:"primary"`
	Secondary  string `json:"secondary" yaml:"secondary"`
	Background string `json:"background" yaml:"background"`
	Text       string `json:"text" yaml:"text"`
}

type Spacing struct {
	SectionGap     int `json:"sectionGap" yaml:"sectionGap"`
	ItemGap        int `json:"itemGap" yaml:"itemGap"`
	ContentPadding int `json:"contentPadding" yaml:"contentPadding"`
}

type BasicLayout struct {
	Layout string `json:"layout" yaml:"layout"`
}

// TemplateInfo is the listing entry for the templates command.
type TemplateInfo struct {
	ID          string
	Name        string
	Description string
}

var templates = mustLoadTemplates()

func mustLoadTemplates() map[string]TemplateConfig {
	var doc struct {
		Templates map[string]TemplateConfig `yaml:"templates"`
	}

	if err := yaml.Unmarshal(templatesYAML, &doc); err != nil {
		panic(fmt.Sprintf("invalid embedded template presets: %v", err))
	}
	if _, ok := doc.Templates[DefaultTemplateID]; !ok {
		panic("embedded template presets do not include the default template")
	}

	return doc.Templates
}

// Template returns the preset registered under the given id.
func Template(id string) (TemplateConfig, bool) {
	tpl, ok := templates[id]

	return tpl, ok
}

// Templates lists every preset, sorted by id.
func Templates() []TemplateInfo {
	infos := make([]TemplateInfo, 0, len(templates))
	for id, tpl := range templates {
		infos = append(infos, TemplateInfo{ID: id, Name: tpl.Name, Description: tpl.Description})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })

	return infos
}
