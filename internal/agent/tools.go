package agent

import (
	"context"
	"errors"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-agent/internal/generator"
	"github.com/spigell/resume-agent/internal/input"
	"github.com/spigell/resume-agent/internal/modifier"
	"github.com/spigell/resume-agent/internal/planner"
)

// InputTool turns the configured source into normalized Markdown.
type InputTool struct {
	processor *input.Processor
	logger    *zap.Logger
}

func NewInputTool(processor *input.Processor, log *zap.Logger) *InputTool {
	return &InputTool{processor: processor, logger: log}
}

func (t *InputTool) Name() string { return planner.TaskInputProcessor }

func (t *InputTool) Run(_ context.Context, state *State) (planner.Progress, error) {
	markdown, kind, err := t.processor.Process(state.Payload)
	if err != nil {
		return planner.Progress{}, err
	}

	state.Markdown = markdown
	state.Kind = kind
	state.Maturity = modifier.Classify(markdown)

	t.logger.Info("input processed",
		zap.String("kind", string(kind)),
		zap.String("maturity", string(state.Maturity)),
		zap.Int("markdown_length", utf8.RuneCountInString(markdown)),
	)

	return planner.Progress{Markdown: true}, nil
}

// ModifierTool polishes the extracted Markdown.
type ModifierTool struct {
	modifier *modifier.Modifier
}

func NewModifierTool(m *modifier.Modifier) *ModifierTool {
	return &ModifierTool{modifier: m}
}

func (t *ModifierTool) Name() string { return planner.TaskTextModifier }

func (t *ModifierTool) Run(ctx context.Context, state *State) (planner.Progress, error) {
	if state.Markdown == "" {
		return planner.Progress{}, errors.New("no markdown to polish")
	}

	polished, err := t.modifier.Modify(ctx, modifier.Request{
		Markdown:   state.Markdown,
		Maturity:   state.Maturity,
		TargetRole: state.TargetRole,
	})
	if err != nil {
		return planner.Progress{}, err
	}

	state.Polished = polished

	return planner.Progress{Polished: true}, nil
}

// GeneratorTool renders the final documents from the best available Markdown.
type GeneratorTool struct {
	generator *generator.Generator
}

func NewGeneratorTool(g *generator.Generator) *GeneratorTool {
	return &GeneratorTool{generator: g}
}

func (t *GeneratorTool) Name() string { return planner.TaskResumeGenerator }

func (t *GeneratorTool) Run(ctx context.Context, state *State) (planner.Progress, error) {
	markdown := state.bestMarkdown()
	if markdown == "" {
		return planner.Progress{}, errors.New("no markdown to render")
	}

	if state.Confirm != nil {
		if err := state.Confirm(markdown); err != nil {
			return planner.Progress{}, err
		}
	}

	result, err := t.generator.Generate(ctx, generator.Request{
		Markdown:      markdown,
		OutputDir:     state.OutputDir,
		Formats:       state.Formats,
		CandidateName: state.CandidateName,
		TemplateID:    state.TemplateID,
	})
	if err != nil {
		return planner.Progress{}, err
	}

	state.addArtifact("resume.md", result.MarkdownPath)
	state.addArtifact("resume.tex", result.TexPath)
	state.addArtifact("resume.pdf", result.PDFPath)
	state.addArtifact("resume.docx", result.DocxPath)
	state.addArtifact("resume.json", result.JSONPath)

	return planner.Progress{Output: true}, nil
}
