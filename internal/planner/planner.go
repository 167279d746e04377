// Package planner decides which pipeline task runs next. When a model is
// configured and extracted content exists it asks the model for a plan and
// sanitizes the answer; otherwise it falls back to the fixed task order.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"github.com/spigell/resume-agent/internal/ai"
	"github.com/spigell/resume-agent/internal/logger"
	"go.uber.org/zap"
)

const (
	TaskInputProcessor  = "run_input_processor"
	TaskTextModifier    = "run_text_modifier"
	TaskResumeGenerator = "run_resume_generator"
)

// Status summarizes the pipeline progress for logging and reporting.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

const (
	maxPromptRunes   = 2000
	maxLogLength     = 200
	defaultRationale = "scheduled by the model"
	pendingRationale = "required step not yet completed"
)

//go:embed prompt.md
var systemPrompt string

const promptFormat = `## Current State
- has_markdown: %t
- has_polished_markdown: %t
- has_output: %t

## Resume Content
` + "```markdown\n%s\n```" + `

Based on the current state, determine the next tasks to execute.`

// taskOrder is the only order tasks may execute in.
var taskOrder = []string{TaskInputProcessor, TaskTextModifier, TaskResumeGenerator}

// State tracks which pipeline results exist already.
type State struct {
	HasMarkdown bool
	HasPolished bool
	HasOutput   bool
}

// Progress reports results produced by a finished task. Flags only ever
// switch a state field on, never off.
type Progress struct {
	Markdown bool
	Polished bool
	Output   bool
}

// Task is a single scheduled pipeline step.
type Task struct {
	Name      string
	Rationale string
}

// Plan is the ordered set of tasks still to run.
type Plan struct {
	Tasks    []Task
	Complete bool
}

type planPayload struct {
	TodoList   []string `mapstructure:"todo_list"`
	IsComplete bool     `mapstructure:"is_complete"`
	Reason     string   `mapstructure:"reason"`
}

type Planner struct {
	assistant ai.Assistant
	logger    *zap.Logger
	state     State
}

func New(assistant ai.Assistant, log *zap.Logger) *Planner {
	if assistant != nil {
		log = logger.WithCommonFields(log, assistant.Provider(), assistant.Model())
	}

	return &Planner{assistant: assistant, logger: log}
}

// Decide produces the next plan. The model is consulted only once extracted
// content exists; any model failure degrades to the fixed plan. There are no
// retries.
func (p *Planner) Decide(ctx context.Context, markdown string) Plan {
	if p.assistant == nil || !p.state.HasMarkdown {
		return p.fallbackPlan()
	}

	user := p.buildPrompt(markdown)

	p.logger.Debug("plan request",
		zap.Int("prompt_length", utf8.RuneCountInString(user)),
		zap.String("prompt_preview", logger.TruncateForLog(user, maxLogLength)),
	)

	raw, err := p.assistant.Chat(ctx, systemPrompt, user)
	if err != nil {
		p.logger.Warn("model planning failed, using the fixed plan", zap.Error(err))
		return p.fallbackPlan()
	}

	p.logger.Debug("plan response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, maxLogLength)),
	)

	payload, err := parsePlan(raw)
	if err != nil {
		p.logger.Warn("could not parse the model plan, using the fixed plan", zap.Error(err))
		return p.fallbackPlan()
	}

	return p.sanitize(payload)
}

// UpdateProgress folds a task result into the state. Progress is monotonic.
func (p *Planner) UpdateProgress(progress Progress) {
	if progress.Markdown {
		p.state.HasMarkdown = true
	}
	if progress.Polished {
		p.state.HasPolished = true
	}
	if progress.Output {
		p.state.HasOutput = true
	}
}

func (p *Planner) State() State {
	return p.state
}

func (p *Planner) Status() Status {
	switch {
	case p.state.HasOutput:
		return StatusDone
	case p.state.HasMarkdown || p.state.HasPolished:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}

func (p *Planner) fallbackPlan() Plan {
	var tasks []Task

	if !p.state.HasMarkdown {
		tasks = append(tasks, Task{Name: TaskInputProcessor, Rationale: "no markdown extracted yet"})
	}
	if !p.state.HasPolished {
		tasks = append(tasks, Task{Name: TaskTextModifier, Rationale: "markdown is not polished yet"})
	}
	if !p.state.HasOutput {
		tasks = append(tasks, Task{Name: TaskResumeGenerator, Rationale: "no documents generated yet"})
	}

	return Plan{Tasks: tasks, Complete: len(tasks) == 0}
}

// sanitize turns a model payload into a safe plan: unknown tasks are
// dropped, completed tasks are never rescheduled, skipped mandatory tasks
// are put back, and the fixed order always wins.
func (p *Planner) sanitize(payload *planPayload) Plan {
	completed := map[string]bool{
		TaskInputProcessor:  p.state.HasMarkdown,
		TaskTextModifier:    p.state.HasPolished,
		TaskResumeGenerator: p.state.HasOutput,
	}

	rationale := strings.TrimSpace(payload.Reason)
	if rationale == "" {
		rationale = defaultRationale
	}

	wanted := make(map[string]bool)
	for _, name := range payload.TodoList {
		name = strings.TrimSpace(name)

		done, known := completed[name]
		if !known {
			p.logger.Warn("dropping unknown task from the model plan", zap.String("task", name))
			continue
		}
		if done {
			p.logger.Debug("dropping already completed task from the model plan", zap.String("task", name))
			continue
		}

		wanted[name] = true
	}

	var tasks []Task
	for _, name := range taskOrder {
		switch {
		case wanted[name]:
			tasks = append(tasks, Task{Name: name, Rationale: rationale})
		case !completed[name]:
			tasks = append(tasks, Task{Name: name, Rationale: pendingRationale})
		}
	}

	if payload.IsComplete && len(tasks) > 0 {
		p.logger.Warn("model reported completion with steps remaining", zap.Int("remaining", len(tasks)))
	}

	return Plan{Tasks: tasks, Complete: len(tasks) == 0}
}

func (p *Planner) buildPrompt(markdown string) string {
	return fmt.Sprintf(promptFormat,
		p.state.HasMarkdown,
		p.state.HasPolished,
		p.state.HasOutput,
		truncateRunes(markdown, maxPromptRunes),
	)
}

func parsePlan(raw string) (*planPayload, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse plan response: %w", err)
	}

	payload := &planPayload{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           payload,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("build plan decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode plan response: %w", err)
	}

	return payload, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")

	if start := strings.Index(raw, "{"); start != -1 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}

	return strings.TrimSpace(raw)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
