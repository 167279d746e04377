// Package agent drives the pipeline: it asks the planner for the next task
// and runs the matching tool until the planner reports completion.
package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-agent/internal/generator"
	"github.com/spigell/resume-agent/internal/input"
	"github.com/spigell/resume-agent/internal/modifier"
	"github.com/spigell/resume-agent/internal/planner"
)

// ErrAborted reports that the user declined to continue at a review gate.
var ErrAborted = errors.New("aborted by user")

// maxRounds bounds the planning loop; a healthy run finishes in three.
const maxRounds = 8

// State is the shared pipeline state the tools read and write.
type State struct {
	Payload input.Payload

	Kind     input.Kind
	Maturity modifier.Maturity

	Markdown string
	Polished string

	OutputDir     string
	Formats       []generator.Format
	CandidateName string
	TargetRole    string
	TemplateID    string

	Completed []string
	Artifacts []Artifact

	// Confirm, when set, runs right before documents are generated. An
	// error stops the pipeline.
	Confirm func(markdown string) error
}

// Artifact is one generated file.
type Artifact struct {
	Name string
	Path string
}

func (s *State) addArtifact(name, path string) {
	if path == "" {
		return
	}

	s.Artifacts = append(s.Artifacts, Artifact{Name: name, Path: path})
}

// bestMarkdown prefers the polished rewrite over the raw extraction.
func (s *State) bestMarkdown() string {
	if s.Polished != "" {
		return s.Polished
	}

	return s.Markdown
}

// Tool is one executable pipeline step.
type Tool interface {
	Name() string
	Run(ctx context.Context, state *State) (planner.Progress, error)
}

// Runner executes plans task by task.
type Runner struct {
	planner *planner.Planner
	tools   map[string]Tool
	logger  *zap.Logger
}

func NewRunner(p *planner.Planner, tools []Tool, log *zap.Logger) *Runner {
	byName := make(map[string]Tool, len(tools))
	for _, tool := range tools {
		byName[tool.Name()] = tool
	}

	return &Runner{planner: p, tools: byName, logger: log}
}

// Run loops until the planner reports completion. Each round executes only
// the first planned task, so fresh results feed the next decision.
func (r *Runner) Run(ctx context.Context, state *State) error {
	for round := 1; ; round++ {
		if round > maxRounds {
			return fmt.Errorf("planner did not converge after %d rounds", maxRounds)
		}

		plan := r.planner.Decide(ctx, state.bestMarkdown())
		if plan.Complete || len(plan.Tasks) == 0 {
			r.logger.Info("pipeline complete",
				zap.Strings("completed", state.Completed),
				zap.String("status", string(r.planner.Status())),
			)

			return nil
		}

		task := plan.Tasks[0]

		tool, ok := r.tools[task.Name]
		if !ok {
			return fmt.Errorf("no tool registered for task %s", task.Name)
		}

		r.logger.Info("executing task",
			zap.Int("round", round),
			zap.String("task", task.Name),
			zap.String("rationale", task.Rationale),
			zap.String("status", string(r.planner.Status())),
		)

		started := time.Now()

		progress, err := tool.Run(ctx, state)
		if err != nil {
			return fmt.Errorf("%s: %w", task.Name, err)
		}

		r.planner.UpdateProgress(progress)
		state.Completed = append(state.Completed, task.Name)

		r.logger.Info("task finished",
			zap.String("task", task.Name),
			zap.Duration("took", time.Since(started)),
		)
	}
}
