package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/spigell/resume-agent/internal/generator"
	"github.com/spigell/resume-agent/internal/input"
	"github.com/spigell/resume-agent/internal/modifier"
	"github.com/spigell/resume-agent/internal/planner"
)

type fakeTool struct {
	name     string
	progress planner.Progress
	err      error
	calls    int
}

func (f *fakeTool) Name() string { return f.name }

func (f *fakeTool) Run(_ context.Context, _ *State) (planner.Progress, error) {
	f.calls++

	if f.err != nil {
		return planner.Progress{}, f.err
	}

	return f.progress, nil
}

func newTestRunner(tools ...Tool) *Runner {
	return NewRunner(planner.New(nil, zap.NewNop()), tools, zap.NewNop())
}

func TestRunExecutesTasksInOrder(t *testing.T) {
	t.Parallel()

	inputTool := &fakeTool{name: planner.TaskInputProcessor, progress: planner.Progress{Markdown: true}}
	modifierTool := &fakeTool{name: planner.TaskTextModifier, progress: planner.Progress{Polished: true}}
	generatorTool := &fakeTool{name: planner.TaskResumeGenerator, progress: planner.Progress{Output: true}}

	state := &State{}

	if err := newTestRunner(inputTool, modifierTool, generatorTool).Run(context.Background(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{planner.TaskInputProcessor, planner.TaskTextModifier, planner.TaskResumeGenerator}
	if diff := cmp.Diff(want, state.Completed); diff != "" {
		t.Fatalf("completed tasks mismatch (-want +got):\n%s", diff)
	}

	for _, tool := range []*fakeTool{inputTool, modifierTool, generatorTool} {
		if tool.calls != 1 {
			t.Errorf("%s ran %d times, want once", tool.name, tool.calls)
		}
	}
}

func TestRunWrapsToolErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	inputTool := &fakeTool{name: planner.TaskInputProcessor, progress: planner.Progress{Markdown: true}}
	modifierTool := &fakeTool{name: planner.TaskTextModifier, err: boom}

	err := newTestRunner(inputTool, modifierTool).Run(context.Background(), &State{})
	if err == nil {
		t.Fatal("expected an error")
	}

	if !errors.Is(err, boom) {
		t.Fatalf("error %v does not wrap the tool error", err)
	}

	if !strings.Contains(err.Error(), planner.TaskTextModifier) {
		t.Fatalf("error %v does not name the failing task", err)
	}
}

func TestRunFailsOnUnregisteredTask(t *testing.T) {
	t.Parallel()

	err := newTestRunner().Run(context.Background(), &State{})
	if err == nil || !strings.Contains(err.Error(), "no tool registered") {
		t.Fatalf("got %v, want an unregistered task error", err)
	}
}

func TestRunStopsWithoutProgress(t *testing.T) {
	t.Parallel()

	stuck := &fakeTool{name: planner.TaskInputProcessor}

	err := newTestRunner(stuck).Run(context.Background(), &State{})
	if err == nil || !strings.Contains(err.Error(), "did not converge") {
		t.Fatalf("got %v, want a convergence error", err)
	}

	if stuck.calls != maxRounds {
		t.Fatalf("stuck tool ran %d times, want %d", stuck.calls, maxRounds)
	}
}

func TestRunPropagatesAbort(t *testing.T) {
	t.Parallel()

	inputTool := &fakeTool{name: planner.TaskInputProcessor, progress: planner.Progress{Markdown: true}}
	modifierTool := &fakeTool{name: planner.TaskTextModifier, progress: planner.Progress{Polished: true}}
	generatorTool := &fakeTool{name: planner.TaskResumeGenerator, err: ErrAborted}

	err := newTestRunner(inputTool, modifierTool, generatorTool).Run(context.Background(), &State{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("got %v, want ErrAborted", err)
	}
}

func TestRunEndToEndWithoutModel(t *testing.T) {
	t.Parallel()

	log := zap.NewNop()
	dir := t.TempDir()

	var confirmed string

	state := &State{
		Payload:       input.Payload{RawText: "Built internal tools\nLed the migration to Go"},
		OutputDir:     dir,
		CandidateName: "Jane Doe",
		Confirm: func(markdown string) error {
			confirmed = markdown
			return nil
		},
	}

	tools := []Tool{
		NewInputTool(input.NewProcessor(log), log),
		NewModifierTool(modifier.New(nil, log)),
		NewGeneratorTool(generator.New(log)),
	}

	runner := NewRunner(planner.New(nil, log), tools, log)
	if err := runner.Run(context.Background(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{planner.TaskInputProcessor, planner.TaskTextModifier, planner.TaskResumeGenerator}
	if diff := cmp.Diff(wantOrder, state.Completed); diff != "" {
		t.Fatalf("completed tasks mismatch (-want +got):\n%s", diff)
	}

	if state.Kind != input.KindText {
		t.Errorf("kind = %q, want %q", state.Kind, input.KindText)
	}

	if state.Polished == "" {
		t.Fatal("the rewrite fallback did not run")
	}

	if confirmed != state.Polished {
		t.Errorf("confirm hook saw %q, want the polished markdown %q", confirmed, state.Polished)
	}

	var names []string
	for _, artifact := range state.Artifacts {
		names = append(names, artifact.Name)
	}

	if diff := cmp.Diff([]string{"resume.md", "resume.tex"}, names); diff != "" {
		t.Fatalf("artifacts mismatch (-want +got):\n%s", diff)
	}

	md, err := os.ReadFile(filepath.Join(dir, "resume.md"))
	if err != nil {
		t.Fatalf("reading resume.md: %v", err)
	}

	if string(md) != state.Polished {
		t.Fatalf("resume.md content %q does not match the polished markdown %q", md, state.Polished)
	}
}

func TestRunTextToPDFRequestWithoutModelOrPdflatex(t *testing.T) {
	t.Setenv("PATH", "")

	log := zap.NewNop()
	dir := t.TempDir()

	state := &State{
		Payload:   input.Payload{RawText: "Software engineer, 3 years, built internal tools"},
		OutputDir: dir,
		Formats:   []generator.Format{generator.FormatPDF},
	}

	tools := []Tool{
		NewInputTool(input.NewProcessor(log), log),
		NewModifierTool(modifier.New(nil, log)),
		NewGeneratorTool(generator.New(log)),
	}

	runner := NewRunner(planner.New(nil, log), tools, log)
	if err := runner.Run(context.Background(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"resume.md", "resume.tex"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "resume.pdf")); !os.IsNotExist(err) {
		t.Fatalf("resume.pdf must be skipped without pdflatex, stat returned %v", err)
	}
}

func TestRunConfirmGateAborts(t *testing.T) {
	t.Parallel()

	log := zap.NewNop()
	dir := t.TempDir()

	state := &State{
		Payload:   input.Payload{RawText: "hello world"},
		OutputDir: dir,
		Confirm: func(string) error {
			return ErrAborted
		},
	}

	tools := []Tool{
		NewInputTool(input.NewProcessor(log), log),
		NewModifierTool(modifier.New(nil, log)),
		NewGeneratorTool(generator.New(log)),
	}

	err := NewRunner(planner.New(nil, log), tools, log).Run(context.Background(), state)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("got %v, want ErrAborted", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading output dir: %v", err)
	}

	if len(entries) != 0 {
		t.Fatalf("no documents should be written after an abort, found %d entries", len(entries))
	}
}
