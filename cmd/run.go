package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spigell/resume-agent/internal/agent"
	"github.com/spigell/resume-agent/internal/ai"
	"github.com/spigell/resume-agent/internal/ai/deepseek"
	"github.com/spigell/resume-agent/internal/ai/gemini"
	"github.com/spigell/resume-agent/internal/generator"
	"github.com/spigell/resume-agent/internal/input"
	"github.com/spigell/resume-agent/internal/logger"
	"github.com/spigell/resume-agent/internal/magicresume"
	"github.com/spigell/resume-agent/internal/modifier"
	"github.com/spigell/resume-agent/internal/planner"
	"github.com/spigell/resume-agent/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var confirmPrompt = promptui.Select{
	Label: "Generate documents from this resume?",
	Items: []string{PromptYes, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the resume pipeline",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("input", "", "path to the source resume (txt, md, pdf or docx)")
	runCmd.Flags().String("text", "", "raw resume text instead of a file")
	runCmd.Flags().StringSlice("format", []string{"pdf"}, "output formats: pdf, docx (word is an alias)")
	runCmd.Flags().StringP("output-dir", "o", "output", "directory for the generated documents")
	runCmd.Flags().String("target-role", "", "role to slant the rewrite towards")
	runCmd.Flags().String("name", "Candidate", "candidate name for the document header")
	runCmd.Flags().String("template", magicresume.DefaultTemplateID, "resume template for the word document")
	runCmd.Flags().BoolP("interactive", "i", false, "review the polished markdown before documents are generated")

	viper.BindPFlag("output-dir", runCmd.Flags().Lookup("output-dir"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-agent", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	inputPath := cmd.Flag("input").Value.String()
	rawText := cmd.Flag("text").Value.String()

	if (inputPath == "") == (rawText == "") {
		logger.Fatal("exactly one of --input or --text is required")
	}

	rawFormats, err := cmd.Flags().GetStringSlice("format")
	if err != nil {
		logger.Fatal("reading the format flag", zap.Error(err))
	}

	formats, err := generator.ParseFormats(rawFormats)
	if err != nil {
		logger.Fatal("parsing output formats",
			zap.Error(err),
			zap.String("hint", "supported formats are pdf and docx"),
		)
	}

	assistant, err := newAssistant(ctx, config, logger)
	if err != nil {
		logger.Warn("no model is available, the offline fallbacks are used",
			zap.Error(err),
			zap.String("hint", "set DEEPSEEK_API_KEY or the ai section in the configuration file"),
		)
	}

	state := &agent.State{
		Payload:       input.Payload{SourcePath: inputPath, RawText: rawText},
		OutputDir:     viper.GetString("output-dir"),
		Formats:       formats,
		CandidateName: cmd.Flag("name").Value.String(),
		TargetRole:    cmd.Flag("target-role").Value.String(),
		TemplateID:    cmd.Flag("template").Value.String(),
	}

	if cmd.Flag("interactive").Value.String() == "true" {
		state.Confirm = confirmGenerate
	}

	tools := []agent.Tool{
		agent.NewInputTool(input.NewProcessor(logger), logger),
		agent.NewModifierTool(modifier.New(assistant, logger)),
		agent.NewGeneratorTool(generator.New(logger)),
	}

	runner := agent.NewRunner(planner.New(assistant, logger), tools, logger)

	if err := runner.Run(ctx, state); err != nil {
		if errors.Is(err, agent.ErrAborted) {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}

		logger.Fatal("pipeline failed", zap.Error(err))
	}

	for _, artifact := range state.Artifacts {
		logger.Info("generated", zap.String("name", artifact.Name), zap.String("path", artifact.Path))
	}
}

// confirmGenerate shows the polished markdown and asks before any documents
// are written.
func confirmGenerate(markdown string) error {
	fmt.Printf("\n%s\n\n", markdown)

	_, action, err := confirmPrompt.Run()
	if err != nil {
		return err
	}

	if action != PromptYes {
		return agent.ErrAborted
	}

	return nil
}

// newAssistant builds the configured chat backend. A nil assistant is a
// valid outcome: the caller degrades to the offline fallbacks.
func newAssistant(ctx context.Context, config *Config, logger *zap.Logger) (ai.Assistant, error) {
	var aiConfig *AIConfig
	if config != nil {
		aiConfig = config.AI
	}
	if aiConfig == nil {
		aiConfig = &AIConfig{}
	}

	provider := strings.TrimSpace(strings.ToLower(aiConfig.Provider))

	switch provider {
	case "", "deepseek":
		cfg := aiConfig.DeepSeek
		if cfg == nil {
			cfg = &DeepSeekConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "deepseek api key",
			Value: cfg.APIKey,
			File:  cfg.APIKeyFile,
			Env:   "DEEPSEEK_API_KEY",
		})
		if err != nil {
			return nil, err
		}

		return deepseek.New(apiKey, cfg.BaseURL, cfg.Model, time.Duration(cfg.Timeout)*time.Second, logger)
	case "gemini":
		cfg := aiConfig.Gemini
		if cfg == nil {
			cfg = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.APIKey,
			File:  cfg.APIKeyFile,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, err
		}

		return gemini.New(ctx, apiKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", aiConfig.Provider)
	}
}
