package modifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/spigell/resume-agent/internal/ai"
	"github.com/spigell/resume-agent/internal/logger"

	"go.uber.org/zap"
)

//go:embed prompt.md
var promptTemplate string

const systemPrompt = `You are a professional resume writer. Rewrite the resume content you are given into clean, well-structured Markdown.

Rules:
- Keep every fact; never invent employers, dates, degrees or numbers.
- Use "#" headings for sections and "-" bullets for items.
- Prefer strong action verbs and concise, accomplishment-oriented wording.
- Return ONLY the rewritten Markdown, no commentary and no code fences.`

const maxLogLength = 200

var guidance = map[Maturity]string{
	MaturityPureText: "Organize the description into formal resume entries, add missing action verbs and unify the formatting.",
	MaturityMature:   "Keep the existing structure, fine-tune the wording and strengthen the accomplishments.",
	MaturityImmature: "Restructure the document, fill in missing sections and unify the style.",
}

// Request carries the content to rewrite and the hints that steer it.
type Request struct {
	Markdown   string
	Maturity   Maturity
	TargetRole string
}

// Modifier improves and restructures resume Markdown, through the configured
// assistant when one is available and through the deterministic fallback
// otherwise.
type Modifier struct {
	assistant ai.Assistant
	logger    *zap.Logger
}

func New(assistant ai.Assistant, log *zap.Logger) *Modifier {
	if assistant != nil {
		log = logger.WithCommonFields(log, assistant.Provider(), assistant.Model())
	}

	return &Modifier{assistant: assistant, logger: log}
}

// Modify returns the polished Markdown. Missing credentials and rejected
// credentials both degrade to the fallback rewriter; any other model failure
// surfaces to the caller. There are no retries.
func (m *Modifier) Modify(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Markdown) == "" {
		return "", errors.New("markdown content is required")
	}

	if m.assistant == nil {
		m.logger.Warn("no model configured, using the built-in rewriter",
			zap.String("hint", "set DEEPSEEK_API_KEY to enable model rewriting"),
		)
		return Fallback(req.Markdown), nil
	}

	user := buildPrompt(req)

	m.logger.Debug("rewrite request",
		zap.String("maturity", string(req.Maturity)),
		zap.Int("prompt_length", utf8.RuneCountInString(user)),
		zap.String("prompt_preview", logger.TruncateForLog(user, maxLogLength)),
	)

	reply, err := m.assistant.Chat(ctx, systemPrompt, user)
	if err != nil {
		if errors.Is(err, ai.ErrUnauthorized) {
			m.logger.Warn("model rejected the credentials, using the built-in rewriter", zap.Error(err))
			return Fallback(req.Markdown), nil
		}
		return "", fmt.Errorf("rewriting resume text: %w", err)
	}

	polished := stripFences(reply)
	if polished == "" {
		return "", errors.New("model returned an empty rewrite")
	}

	m.logger.Debug("rewrite response",
		zap.Int("response_length", utf8.RuneCountInString(polished)),
		zap.String("response_preview", logger.TruncateForLog(polished, maxLogLength)),
	)

	return polished, nil
}

func buildPrompt(req Request) string {
	hint, ok := guidance[req.Maturity]
	if !ok {
		hint = guidance[MaturityPureText]
	}

	role := strings.TrimSpace(req.TargetRole)
	if role == "" {
		role = "general"
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{GUIDANCE}}", hint)
	prompt = strings.ReplaceAll(prompt, "{{TARGET_ROLE}}", role)
	prompt = strings.ReplaceAll(prompt, "{{RESUME_MARKDOWN}}", req.Markdown)

	return prompt
}

// Fallback is the deterministic offline rewriter: headings and existing
// bullets pass through, every other line becomes a bullet. Applying it to
// its own output changes nothing.
func Fallback(markdown string) string {
	var lines []string
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
			lines = append(lines, line)
			continue
		}

		lines = append(lines, "- "+line)
	}

	return strings.Join(lines, "\n")
}

// stripFences unwraps a reply the model returned inside a Markdown code
// fence despite the instructions.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	raw = strings.TrimPrefix(raw, "```markdown")
	raw = strings.TrimPrefix(raw, "```md")
	raw = strings.TrimPrefix(raw, "```")
	if idx := strings.LastIndex(raw, "```"); idx != -1 {
		raw = raw[:idx]
	}

	return strings.TrimSpace(raw)
}
