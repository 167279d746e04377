package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spigell/resume-agent/internal/ai"
	"github.com/spigell/resume-agent/internal/logger"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.deepseek.com"
	defaultModel   = "deepseek-chat"
	defaultTimeout = 30 * time.Second

	contentType = "application/json"
	// Low temperature keeps planning and rewriting output stable across runs.
	temperature = 0.2

	maxLogLength = 200
)

// Client is a minimal OpenAI-compatible chat client for the DeepSeek API.
type Client struct {
	token  string
	model  string
	logger *zap.Logger

	BaseURL    string
	HTTPClient *http.Client
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

func New(apiKey, baseURL, model string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("deepseek api key is required")
	}

	if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL == "" {
		baseURL = defaultBaseURL
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		token:   apiKey,
		model:   model,
		logger:  logger,
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Chat sends a single system/user exchange to the chat completions endpoint
// and returns the reply text. There are no retries: a failed call is the
// caller's to degrade on or surface.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	url := c.BaseURL + "/v1/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("make request",
		zap.String("url", url),
		zap.Int("prompt_length", utf8.RuneCountInString(user)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completions request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", fmt.Errorf("%w: %s", ai.ErrUnauthorized, resp.Status)
	default:
		return "", fmt.Errorf("bad status: %s: %s", resp.Status, logger.TruncateForLog(string(data), maxLogLength))
	}

	var response chatResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return "", fmt.Errorf("parse chat response: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", errors.New("deepseek api returned no choices")
	}

	reply := strings.TrimSpace(response.Choices[0].Message.Content)
	if reply == "" {
		return "", errors.New("deepseek api returned an empty message")
	}

	c.logger.Debug("got response",
		zap.Int("response_length", utf8.RuneCountInString(reply)),
		zap.String("response_preview", logger.TruncateForLog(reply, maxLogLength)),
	)

	return reply, nil
}

func (c *Client) Provider() string { return "deepseek" }

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}
