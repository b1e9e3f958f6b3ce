package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/viratraj194/Finance-Agent/config"
)

// SystemPrompt is the fixed instruction shared by every summarization
// call. The model renders language only; all numbers come from the
// formatted data blocks.
const SystemPrompt = `You are a conservative financial market assistant.

Rules:
- Do NOT give buy/sell advice
- Do NOT promise profits
- Use provided data only
- Avoid time-based claims like 'right now'
- Be concise and factual`

const callTimeout = 15 * time.Second

// Completer is the narrow surface capabilities depend on.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Client wraps a single long-lived chat model. It is constructed once
// at process start and passed into every capability.
type Client struct {
	model model.BaseChatModel
}

func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.OpenAIBaseURL,
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}

	return &Client{model: cm}, nil
}

// Complete sends one system+user exchange and returns the generated
// text. Each call is bounded by a 15 second timeout.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	msgs := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	}

	out, err := c.model.Generate(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	return strings.TrimSpace(out.Content), nil
}
