// Package assistant relays free-text messages to the Gemini API under the
// OWLai emotional-intelligence persona.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"emobots/core/config"
	"emobots/core/logger"
)

// ErrEmptyReply marks a response with no usable text (typically a safety
// block). Callers skip the reply for that turn.
var ErrEmptyReply = errors.New("assistant: empty model response")

// Client is a thin wrapper over the Gemini chat API.
type Client struct {
	client *genai.Client
	cfg    config.GeminiConfig
}

// New builds a Gemini-backed client from the bot configuration.
func New(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	genClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{client: genClient, cfg: cfg}, nil
}

// Reply sends the user's text with the cleaned turn window and returns the
// model's reply. Identity questions are answered locally without a round
// trip. The returned text is never empty on a nil error.
func (c *Client) Reply(ctx context.Context, turns []Turn, userText string) (string, error) {
	if IsIdentityQuestion(userText) {
		return IntroReply(), nil
	}

	cleaned := CleanHistory(turns, userText)
	history := make([]*genai.Content, 0, len(cleaned)-1)
	for _, t := range cleaned[:len(cleaned)-1] {
		history = append(history, genai.NewContentFromText(t.Content, genai.Role(t.Role)))
	}

	temperature := c.cfg.Temperature
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(coachPrompt, genai.RoleUser),
		Temperature:       &temperature,
		MaxOutputTokens:   c.cfg.MaxOutputTokens,
	}

	start := time.Now()
	chat, err := c.client.Chats.Create(ctx, c.cfg.Model, genCfg, history)
	if err != nil {
		return "", fmt.Errorf("create chat: %w", err)
	}

	res, err := chat.SendMessage(ctx, genai.Part{Text: cleaned[len(cleaned)-1].Content})
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyReply
	}
	text := res.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", ErrEmptyReply
	}

	logger.Debug(ctx, "assistant", "reply.generated",
		slog.String("model", c.cfg.Model),
		slog.Int("turns", len(cleaned)),
		slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
	)
	return text, nil
}
