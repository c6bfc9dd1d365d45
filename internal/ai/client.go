// Package ai wraps the OpenAI-compatible chat completions gateway used by
// the itinerary generator and the trip assistant. It is the only package
// that imports the openai SDK; callers see plain strings, tokens, and the
// domain error sentinels.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/adhingra/safarnama/backend/internal/domain"
)

// Message is one role-tagged entry of a conversation history.
// Role is "user" or "assistant"; other roles are dropped before sending.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client talks to one chat-completions gateway with one model.
type Client struct {
	api   openai.Client
	model string
}

// NewClient builds a Client against the given OpenAI-compatible base URL.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		api: openai.NewClient(
			option.WithBaseURL(baseURL),
			option.WithAPIKey(apiKey),
		),
		model: model,
	}
}

// Complete sends a blocking completion request and returns the full
// response text. Upstream 429/402 statuses map to domain.ErrRateLimited
// and domain.ErrQuotaExceeded; any other failure maps to
// domain.ErrUpstream.
func (c *Client) Complete(ctx context.Context, system string, msgs []Message, temperature float64) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    buildMessages(system, msgs),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", mapError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("ai.Client.Complete: empty response: %w", domain.ErrBadModelOutput)
	}
	return resp.Choices[0].Message.Content, nil
}

// Stream sends a streaming completion request and calls emit once per
// token as it arrives, never buffering the full answer. Returning an
// error from emit stops the stream; so does cancelling ctx. Errors that
// occur before the first token map like Complete's; a failure mid-stream
// leaves the caller with a truncated answer and the mapped error.
func (c *Client) Stream(ctx context.Context, system string, msgs []Message, emit func(token string) error) error {
	stream := c.api.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: buildMessages(system, msgs),
	})
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if token := chunk.Choices[0].Delta.Content; token != "" {
			if err := emit(token); err != nil {
				return err
			}
		}
	}
	if err := stream.Err(); err != nil {
		return mapError(err)
	}
	return nil
}

// buildMessages prepends the system prompt and converts the history,
// dropping empty messages and unknown roles.
func buildMessages(system string, msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs)+1)
	out = append(out, openai.SystemMessage(system))
	for _, m := range msgs {
		if m.Content == "" {
			continue
		}
		switch m.Role {
		case "user":
			out = append(out, openai.UserMessage(m.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(m.Content))
		}
	}
	return out
}

// mapError translates SDK errors into the domain's error taxonomy.
func mapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("ai gateway: %w", domain.ErrRateLimited)
		case http.StatusPaymentRequired:
			return fmt.Errorf("ai gateway: %w", domain.ErrQuotaExceeded)
		}
	}
	return fmt.Errorf("ai gateway: %w: %v", domain.ErrUpstream, err)
}
