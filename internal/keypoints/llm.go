package keypoints

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/spacesedan/reviewpulse/internal/models"
)

// ErrEmptyCompletion marks a generative response that came back blank;
// callers treat it like any other provider failure.
var ErrEmptyCompletion = errors.New("keypoints: empty completion")

// Generator is the chat-completion surface used for extraction. Satisfied
// by *openai.Client.
type Generator interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type LLMExtractor struct {
	client Generator
	model  string
}

func NewLLMExtractor(client Generator, model string) *LLMExtractor {
	return &LLMExtractor{client: client, model: model}
}

// ExtractLLM asks the generative model for 3-5 bullet points. A failed
// call or a blank completion is returned as an error so the rule-based
// fallback can take over.
func (e *LLMExtractor) ExtractLLM(ctx context.Context, text string, lang models.Language) (string, error) {
	start := time.Now()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(text, lang),
			},
		},
	})
	if err != nil {
		slog.Error("[KeyPoints] Generative request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}

	slog.Info("[KeyPoints] Generative extraction succeeded",
		slog.Duration("elapsed", time.Since(start)))
	return content, nil
}
