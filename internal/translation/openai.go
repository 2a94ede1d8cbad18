package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = openai.GPT4oMini

// openaiTranslator translates one text per chat completion. Slower than
// the batched Google backend, but it needs nothing beyond an API key.
type openaiTranslator struct {
	client     *openai.Client
	model      string
	sourceLang string
	targetLang string
}

func newOpenAITranslator(config *Config) *openaiTranslator {
	model := config.OpenAIModel
	if model == "" {
		model = defaultOpenAIModel
	}
	return &openaiTranslator{
		client:     openai.NewClient(config.OpenAIKey),
		model:      model,
		sourceLang: config.SourceLang,
		targetLang: config.TargetLang,
	}
}

func (o *openaiTranslator) Translate(ctx context.Context, texts []string) ([]string, error) {
	out := make([]string, len(texts))
	for i, text := range texts {
		req := openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: translationPrompt(o.sourceLang, o.targetLang, text),
				},
			},
			MaxTokens:   120,
			Temperature: 0.3,
		}

		resp, err := o.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("OpenAI API error: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no translation returned for %q", text)
		}
		out[i] = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	return out, nil
}

func (o *openaiTranslator) Name() string {
	return "openai"
}

func (o *openaiTranslator) Close() error {
	return nil
}
