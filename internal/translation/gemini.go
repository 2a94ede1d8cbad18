package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// geminiTranslator translates one text per GenerateContent call.
type geminiTranslator struct {
	client     *genai.Client
	model      string
	sourceLang string
	targetLang string
}

func newGeminiTranslator(ctx context.Context, config *Config) (*geminiTranslator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.GeminiModel
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiTranslator{
		client:     client,
		model:      model,
		sourceLang: config.SourceLang,
		targetLang: config.TargetLang,
	}, nil
}

func (g *geminiTranslator) Translate(ctx context.Context, texts []string) ([]string, error) {
	out := make([]string, len(texts))
	for i, text := range texts {
		prompt := translationPrompt(g.sourceLang, g.targetLang, text)
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			return nil, fmt.Errorf("Gemini API error: %w", err)
		}

		translated := strings.TrimSpace(resp.Text())
		if translated == "" {
			return nil, fmt.Errorf("no translation returned for %q", text)
		}
		out[i] = translated
	}
	return out, nil
}

func (g *geminiTranslator) Name() string {
	return "gemini"
}

func (g *geminiTranslator) Close() error {
	return nil
}
