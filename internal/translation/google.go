package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"os"

	translate "cloud.google.com/go/translate/apiv3"
	"cloud.google.com/go/translate/apiv3/translatepb"
	"google.golang.org/api/option"
)

// googleTranslator batches text through the Cloud Translation v3 API.
// One request carries every string of a menu, so a whole file costs a
// single API call.
type googleTranslator struct {
	client     *translate.TranslationClient
	parent     string
	sourceLang string
	targetLang string
}

func newGoogleTranslator(ctx context.Context, config *Config) (*googleTranslator, error) {
	projectID := config.ProjectID
	if projectID == "" {
		var err error
		projectID, err = ProjectIDFromCredentials(config.CredentialsFile)
		if err != nil {
			return nil, err
		}
	}

	var opts []option.ClientOption
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}
	client, err := translate.NewTranslationClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation client: %w", err)
	}

	return &googleTranslator{
		client:     client,
		parent:     fmt.Sprintf("projects/%s/locations/global", projectID),
		sourceLang: config.SourceLang,
		targetLang: config.TargetLang,
	}, nil
}

func (g *googleTranslator) Translate(ctx context.Context, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	req := &translatepb.TranslateTextRequest{
		Parent:             g.parent,
		SourceLanguageCode: g.sourceLang,
		TargetLanguageCode: g.targetLang,
		MimeType:           "text/html",
		Contents:           texts,
	}
	resp, err := g.client.TranslateText(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("translation request failed: %w", err)
	}

	translations := resp.GetTranslations()
	if len(translations) != len(texts) {
		return nil, fmt.Errorf("got %d translations for %d texts", len(translations), len(texts))
	}

	out := make([]string, len(translations))
	for i, tr := range translations {
		out[i] = tr.GetTranslatedText()
	}
	// text/html responses carry quotes and ampersands as entity references.
	return unescapeAll(out), nil
}

func (g *googleTranslator) Name() string {
	return "google"
}

func (g *googleTranslator) Close() error {
	return g.client.Close()
}

// SupportedLanguages lists the language codes the Cloud Translation API
// accepts, with English display names.
func (g *googleTranslator) SupportedLanguages(ctx context.Context) ([]Language, error) {
	req := &translatepb.GetSupportedLanguagesRequest{
		Parent:              g.parent,
		DisplayLanguageCode: "en",
	}
	resp, err := g.client.GetSupportedLanguages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list supported languages: %w", err)
	}

	langs := make([]Language, 0, len(resp.GetLanguages()))
	for _, l := range resp.GetLanguages() {
		langs = append(langs, Language{
			Code:          l.GetLanguageCode(),
			Name:          l.GetDisplayName(),
			SupportSource: l.GetSupportSource(),
			SupportTarget: l.GetSupportTarget(),
		})
	}
	return langs, nil
}

func unescapeAll(texts []string) []string {
	for i, text := range texts {
		texts[i] = html.UnescapeString(text)
	}
	return texts
}

// ProjectIDFromCredentials reads the project_id out of a Google service
// account key file.
func ProjectIDFromCredentials(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read credentials file: %w", err)
	}

	var key struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(data, &key); err != nil {
		return "", fmt.Errorf("failed to parse credentials file: %w", err)
	}
	if key.ProjectID == "" {
		return "", fmt.Errorf("credentials file %s has no project_id", path)
	}
	return key.ProjectID, nil
}
