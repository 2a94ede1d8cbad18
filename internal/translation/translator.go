package translation

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// Translator turns a batch of texts into their translations. The result
// has exactly one entry per input, in input order, so callers can align
// translations with the places the texts came from by position alone.
type Translator interface {
	Translate(ctx context.Context, texts []string) ([]string, error)

	// Name returns the backend name
	Name() string

	// Close releases any backend connections
	Close() error
}

// Language describes one language a backend can translate from or to.
type Language struct {
	Code          string
	Name          string
	SupportSource bool
	SupportTarget bool
}

// LanguageLister is implemented by translators that can enumerate the
// languages their backend supports.
type LanguageLister interface {
	SupportedLanguages(ctx context.Context) ([]Language, error)
}

// Config holds common configuration for translation backends
type Config struct {
	Provider   string // Backend name: "google", "openai" or "gemini"
	SourceLang string // BCP 47 code of the menu language
	TargetLang string // BCP 47 code to translate into

	// Google Cloud settings
	CredentialsFile string // Service account key file (--gapps)
	ProjectID       string // Derived from the key file when empty

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string

	// Gemini-specific settings
	GeminiKey   string
	GeminiModel string
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:    "google",
		SourceLang:  "zh-CN",
		TargetLang:  "en",
		OpenAIModel: defaultOpenAIModel,
		GeminiModel: defaultGeminiModel,
	}
}

// NewTranslator creates the appropriate translation backend based on
// configuration.
func NewTranslator(ctx context.Context, config *Config) (Translator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case "google":
		return newGoogleTranslator(ctx, config)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return newOpenAITranslator(config), nil

	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return newGeminiTranslator(ctx, config)

	default:
		return nil, fmt.Errorf("unknown translator: %s", config.Provider)
	}
}

func translationPrompt(sourceLang, targetLang, text string) string {
	return fmt.Sprintf("Translate the following restaurant menu text from %s to %s. "+
		"Respond with only the translation, nothing else.\n\n%s",
		sourceLang, targetLang, text)
}

// breakerTranslator stops calling a backend that keeps failing. After
// three consecutive failures the circuit opens and calls fail fast for
// thirty seconds before a single probe request is let through.
type breakerTranslator struct {
	inner Translator
	cb    *gobreaker.CircuitBreaker
}

// NewBreaker wraps a translator in a circuit breaker.
func NewBreaker(inner Translator) Translator {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        inner.Name(),
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	return &breakerTranslator{inner: inner, cb: cb}
}

func (b *breakerTranslator) Translate(ctx context.Context, texts []string) ([]string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Translate(ctx, texts)
	})
	if err != nil {
		return nil, err
	}
	return out.([]string), nil
}

func (b *breakerTranslator) Name() string {
	return b.inner.Name()
}

func (b *breakerTranslator) Close() error {
	return b.inner.Close()
}
