// Package providers contains concrete llm.Provider implementations.
package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/rewritely/rewritely-be/internal/apperr"
	"github.com/rewritely/rewritely-be/internal/config"
	"github.com/rewritely/rewritely-be/internal/llm"
	"github.com/rewritely/rewritely-be/internal/models"
)

// GeminiProvider implements llm.Provider on top of the Gemini API.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiProvider creates a provider bound to the configured model.
func NewGeminiProvider(ctx context.Context, cfg *config.Config) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client:  client,
		model:   cfg.GeminiModel,
		timeout: cfg.LLMTimeout,
	}, nil
}

// RewriteBullet asks Gemini for improved bullet variants and parses the
// templated response.
func (p *GeminiProvider) RewriteBullet(ctx context.Context, jobDescription, bullet string) (*llm.RewriteResult, error) {
	raw, err := p.generate(ctx, rewriteGenConfig(), llm.RewritePrompt(jobDescription, bullet))
	if err != nil {
		return nil, err
	}

	result, err := llm.ParseRewrite(raw)
	if err != nil {
		// Log the raw text for debugging but never return it upstream.
		log.Error().Err(err).Int("response_len", len(raw)).Msg("Failed to parse rewrite response")
		return nil, err
	}
	return result, nil
}

// GenerateStarStory asks Gemini for a STAR narrative as JSON.
func (p *GeminiProvider) GenerateStarStory(ctx context.Context, bullet string) (*models.StarStory, error) {
	raw, err := p.generate(ctx, nil, llm.StarPrompt(bullet))
	if err != nil {
		return nil, err
	}

	star, err := llm.ParseStarStory(raw)
	if err != nil {
		log.Error().Err(err).Int("response_len", len(raw)).Msg("Failed to parse STAR response")
		return nil, err
	}
	return star, nil
}

// ExtractBullets asks Gemini to pull achievement bullets out of raw
// resume text, one per line.
func (p *GeminiProvider) ExtractBullets(ctx context.Context, resumeText string) ([]string, error) {
	raw, err := p.generate(ctx, nil, llm.ExtractBulletsPrompt(resumeText))
	if err != nil {
		return nil, err
	}
	return llm.ParseBulletLines(raw), nil
}

// generate runs one synchronous completion call and returns the text.
func (p *GeminiProvider) generate(ctx context.Context, genCfg *genai.GenerateContentConfig, prompt string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUpstream, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", apperr.ErrUpstream)
	}

	log.Debug().
		Str("model", p.model).
		Dur("duration", time.Since(start)).
		Int("response_len", len(text)).
		Msg("Gemini completion finished")

	return text, nil
}

// rewriteGenConfig mirrors the sampling parameters the rewrite prompt
// was tuned with.
func rewriteGenConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		TopP:            genai.Ptr[float32](0.9),
		TopK:            genai.Ptr[float32](40),
		MaxOutputTokens: 2000,
	}
}
