package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/missivelabs/missive/internal/classify"
	"github.com/missivelabs/missive/internal/config"
	"google.golang.org/genai"
)

// GeminiClassifier implements the classify.Classifier interface using
// Google's Gemini API for tag extraction and canonicalization.
type GeminiClassifier struct {
	logger  *slog.Logger
	config  config.LLMConfig
	client  *genai.Client
	model   string
	maxTags int
}

// NewGeminiClassifier creates a new GeminiClassifier with the provided
// dependencies. The context is used for client initialization only.
func NewGeminiClassifier(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
	maxTags int,
) (*GeminiClassifier, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", classify.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", classify.ErrInvalidConfig)
	}

	if maxTags < 1 {
		return nil, fmt.Errorf("%w: max tags must be at least 1", classify.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			classify.ErrInvalidConfig, err)
	}

	return &GeminiClassifier{
		logger:  logger.With(slog.String("component", "gemini_classifier")),
		config:  cfg,
		client:  client,
		model:   cfg.ModelName,
		maxTags: maxTags,
	}, nil
}

// Ensure GeminiClassifier implements classify.Classifier
var _ classify.Classifier = (*GeminiClassifier)(nil)

// ExtractTags implements classify.Classifier.ExtractTags.
func (g *GeminiClassifier) ExtractTags(ctx context.Context, text string) ([]string, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty item text", classify.ErrClassificationFailed)
	}

	var promptBuf bytes.Buffer
	if err := extractionPrompt.Execute(&promptBuf, extractionPromptData{
		Text:    text,
		MaxTags: g.maxTags,
	}); err != nil {
		return nil, fmt.Errorf("failed to execute extraction prompt template: %w", err)
	}

	raw, err := g.generate(ctx, promptBuf.String())
	if err != nil {
		return nil, err
	}

	var parsed extractionResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse extraction JSON: %v",
			classify.ErrInvalidResponse, err)
	}

	tags := make([]string, 0, len(parsed.Tags))
	for _, tag := range parsed.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == g.maxTags {
			break
		}
	}

	g.logger.DebugContext(ctx, "extracted tags",
		slog.Int("tag_count", len(tags)))
	return tags, nil
}

// CanonicalizeTags implements classify.Classifier.CanonicalizeTags.
// One aggregate call covering the full raw-tag set; totality over the
// input is the caller's concern.
func (g *GeminiClassifier) CanonicalizeTags(
	ctx context.Context,
	rawTags []string,
) (map[string]string, error) {
	if len(rawTags) == 0 {
		return map[string]string{}, nil
	}

	tagsJSON, err := json.Marshal(rawTags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal raw tags: %w", err)
	}

	var promptBuf bytes.Buffer
	if err := canonicalizationPrompt.Execute(&promptBuf, canonicalizationPromptData{
		TagsJSON: string(tagsJSON),
	}); err != nil {
		return nil, fmt.Errorf("failed to execute canonicalization prompt template: %w", err)
	}

	raw, err := g.generate(ctx, promptBuf.String())
	if err != nil {
		return nil, err
	}

	var parsed canonicalizationResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse canonicalization JSON: %v",
			classify.ErrInvalidResponse, err)
	}

	if parsed.Mapping == nil {
		return nil, fmt.Errorf("%w: canonicalization response has no mapping",
			classify.ErrInvalidResponse)
	}

	g.logger.DebugContext(ctx, "canonicalized tags",
		slog.Int("raw_count", len(rawTags)),
		slog.Int("mapping_count", len(parsed.Mapping)))
	return parsed.Mapping, nil
}

// generate issues a single Gemini call and returns the response text.
// API failures are mapped onto the classify error taxonomy; a 429 status
// becomes the distinguished ErrRateLimited condition.
func (g *GeminiClassifier) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
			g.logger.WarnContext(ctx, "Gemini API rate limited",
				slog.Int("status", apiErr.Code))
			return "", fmt.Errorf("%w: %v", classify.ErrRateLimited, err)
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", classify.ErrClassificationFailed, err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: nil response", classify.ErrInvalidResponse)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response text", classify.ErrInvalidResponse)
	}

	// Some models wrap JSON in a markdown fence despite the response MIME
	// type; strip it before parsing.
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	return strings.TrimSpace(text), nil
}
