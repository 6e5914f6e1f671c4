package intel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/glossline-ai/sales-agent/internal/llm"
	"github.com/glossline-ai/sales-agent/internal/model"
	"github.com/glossline-ai/sales-agent/pkg/metrics"
)

// Service implements Capability over an LLM client. Every call is bounded by
// the configured timeout.
type Service struct {
	client  llm.Client
	model   string
	timeout time.Duration
}

// NewService creates a text intelligence service. An empty model name lets
// the provider pick its default.
func NewService(client llm.Client, modelName string, timeout time.Duration) *Service {
	return &Service{
		client:  client,
		model:   modelName,
		timeout: timeout,
	}
}

// ExtractKeywords extracts product-relevant keywords from one customer message.
func (s *Service) ExtractKeywords(ctx context.Context, text string, history []model.Message) (model.ExtractedSignal, error) {
	start := time.Now()

	prompt := fmt.Sprintf("Recent conversation:\n%s\nCustomer message: %q", formatHistory(history, 6), text)
	resp, err := s.complete(ctx, extractionSystemPrompt, prompt, 0.3)
	if err != nil {
		metrics.RecordLLMCall("extract_keywords", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("keyword extraction failed: %w", err)
	}
	metrics.RecordLLMCall("extract_keywords", "success", time.Since(start).Seconds())

	var parsed struct {
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &parsed); err != nil {
		return nil, fmt.Errorf("malformed keyword extraction output: %w", err)
	}

	signal := make(model.ExtractedSignal, 0, len(parsed.Keywords))
	for _, kw := range parsed.Keywords {
		if trimmed := strings.TrimSpace(kw); trimmed != "" {
			signal = append(signal, trimmed)
		}
	}
	return signal, nil
}

// ClassifyStage returns the advisory stage guess for the current turn.
func (s *Service) ClassifyStage(ctx context.Context, history []model.Message, text string, matches []model.MatchResult) (*model.ExternalClassification, error) {
	start := time.Now()

	resp, err := s.complete(ctx, classificationSystemPrompt, classificationPrompt(history, text, matches), 0.2)
	if err != nil {
		metrics.RecordLLMCall("classify_stage", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("stage classification failed: %w", err)
	}
	metrics.RecordLLMCall("classify_stage", "success", time.Since(start).Seconds())

	var classification model.ExternalClassification
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &classification); err != nil {
		return nil, fmt.Errorf("malformed classification output: %w", err)
	}
	if classification.Stage == "" {
		return nil, fmt.Errorf("classification output missing stage")
	}
	return &classification, nil
}

// GenerateResponse produces the assistant's reply for the validated stage.
func (s *Service) GenerateResponse(ctx context.Context, history []model.Message, stage model.Stage, matches []model.MatchResult, introducePrices bool) (string, error) {
	start := time.Now()

	resp, err := s.complete(ctx, responseSystemPrompt, responsePrompt(history, stage, matches, introducePrices), 0.7)
	if err != nil {
		metrics.RecordLLMCall("generate_response", "error", time.Since(start).Seconds())
		return "", fmt.Errorf("response generation failed: %w", err)
	}
	metrics.RecordLLMCall("generate_response", "success", time.Since(start).Seconds())

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", fmt.Errorf("response generation returned empty text")
	}
	return text, nil
}

func (s *Service) complete(ctx context.Context, system, prompt string, temperature float64) (*llm.CompletionResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.Complete(callCtx, &llm.CompletionRequest{
		Model:       s.model,
		System:      system,
		Messages:    []llm.ChatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
	})
	if err != nil {
		return nil, err
	}

	metrics.LLMTokensTotal.WithLabelValues(resp.Model, "in").Add(float64(resp.TokensIn))
	metrics.LLMTokensTotal.WithLabelValues(resp.Model, "out").Add(float64(resp.TokensOut))
	return resp, nil
}

// extractJSON strips markdown fences and surrounding prose so the first JSON
// object in the output can be decoded.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if idx := strings.Index(content, "{"); idx >= 0 {
		if end := strings.LastIndex(content, "}"); end > idx {
			return content[idx : end+1]
		}
	}
	return content
}
