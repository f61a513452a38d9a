package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"alcyxob/fitlocal/internal/domain"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultModel     = "claude-opus-4-1"
	DefaultMaxTokens = 4096
)

type ClaudeConfig struct {
	APIKey    string
	Model     string
	MaxTokens int64
	Timeout   time.Duration
	// BaseURL overrides the API endpoint; empty means the public API.
	BaseURL string
}

// ClaudeGenerator implements Generator on the Anthropic Messages API.
type ClaudeGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

var _ Generator = (*ClaudeGenerator)(nil)

func NewClaudeGenerator(cfg ClaudeConfig) *ClaudeGenerator {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	g := &ClaudeGenerator{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
	if g.model == "" {
		g.model = DefaultModel
	}
	if g.maxTokens <= 0 {
		g.maxTokens = DefaultMaxTokens
	}
	return g
}

func (g *ClaudeGenerator) GeneratePlan(ctx context.Context, req PlanRequest) (*domain.PlanDocument, error) {
	prompt, err := renderPlanPrompt(req)
	if err != nil {
		return nil, err
	}

	text, err := g.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	doc, err := domain.ParsePlanDocument([]byte(StripFences(text)))
	if err != nil {
		log.WithError(err).Warn("generated plan document rejected")
		return nil, err
	}
	return doc, nil
}

func (g *ClaudeGenerator) GenerateReview(ctx context.Context, req ReviewRequest) (*domain.ReviewResult, error) {
	prompt, err := renderReviewPrompt(req)
	if err != nil {
		return nil, err
	}

	text, err := g.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate review: %w", err)
	}

	var result domain.ReviewResult
	if err = json.Unmarshal([]byte(StripFences(text)), &result); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedReview, err)
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	return &result, nil
}

// complete sends a single user message and returns the concatenated text blocks.
func (g *ClaudeGenerator) complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}
	log.Debugf("generator call took %s, stop reason %q", time.Since(start), message.StopReason)

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
