// Package recommend turns aggregated price data into a purchase judgment
// by prompting a text-analysis service and lexically parsing its reply.
package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
	"github.com/sedori-labs/price-research/internal/platform/models"
)

// TextAnalyzer produces a free-form narrative for a system/user prompt pair.
type TextAnalyzer interface {
	Analyze(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

const analyzerMaxTokens = 2000

// ClaudeAnalyzer is a TextAnalyzer backed by the Anthropic Messages API.
type ClaudeAnalyzer struct {
	client anthropic.Client
	model  string
}

// NewClaudeAnalyzer creates ClaudeAnalyzer with given API key and model name.
func NewClaudeAnalyzer(apiKey string, model string) *ClaudeAnalyzer {
	return &ClaudeAnalyzer{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Analyze sends the prompts and concatenates the text blocks of the reply.
func (a *ClaudeAnalyzer) Analyze(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: analyzerMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating message: %w", err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return text.String(), nil
}

// Recommender obtains purchase judgments for aggregated price data.
type Recommender struct {
	analyzer TextAnalyzer
	logger   zerolog.Logger
}

// NewRecommender creates new Recommender with given analyzer.
func NewRecommender(analyzer TextAnalyzer, logger zerolog.Logger) *Recommender {
	return &Recommender{
		analyzer: analyzer,
		logger:   logger,
	}
}

// Recommend prompts the analysis service with the scraped listings and
// parses its narrative into a judgment. An analyzer failure is absorbed:
// the caller always gets a usable judgment, degraded to a cautious default
// when analysis is unavailable.
func (r *Recommender) Recommend(ctx context.Context, keyword string, purchasePrice *int, prices models.ScrapingResult) models.AiJudgment {
	userPrompt := buildResearchPrompt(keyword, purchasePrice, prices)

	text, err := r.analyzer.Analyze(ctx, researchSystemPrompt, userPrompt)
	if err != nil {
		r.logger.Warn().Err(err).Str("keyword", keyword).Msg("analysis service failed, returning default judgment")
		return defaultJudgment()
	}

	return parseJudgment(text)
}

func defaultJudgment() models.AiJudgment {
	return models.AiJudgment{
		Recommendation: models.RecommendationCautious,
		Reasoning:      "AI分析に失敗しました。価格データを参考に判断してください。",
		Risks:          []string{"AI分析が利用できませんでした"},
	}
}
