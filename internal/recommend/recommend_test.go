package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/sedori-labs/price-research/internal/platform/models"
	"github.com/sedori-labs/price-research/internal/platform/models/modelstesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const analysisText = `### 商品分析
限定生産のフィギュアで代替不可能性が高い。

### 仕入れ推奨度
**推奨度: 強気**

### 推定利益
- 推定売価: ¥15,000
- 推定利益: ¥12,000
- ROI: 24.5%

### リスク・注意点
- 再販リスクあり
・ 箱の状態による価格差が大きい

### まとめ
以上。`

type stubAnalyzer struct {
	text string
	err  error
}

func (a stubAnalyzer) Analyze(_ context.Context, _ string, _ string) (string, error) {
	return a.text, a.err
}

func TestUnitParseJudgment(t *testing.T) {
	tests := map[string]struct {
		text string
		want models.AiJudgment
	}{
		"full analysis": {
			text: analysisText,
			want: models.AiJudgment{
				Recommendation:  models.RecommendationStrongBuy,
				Reasoning:       analysisText,
				EstimatedProfit: lo.ToPtr(12000),
				EstimatedROI:    lo.ToPtr(24.5),
				Risks:           []string{"再販リスクあり", "箱の状態による価格差が大きい"},
			},
		},
		"english labels": {
			text: "推奨度: 標準\nestimated profit: ¥12,000\nROI: 24.5%",
			want: models.AiJudgment{
				Recommendation:  models.RecommendationBuy,
				Reasoning:       "推奨度: 標準\nestimated profit: ¥12,000\nROI: 24.5%",
				EstimatedProfit: lo.ToPtr(12000),
				EstimatedROI:    lo.ToPtr(24.5),
				Risks:           []string{},
			},
		},
		"skip marker": {
			text: "相場が下落中のため見送りを推奨します。",
			want: models.AiJudgment{
				Recommendation: models.RecommendationSkip,
				Reasoning:      "相場が下落中のため見送りを推奨します。",
				Risks:          []string{},
			},
		},
		"no markers defaults to cautious": {
			text: "データが少なく判断できません。",
			want: models.AiJudgment{
				Recommendation: models.RecommendationCautious,
				Reasoning:      "データが少なく判断できません。",
				Risks:          []string{},
			},
		},
		"stronger marker wins": {
			text: "強気で行けるが、状態次第では慎重に。",
			want: models.AiJudgment{
				Recommendation: models.RecommendationStrongBuy,
				Reasoning:      "強気で行けるが、状態次第では慎重に。",
				Risks:          []string{},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			judgment := parseJudgment(tt.text)

			assert.Equal(t, tt.want, judgment, "should extract correct judgment")
		})
	}
}

func TestUnitParseJudgmentIsPure(t *testing.T) {
	first := parseJudgment(analysisText)
	second := parseJudgment(analysisText)

	assert.Equal(t, first, second, "repeated extraction should yield identical judgments")
	require.NotNil(t, first.EstimatedProfit, "profit should be extracted")
	assert.Equal(t, 12000, *first.EstimatedProfit, "should extract correct profit")
	require.NotNil(t, first.EstimatedROI, "ROI should be extracted")
	assert.InDelta(t, 24.5, *first.EstimatedROI, 1e-9, "should extract correct ROI")
}

func TestUnitBuildResearchPrompt(t *testing.T) {
	prices := models.ScrapingResult{
		models.SourceMercari: {
			modelstesting.FakePriceRecord(func(r *models.PriceRecord) {
				r.Name = "レアフィギュア 限定版"
				r.Price = 12500
				r.Date = "2026-08-01"
			}),
			modelstesting.FakePriceRecord(func(r *models.PriceRecord) {
				r.Name = "レアフィギュア"
				r.Price = 9800
				r.Date = "2026-07-15"
			}),
		},
		models.SourceYahooAuction: {},
		models.SourceSurugaya: {
			modelstesting.FakePriceRecord(func(r *models.PriceRecord) {
				r.Name = "レアフィギュア 中古"
				r.Price = 8000
			}),
		},
		models.SourceMandarake:  {},
		models.SourceLashinbang: {},
	}

	prompt := buildResearchPrompt("レアフィギュア", lo.ToPtr(6000), prices)

	assert.Contains(t, prompt, "キーワード: 「レアフィギュア」", "should carry the keyword")
	assert.Contains(t, prompt, "仕入れ値: ¥6,000", "should carry the purchase price")
	assert.Contains(t, prompt, "## メルカリ sold（2件）", "should label the mercari section")
	assert.Contains(t, prompt, "- ¥12,500 | レアフィギュア 限定版 | 2026-08-01", "should list mercari records")
	assert.Contains(t, prompt, "平均: ¥11,150 / 中央値: ¥12,500", "should compute mercari stats")
	assert.Contains(t, prompt, "## ヤフオク落札\nデータなし", "empty primary source should say no data")
	assert.Contains(t, prompt, "## 駿河屋（1件）", "should label the surugaya section")
	assert.NotContains(t, prompt, "まんだらけ", "empty shop sources should be omitted")
	assert.NotContains(t, prompt, "らしんばん", "empty shop sources should be omitted")
}

func TestUnitBuildResearchPromptWithoutPurchasePrice(t *testing.T) {
	prompt := buildResearchPrompt("keyword", nil, models.ScrapingResult{})

	assert.NotContains(t, prompt, "仕入れ値", "should omit the purchase price line")
	assert.Contains(t, prompt, "## メルカリ sold\nデータなし", "missing source key should read as no data")
}

func TestUnitBuildResearchPromptCapsListings(t *testing.T) {
	records := make([]models.PriceRecord, 30)
	for i := range records {
		records[i] = modelstesting.FakePriceRecord(func(r *models.PriceRecord) {
			r.Name = "item"
			r.Date = ""
		})
	}

	prompt := buildResearchPrompt("keyword", nil, models.ScrapingResult{
		models.SourceMercari: records,
	})

	assert.Contains(t, prompt, "## メルカリ sold（30件）", "section header should count all records")
	assert.Equal(t, 20, strings.Count(prompt, "| item"), "should list at most 20 records")
}

func TestUnitRecommendReturnsDefaultOnAnalyzerFailure(t *testing.T) {
	recommender := NewRecommender(stubAnalyzer{err: errors.New("service unavailable")}, zerolog.Nop())

	judgment := recommender.Recommend(context.TODO(), "keyword", nil, modelstesting.FakeScrapingResult())

	assert.Equal(t, models.RecommendationCautious, judgment.Recommendation, "should fall back to cautious")
	assert.NotEmpty(t, judgment.Reasoning, "should explain the degraded judgment")
	assert.Len(t, judgment.Risks, 1, "should carry a single synthetic risk")
	assert.Nil(t, judgment.EstimatedProfit, "should not fabricate a profit estimate")
}

func TestUnitRecommendParsesAnalyzerText(t *testing.T) {
	recommender := NewRecommender(stubAnalyzer{text: analysisText}, zerolog.Nop())

	judgment := recommender.Recommend(context.TODO(), "keyword", lo.ToPtr(6000), modelstesting.FakeScrapingResult())

	assert.Equal(t, models.RecommendationStrongBuy, judgment.Recommendation, "should extract the recommendation tier")
	assert.Equal(t, analysisText, judgment.Reasoning, "should keep the full narrative as reasoning")
}
