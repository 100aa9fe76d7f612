package recommend

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/sedori-labs/price-research/internal/platform/models"
)

var (
	profitPattern = regexp.MustCompile(`(?i)(?:推定利益|estimated profit)[：:]\s*[¥￥]?([\d,]+)`)
	roiPattern    = regexp.MustCompile(`ROI[：:]\s*([\d.]+)%`)
	risksPattern  = regexp.MustCompile(`リスク・注意点[\s\S]*?(?:###|$)`)
)

// recommendationMarkers maps the fixed phrases the analysis service is
// instructed to emit onto recommendation tiers, strongest first. Scan order
// matters: a response discussing both 強気 and 慎重 counts as 強気.
var recommendationMarkers = []struct {
	marker string
	tier   models.Recommendation
}{
	{"強気", models.RecommendationStrongBuy},
	{"標準", models.RecommendationBuy},
	{"慎重", models.RecommendationCautious},
	{"見送り", models.RecommendationSkip},
}

// parseJudgment lexically extracts the structured judgment from the
// analysis service's narrative. It is a pure function of the text; fields
// without a match stay unset and the tier defaults to cautious.
func parseJudgment(text string) models.AiJudgment {
	judgment := models.AiJudgment{
		Recommendation: models.RecommendationCautious,
		Reasoning:      text,
		Risks:          extractRisks(text),
	}

	for _, m := range recommendationMarkers {
		if strings.Contains(text, m.marker) {
			judgment.Recommendation = m.tier
			break
		}
	}

	if match := profitPattern.FindStringSubmatch(text); match != nil {
		if profit, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", "")); err == nil {
			judgment.EstimatedProfit = lo.ToPtr(profit)
		}
	}

	if match := roiPattern.FindStringSubmatch(text); match != nil {
		if roi, err := strconv.ParseFloat(match[1], 64); err == nil {
			judgment.EstimatedROI = lo.ToPtr(roi)
		}
	}

	return judgment
}

// extractRisks collects the bullet lines of the リスク・注意点 section.
func extractRisks(text string) []string {
	section := risksPattern.FindString(text)
	if section == "" {
		return []string{}
	}

	risks := []string{}
	for _, line := range strings.Split(section, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "-") && !strings.HasPrefix(trimmed, "・") {
			continue
		}
		risk := strings.TrimSpace(strings.TrimLeft(trimmed, "-・ \t"))
		if risk != "" {
			risks = append(risks, risk)
		}
	}

	return risks
}
