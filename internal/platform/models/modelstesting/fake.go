package modelstesting

import (
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
	"github.com/sedori-labs/price-research/internal/platform/models"
)

// FakePriceRecord returns models.PriceRecord with fake data.
func FakePriceRecord(ops ...func(r *models.PriceRecord)) models.PriceRecord {
	statuses := []models.ListingStatus{models.StatusSold, models.StatusOnSale, models.StatusClosed}

	record := models.PriceRecord{
		Name:      faker.Sentence(),
		Price:     rand.Intn(50_000) + 100,
		Status:    statuses[rand.Intn(len(statuses))],
		Date:      faker.Date(),
		URL:       faker.URL(),
		Condition: faker.Word(),
		Source:    models.SourceMercari,
	}

	for _, op := range ops {
		op(&record)
	}

	return record
}

// FakeScrapingResult returns models.ScrapingResult with a random number of
// fake records per source. Every source key is always present.
func FakeScrapingResult(ops ...func(r models.ScrapingResult)) models.ScrapingResult {
	result := models.ScrapingResult{}
	for _, source := range models.AllSources() {
		records := make([]models.PriceRecord, 0, 5)
		for range rand.Intn(5) {
			records = append(records, FakePriceRecord(func(r *models.PriceRecord) { r.Source = source }))
		}
		result[source] = records
	}

	for _, op := range ops {
		op(result)
	}

	return result
}

// FakeJudgment returns models.AiJudgment with fake data.
func FakeJudgment(ops ...func(j *models.AiJudgment)) models.AiJudgment {
	judgment := models.AiJudgment{
		Recommendation:  models.RecommendationBuy,
		Reasoning:       faker.Paragraph(),
		EstimatedProfit: lo.ToPtr(rand.Intn(10_000)),
		EstimatedROI:    lo.ToPtr(rand.Float64() * 100),
		Risks:           []string{faker.Sentence(), faker.Sentence()},
	}

	for _, op := range ops {
		op(&judgment)
	}

	return judgment
}

// FakeResearchRun returns models.ResearchRun with fake data.
func FakeResearchRun(ops ...func(r *models.ResearchRun)) models.ResearchRun {
	prices := []int{rand.Intn(10_000) + 100, rand.Intn(10_000) + 100}

	run := models.ResearchRun{
		Keyword:         faker.Word(),
		IdentifiedBy:    models.IdentifiedByKeyword,
		PurchasePrice:   lo.ToPtr(rand.Intn(20_000)),
		SampleCount:     len(prices),
		MedianPrice:     prices[0],
		AveragePrice:    prices[0],
		MinPrice:        min(prices[0], prices[1]),
		MaxPrice:        max(prices[0], prices[1]),
		Recommendation:  models.RecommendationBuy,
		EstimatedProfit: lo.ToPtr(rand.Intn(10_000)),
		EstimatedROI:    lo.ToPtr(rand.Float64() * 100),
	}

	for _, op := range ops {
		op(&run)
	}

	return run
}

// FakeIdentification returns models.ProductIdentification with fake data.
func FakeIdentification(ops ...func(id *models.ProductIdentification)) models.ProductIdentification {
	identification := models.ProductIdentification{
		ProductName:   faker.Sentence(),
		SearchKeyword: faker.Word(),
		Category:      faker.Word(),
		ModelNumber:   faker.Word(),
		Confidence:    models.ConfidenceHigh,
	}

	for _, op := range ops {
		op(&identification)
	}

	return identification
}
