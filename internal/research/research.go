// Package research orchestrates one research request end to end:
// keyword resolution, parallel price aggregation, summarization,
// recommendation and a best-effort persisted trace.
package research

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sedori-labs/price-research/internal/aggregate"
	"github.com/sedori-labs/price-research/internal/identify"
	"github.com/sedori-labs/price-research/internal/platform/models"
)

//go:generate mockery --name Identifier --filename identifier.go
//go:generate mockery --name Aggregator --filename aggregator.go
//go:generate mockery --name Recommender --filename recommender.go
//go:generate mockery --name Recorder --filename recorder.go

// Identifier resolves the search keyword of a request.
type Identifier interface {
	Identify(ctx context.Context, request models.ResearchRequest) (identify.Resolution, error)
}

// Aggregator collects price records from all configured sources.
type Aggregator interface {
	Aggregate(ctx context.Context, keyword string) models.ScrapingResult
}

// Recommender turns aggregated prices into a purchase judgment.
type Recommender interface {
	Recommend(ctx context.Context, keyword string, purchasePrice *int, prices models.ScrapingResult) models.AiJudgment
}

// Recorder persists traces of completed research runs.
type Recorder interface {
	SaveRun(ctx context.Context, run models.ResearchRun) error
}

// Option is custom configuration of Researcher.
type Option func(r *Researcher)

// Researcher runs the full research pipeline.
type Researcher struct {
	identifier  Identifier
	aggregator  Aggregator
	recommender Recommender
	recorder    Recorder
	deadline    time.Duration
	logger      zerolog.Logger
}

// NewResearcher returns new Researcher. The recorder is optional and is
// set through WithRecorder.
func NewResearcher(
	identifier Identifier,
	aggregator Aggregator,
	recommender Recommender,
	deadline time.Duration,
	logger zerolog.Logger,
	ops ...Option,
) *Researcher {
	res := &Researcher{
		identifier:  identifier,
		aggregator:  aggregator,
		recommender: recommender,
		deadline:    deadline,
		logger:      logger,
	}

	for _, op := range ops {
		op(res)
	}

	return res
}

// Research runs the pipeline for one request. Source failures and
// recommendation failures degrade the result but never fail it; the only
// returned errors are keyword-resolution failures.
func (r *Researcher) Research(ctx context.Context, request models.ResearchRequest) (models.ResearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.deadline)
	defer cancel()

	resolution, err := r.identifier.Identify(ctx, request)
	if err != nil {
		return models.ResearchResult{}, fmt.Errorf("can't resolve search keyword: %w", err)
	}

	prices := r.aggregator.Aggregate(ctx, resolution.Keyword)
	summary := aggregate.Summarize(prices)

	r.logger.Info().
		Str("keyword", resolution.Keyword).
		Int("records", prices.TotalRecords()).
		Int("medianPrice", summary.MedianPrice).
		Msg("aggregated prices")

	judgment := r.recommender.Recommend(ctx, resolution.Keyword, request.PurchasePrice, prices)

	result := models.ResearchResult{
		Product:    buildProduct(resolution),
		Prices:     prices,
		Summary:    summary,
		AiJudgment: judgment,
	}

	r.recordRun(ctx, request, resolution, summary, judgment)

	return result, nil
}

// buildProduct assembles the response product block. On the keyword path
// the product name is the keyword itself; on the image path the
// identification supplies name and metadata.
func buildProduct(resolution identify.Resolution) models.ResearchProduct {
	product := models.ResearchProduct{
		Name:         resolution.Keyword,
		IdentifiedBy: resolution.IdentifiedBy,
	}

	if id := resolution.Identification; id != nil {
		product.Name = id.ProductName
		product.Category = id.Category
		product.ModelNumber = id.ModelNumber
		product.Confidence = id.Confidence
	}

	return product
}

// recordRun persists the run trace when a recorder is configured.
// Recording is best effort, a storage failure only logs.
func (r *Researcher) recordRun(
	ctx context.Context,
	request models.ResearchRequest,
	resolution identify.Resolution,
	summary models.PriceSummary,
	judgment models.AiJudgment,
) {
	if r.recorder == nil {
		return
	}

	run := models.ResearchRun{
		Keyword:         resolution.Keyword,
		IdentifiedBy:    resolution.IdentifiedBy,
		PurchasePrice:   request.PurchasePrice,
		SampleCount:     summary.SampleCount,
		MedianPrice:     summary.MedianPrice,
		AveragePrice:    summary.AveragePrice,
		MinPrice:        summary.MinPrice,
		MaxPrice:        summary.MaxPrice,
		Recommendation:  judgment.Recommendation,
		EstimatedProfit: judgment.EstimatedProfit,
		EstimatedROI:    judgment.EstimatedROI,
	}

	if err := r.recorder.SaveRun(ctx, run); err != nil {
		r.logger.Warn().Err(err).Str("keyword", run.Keyword).Msg("can't record research run")
	}
}

// WithRecorder sets Researcher's run trace recorder.
func WithRecorder(recorder Recorder) Option {
	return func(r *Researcher) {
		r.recorder = recorder
	}
}
