// Package aggregate fans a search keyword out to every configured price
// source and folds the results into one ScrapingResult plus summary
// statistics.
package aggregate

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/sedori-labs/price-research/internal/platform/models"
	"github.com/sedori-labs/price-research/internal/sources"
	"golang.org/x/sync/errgroup"
)

// Engine queries all sources concurrently with settle-all semantics:
// every source gets to finish (or fail) before the result is assembled,
// and no failure of one source is allowed to touch another's slot.
type Engine struct {
	sources       []sources.PriceSource
	limit         int
	sourceTimeout time.Duration
	logger        zerolog.Logger
}

// NewEngine returns an Engine searching the provided sources with at
// most limit records per source and an independent timeout per source
// call.
func NewEngine(srcs []sources.PriceSource, limit int, sourceTimeout time.Duration, logger zerolog.Logger) *Engine {
	return &Engine{
		sources:       srcs,
		limit:         limit,
		sourceTimeout: sourceTimeout,
		logger:        logger,
	}
}

// Aggregate searches every source for keyword concurrently and returns
// one entry per source. A source that failed, timed out or even panicked
// maps to an empty slice — the result shape never betrays which it was.
func (e *Engine) Aggregate(ctx context.Context, keyword string) models.ScrapingResult {
	settled := make([][]models.PriceRecord, len(e.sources))

	group, groupCtx := errgroup.WithContext(ctx)
	for ix, source := range e.sources {
		group.Go(func() error {
			settled[ix] = e.searchOne(groupCtx, source, keyword)
			return nil
		})
	}
	// Goroutines never return errors; Wait is purely the settle-all join.
	_ = group.Wait()

	result := models.ScrapingResult{}
	for ix, source := range e.sources {
		records := settled[ix]
		if records == nil {
			records = []models.PriceRecord{}
		}
		result[source.Name()] = records
	}

	return result
}

// searchOne runs a single source with its own deadline. Sources are
// no-throw by contract, but a buggy one must still not take the whole
// aggregation down, so panics are mapped to an empty slice too.
func (e *Engine) searchOne(ctx context.Context, source sources.PriceSource, keyword string) (records []models.PriceRecord) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().
				Str("source", string(source.Name())).
				Str("keyword", keyword).
				Msg(fmt.Sprintf("source panicked: %v", r))
			records = nil
		}
	}()

	searchCtx, cancel := context.WithTimeout(ctx, e.sourceTimeout)
	defer cancel()

	return source.Search(searchCtx, keyword, e.limit)
}

// Summarize computes price statistics over the union of all records
// across all sources, asking and realized prices alike. An empty union
// yields the all-zero summary.
func Summarize(result models.ScrapingResult) models.PriceSummary {
	prices := make([]int, 0, result.TotalRecords())
	for _, records := range result {
		for _, record := range records {
			prices = append(prices, record.Price)
		}
	}

	if len(prices) == 0 {
		return models.PriceSummary{}
	}

	sort.Ints(prices)

	sum := 0
	for _, price := range prices {
		sum += price
	}

	return models.PriceSummary{
		MedianPrice:  median(prices),
		AveragePrice: int(math.Round(float64(sum) / float64(len(prices)))),
		MinPrice:     prices[0],
		MaxPrice:     prices[len(prices)-1],
		SampleCount:  len(prices),
	}
}

// median of a sorted slice: middle element, or the rounded mean of the
// two middle elements for even counts.
func median(sorted []int) int {
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return int(math.Round(float64(sorted[mid-1]+sorted[mid]) / 2))
	}
	return sorted[mid]
}
