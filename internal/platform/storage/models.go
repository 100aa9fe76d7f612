package storage

import (
	"github.com/samber/lo"
	"github.com/sedori-labs/price-research/internal/platform/models"

	pgmodels "github.com/sedori-labs/price-research/internal/platform/storage/gen/postgres/public/model"
)

//go:generate make -C ../../../ generate-db

// ToDBRun converts models.ResearchRun into postgres research run model.
func ToDBRun(run *models.ResearchRun) *pgmodels.ResearchRun {
	dbRun := pgmodels.ResearchRun{
		ID:             int32(run.ID),
		CreatedAt:      run.CreatedAt,
		Keyword:        run.Keyword,
		IdentifiedBy:   string(run.IdentifiedBy),
		SampleCount:    int32(run.SampleCount),
		MedianPrice:    int32(run.MedianPrice),
		AveragePrice:   int32(run.AveragePrice),
		MinPrice:       int32(run.MinPrice),
		MaxPrice:       int32(run.MaxPrice),
		Recommendation: string(run.Recommendation),
		EstimatedRoi:   run.EstimatedROI,
	}

	if run.PurchasePrice != nil {
		dbRun.PurchasePrice = lo.ToPtr(int32(*run.PurchasePrice))
	}
	if run.EstimatedProfit != nil {
		dbRun.EstimatedProfit = lo.ToPtr(int32(*run.EstimatedProfit))
	}

	return &dbRun
}

// FromDBRun converts postgres research run model into models.ResearchRun.
func FromDBRun(dbRun *pgmodels.ResearchRun) models.ResearchRun {
	run := models.ResearchRun{
		ID:             int(dbRun.ID),
		CreatedAt:      dbRun.CreatedAt,
		Keyword:        dbRun.Keyword,
		IdentifiedBy:   models.IdentifiedBy(dbRun.IdentifiedBy),
		SampleCount:    int(dbRun.SampleCount),
		MedianPrice:    int(dbRun.MedianPrice),
		AveragePrice:   int(dbRun.AveragePrice),
		MinPrice:       int(dbRun.MinPrice),
		MaxPrice:       int(dbRun.MaxPrice),
		Recommendation: models.Recommendation(dbRun.Recommendation),
		EstimatedROI:   dbRun.EstimatedRoi,
	}

	if dbRun.PurchasePrice != nil {
		run.PurchasePrice = lo.ToPtr(int(*dbRun.PurchasePrice))
	}
	if dbRun.EstimatedProfit != nil {
		run.EstimatedProfit = lo.ToPtr(int(*dbRun.EstimatedProfit))
	}

	return run
}
