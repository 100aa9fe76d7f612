// Package storage persists research run traces in Postgres.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sedori-labs/price-research/internal/platform/models"
	"github.com/sedori-labs/price-research/internal/platform/storage/gen/postgres/public/table"

	pgmodels "github.com/sedori-labs/price-research/internal/platform/storage/gen/postgres/public/model"
)

// Postgres is storage for research runs.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB) Postgres {
	return Postgres{
		db: db,
	}
}

// SaveRun inserts the trace of one completed research run.
func (p Postgres) SaveRun(ctx context.Context, run models.ResearchRun) error {
	dbRun := ToDBRun(&run)

	columnList := table.ResearchRun.MutableColumns.Except(table.ResearchRun.CreatedAt)

	err := table.ResearchRun.INSERT(columnList).
		MODEL(dbRun).
		RETURNING(table.ResearchRun.ID).
		QueryContext(ctx, p.db, dbRun)
	if err != nil {
		return fmt.Errorf("can't insert research run into database: %w", err)
	}

	return nil
}

// RecentRuns returns up to limit newest research runs, newest first.
func (p Postgres) RecentRuns(ctx context.Context, limit int) ([]models.ResearchRun, error) {
	dbRuns := []pgmodels.ResearchRun{}

	err := table.ResearchRun.SELECT(table.ResearchRun.AllColumns).
		ORDER_BY(table.ResearchRun.CreatedAt.DESC()).
		LIMIT(int64(limit)).
		QueryContext(ctx, p.db, &dbRuns)
	if err != nil {
		return nil, fmt.Errorf("can't get research runs from database: %w", err)
	}

	runs := make([]models.ResearchRun, 0, len(dbRuns))
	for ix := range dbRuns {
		runs = append(runs, FromDBRun(&dbRuns[ix]))
	}

	return runs, nil
}
