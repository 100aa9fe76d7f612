package storagetesting

import (
	"database/sql"
	"os"
	"testing"

	"github.com/sedori-labs/price-research/internal/platform/storage/gen/postgres/public/table"

	"github.com/go-jet/jet/v2/qrm"
	pgmodels "github.com/sedori-labs/price-research/internal/platform/storage/gen/postgres/public/model"

	_ "github.com/lib/pq"
)

// Open opens connection to DB. Skips the test when DATABASE_URL is unset.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("no database URL provided via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// InsertRuns is a helper test function to insert research runs.
func InsertRuns(t *testing.T, exc qrm.Executable, runs ...pgmodels.ResearchRun) {
	t.Helper()

	if len(runs) == 0 {
		return
	}

	toInsert := make([]pgmodels.ResearchRun, 0, len(runs))
	toInsert = append(toInsert, runs...)

	_, err := table.ResearchRun.INSERT(table.ResearchRun.AllColumns).MODELS(toInsert).Exec(exc)
	if err != nil {
		t.Fatal("can't insert research runs", err)
	}
}

// GetRuns is a helper test function to get all research runs.
func GetRuns(t *testing.T, queryable qrm.Queryable) []pgmodels.ResearchRun {
	t.Helper()

	runs := []pgmodels.ResearchRun{}
	err := table.ResearchRun.SELECT(table.ResearchRun.AllColumns).
		WHERE(table.ResearchRun.ID.IS_NOT_NULL()).
		Query(queryable, &runs)
	if err != nil {
		t.Fatal("can't get research runs", err)
	}

	return runs
}

// CleanupData is a helper test function to delete all research runs.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	_, err := table.ResearchRun.DELETE().WHERE(table.ResearchRun.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete research runs data", err)
	}
}
