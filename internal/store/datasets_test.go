package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmarket-engine/internal/domain"
)

func fp(v float64) *float64 { return &v }

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Pool))
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := testDB(t)
	require.NoError(t, Migrate(db.Pool))
}

func TestSaveAndLoadDataset(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	jobs := []domain.JobRecord{
		{
			Company: "Acme", Title: "Engineer", Location: "Remote",
			Salary: "$85k", TimePosted: "3 days ago", Tags: "Easy Apply",
			SalaryMin: fp(85000), SalaryMax: fp(95000), DaysAgo: fp(3),
			Category: "Software Engineer", CategoryConfidence: 50,
			MatchedKeywords: "engineer", Country: "argentina",
		},
		{Company: "Beta", Title: "Designer", Country: "argentina"},
	}

	ds, err := SaveDataset(ctx, db.Pool, "jobs.txt", "txt", "argentina", jobs)
	require.NoError(t, err)
	assert.NotZero(t, ds.ID)
	assert.Equal(t, 2, ds.JobCount)
	assert.Equal(t, "txt", ds.Format)

	loaded, err := LoadDatasetJobs(ctx, db.Pool, ds.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, jobs[0], loaded[0])

	// Nullable columns survive as nil, not 0.
	assert.Nil(t, loaded[1].SalaryMin)
	assert.Nil(t, loaded[1].DaysAgo)
}

func TestLoadDatasetJobs_NotFound(t *testing.T) {
	db := testDB(t)
	_, err := LoadDatasetJobs(context.Background(), db.Pool, 999)
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}

func TestListDatasets_NewestFirst(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	first, err := SaveDataset(ctx, db.Pool, "a.csv", "csv", "argentina", nil)
	require.NoError(t, err)
	second, err := SaveDataset(ctx, db.Pool, "b.csv", "csv", "spain", nil)
	require.NoError(t, err)

	list, err := ListDatasets(ctx, db.Pool)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestDeleteDataset(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	ds, err := SaveDataset(ctx, db.Pool, "a.csv", "csv", "argentina",
		[]domain.JobRecord{{Company: "Acme", Title: "Engineer"}})
	require.NoError(t, err)

	require.NoError(t, DeleteDataset(ctx, db.Pool, ds.ID))

	_, err = LoadDatasetJobs(ctx, db.Pool, ds.ID)
	assert.ErrorIs(t, err, ErrDatasetNotFound)

	var orphans int
	require.NoError(t, db.Pool.QueryRow(
		`SELECT COUNT(*) FROM dataset_jobs WHERE dataset_id = ?;`, ds.ID).Scan(&orphans))
	assert.Zero(t, orphans)

	assert.ErrorIs(t, DeleteDataset(ctx, db.Pool, ds.ID), ErrDatasetNotFound)
}

func TestCleanupOldDatasets(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	old, err := SaveDataset(ctx, db.Pool, "old.csv", "csv", "argentina",
		[]domain.JobRecord{{Company: "Acme", Title: "Engineer"}})
	require.NoError(t, err)
	fresh, err := SaveDataset(ctx, db.Pool, "new.csv", "csv", "argentina", nil)
	require.NoError(t, err)

	stale := time.Now().UTC().AddDate(0, 0, -120).Format(time.RFC3339)
	_, err = db.Pool.Exec(`UPDATE datasets SET uploaded_at = ? WHERE id = ?;`, stale, old.ID)
	require.NoError(t, err)

	deleted, err := CleanupOldDatasets(ctx, db.Pool, 90)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	list, err := ListDatasets(ctx, db.Pool)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, fresh.ID, list[0].ID)

	var orphans int
	require.NoError(t, db.Pool.QueryRow(
		`SELECT COUNT(*) FROM dataset_jobs WHERE dataset_id = ?;`, old.ID).Scan(&orphans))
	assert.Zero(t, orphans)
}

func TestCleanupOldDatasets_DisabledKeepsAll(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, err := SaveDataset(ctx, db.Pool, "a.csv", "csv", "argentina", nil)
	require.NoError(t, err)

	deleted, err := CleanupOldDatasets(ctx, db.Pool, 0)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	list, err := ListDatasets(ctx, db.Pool)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
