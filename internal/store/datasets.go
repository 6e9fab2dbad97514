package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobmarket-engine/internal/domain"
)

var ErrDatasetNotFound = errors.New("dataset not found")

// Dataset is one upload-history entry.
type Dataset struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Format     string `json:"format"`
	Country    string `json:"country"`
	JobCount   int    `json:"job_count"`
	UploadedAt string `json:"uploaded_at"`
}

// SaveDataset records an upload and its parsed rows in one transaction.
func SaveDataset(ctx context.Context, db *sql.DB, name, format, country string, jobs []domain.JobRecord) (Dataset, error) {
	ds := Dataset{
		Name:       name,
		Format:     format,
		Country:    country,
		JobCount:   len(jobs),
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Dataset{}, fmt.Errorf("save dataset: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
INSERT INTO datasets(name, format, country, job_count, uploaded_at)
VALUES(?,?,?,?,?);`,
		ds.Name, ds.Format, ds.Country, ds.JobCount, ds.UploadedAt)
	if err != nil {
		return Dataset{}, fmt.Errorf("save dataset: %w", err)
	}
	ds.ID, _ = res.LastInsertId()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO dataset_jobs(
  dataset_id, company, title, location, salary, time_posted, tags,
  salary_min, salary_max, days_ago,
  category, category_confidence, matched_keywords, country)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		return Dataset{}, fmt.Errorf("save dataset: %w", err)
	}
	defer stmt.Close()

	for _, j := range jobs {
		if _, err := stmt.ExecContext(ctx,
			ds.ID, j.Company, j.Title, j.Location, j.Salary, j.TimePosted, j.Tags,
			nullFloat(j.SalaryMin), nullFloat(j.SalaryMax), nullFloat(j.DaysAgo),
			j.Category, j.CategoryConfidence, j.MatchedKeywords, j.Country,
		); err != nil {
			return Dataset{}, fmt.Errorf("save dataset row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Dataset{}, fmt.Errorf("save dataset: %w", err)
	}
	return ds, nil
}

func ListDatasets(ctx context.Context, db *sql.DB) ([]Dataset, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, name, format, country, job_count, uploaded_at
FROM datasets
ORDER BY uploaded_at DESC, id DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Dataset
	for rows.Next() {
		var d Dataset
		if err := rows.Scan(&d.ID, &d.Name, &d.Format, &d.Country, &d.JobCount, &d.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// LoadDatasetJobs rebuilds the record collection of one upload. Null numeric
// columns come back as nil fields, exactly as stored.
func LoadDatasetJobs(ctx context.Context, db *sql.DB, id int64) ([]domain.JobRecord, error) {
	var exists int
	if err := db.QueryRowContext(ctx, `SELECT 1 FROM datasets WHERE id = ?;`, id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDatasetNotFound
		}
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
SELECT company, title, location, salary, time_posted, tags,
       salary_min, salary_max, days_ago,
       category, category_confidence, matched_keywords, country
FROM dataset_jobs
WHERE dataset_id = ?
ORDER BY id;`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JobRecord
	for rows.Next() {
		var j domain.JobRecord
		var salaryMin, salaryMax, daysAgo sql.NullFloat64
		if err := rows.Scan(
			&j.Company, &j.Title, &j.Location, &j.Salary, &j.TimePosted, &j.Tags,
			&salaryMin, &salaryMax, &daysAgo,
			&j.Category, &j.CategoryConfidence, &j.MatchedKeywords, &j.Country,
		); err != nil {
			return nil, err
		}
		j.SalaryMin = fromNull(salaryMin)
		j.SalaryMax = fromNull(salaryMax)
		j.DaysAgo = fromNull(daysAgo)
		out = append(out, j)
	}
	return out, rows.Err()
}

func DeleteDataset(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM dataset_jobs WHERE dataset_id = ?;`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE id = ?;`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDatasetNotFound
	}
	return tx.Commit()
}

// CleanupOldDatasets drops uploads older than maxAgeDays along with their
// rows. A zero or negative age keeps everything.
func CleanupOldDatasets(ctx context.Context, db *sql.DB, maxAgeDays int) (deleted int64, err error) {
	if maxAgeDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -maxAgeDays).Format(time.RFC3339)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("cleanup datasets: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
DELETE FROM dataset_jobs
WHERE dataset_id IN (SELECT id FROM datasets WHERE uploaded_at < ?);`, cutoff); err != nil {
		return 0, fmt.Errorf("cleanup datasets: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE uploaded_at < ?;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup datasets: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, tx.Commit()
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func fromNull(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
