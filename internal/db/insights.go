package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Review Methods
// -----------------------------------------------------------------------------

// CreateReview inserts a company review and returns its ID
func (db *DB) CreateReview(ctx context.Context, r *Review) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO reviews (company_id, company, author, user_id, rating, title, pros, cons, culture_insight)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		r.CompanyID, r.Company, r.Author, r.UserID, r.Rating, r.Title, r.Pros, r.Cons, r.CultureInsight,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create review: %w", err)
	}
	return id, nil
}

// ListReviews retrieves reviews, newest first. companyID of uuid.Nil lists
// all companies.
func (db *DB) ListReviews(ctx context.Context, companyID uuid.UUID) ([]Review, error) {
	query := `SELECT id, company_id, company, author, user_id, rating, title, pros, cons, culture_insight, created_at
		FROM reviews`
	args := []any{}
	if companyID != uuid.Nil {
		query += ` WHERE company_id = $1`
		args = append(args, companyID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.CompanyID, &r.Company, &r.Author, &r.UserID,
			&r.Rating, &r.Title, &r.Pros, &r.Cons, &r.CultureInsight, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, nil
}

// -----------------------------------------------------------------------------
// Salary Methods
// -----------------------------------------------------------------------------

// CreateSalaryEntry inserts a salary data point and returns its ID
func (db *DB) CreateSalaryEntry(ctx context.Context, s *SalaryEntry) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO salaries (job_title, company_id, company, location, salary, years_of_experience, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		s.JobTitle, s.CompanyID, s.Company, s.Location, s.Salary, s.YearsOfExperience, s.UserID,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create salary entry: %w", err)
	}
	return id, nil
}

// ListSalaryEntries retrieves salary entries, newest first. companyID of
// uuid.Nil lists all companies.
func (db *DB) ListSalaryEntries(ctx context.Context, companyID uuid.UUID) ([]SalaryEntry, error) {
	query := `SELECT id, job_title, company_id, company, location, salary, years_of_experience, user_id, submitted_at
		FROM salaries`
	args := []any{}
	if companyID != uuid.Nil {
		query += ` WHERE company_id = $1`
		args = append(args, companyID)
	}
	query += ` ORDER BY submitted_at DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary entries: %w", err)
	}
	defer rows.Close()

	var entries []SalaryEntry
	for rows.Next() {
		var s SalaryEntry
		if err := rows.Scan(&s.ID, &s.JobTitle, &s.CompanyID, &s.Company, &s.Location,
			&s.Salary, &s.YearsOfExperience, &s.UserID, &s.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan salary entry: %w", err)
		}
		entries = append(entries, s)
	}
	return entries, nil
}

// GetSalaryStats computes salary aggregates for a company. Returns nil
// when the company has no salary submissions.
func (db *DB) GetSalaryStats(ctx context.Context, companyID uuid.UUID) (*SalaryStats, error) {
	var s SalaryStats
	err := db.pool.QueryRow(ctx,
		`SELECT company_id, company, COUNT(*), ROUND(AVG(salary))::BIGINT, MIN(salary), MAX(salary)
		 FROM salaries
		 WHERE company_id = $1
		 GROUP BY company_id, company`,
		companyID,
	).Scan(&s.CompanyID, &s.Company, &s.SampleCount, &s.AverageSalary, &s.MinSalary, &s.MaxSalary)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to compute salary stats: %w", err)
	}
	return &s, nil
}

// ListSalaryStats computes salary aggregates for every company with at
// least one submission, highest average first.
func (db *DB) ListSalaryStats(ctx context.Context) ([]SalaryStats, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT company_id, company, COUNT(*), ROUND(AVG(salary))::BIGINT, MIN(salary), MAX(salary)
		 FROM salaries
		 GROUP BY company_id, company
		 ORDER BY ROUND(AVG(salary))::BIGINT DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary stats: %w", err)
	}
	defer rows.Close()

	var stats []SalaryStats
	for rows.Next() {
		var s SalaryStats
		if err := rows.Scan(&s.CompanyID, &s.Company, &s.SampleCount, &s.AverageSalary, &s.MinSalary, &s.MaxSalary); err != nil {
			return nil, fmt.Errorf("failed to scan salary stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, nil
}

// -----------------------------------------------------------------------------
// Interview Methods
// -----------------------------------------------------------------------------

// CreateInterview inserts an interview experience and returns its ID
func (db *DB) CreateInterview(ctx context.Context, i *Interview) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO interviews (company_id, company, job_title, author, user_id, difficulty, questions, experience)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		i.CompanyID, i.Company, i.JobTitle, i.Author, i.UserID, i.Difficulty, i.Questions, i.Experience,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create interview: %w", err)
	}
	return id, nil
}

// ListInterviews retrieves interview experiences, newest first. companyID
// of uuid.Nil lists all companies.
func (db *DB) ListInterviews(ctx context.Context, companyID uuid.UUID) ([]Interview, error) {
	query := `SELECT id, company_id, company, job_title, author, user_id, difficulty, questions, experience, created_at
		FROM interviews`
	args := []any{}
	if companyID != uuid.Nil {
		query += ` WHERE company_id = $1`
		args = append(args, companyID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer rows.Close()

	var interviews []Interview
	for rows.Next() {
		var i Interview
		if err := rows.Scan(&i.ID, &i.CompanyID, &i.Company, &i.JobTitle, &i.Author,
			&i.UserID, &i.Difficulty, &i.Questions, &i.Experience, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		interviews = append(interviews, i)
	}
	return interviews, nil
}
