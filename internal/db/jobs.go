package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, title, company_id, company, company_logo_url, location,
	salary_min, salary_max, is_salary_negotiable, industry, description,
	work_mode, employment_type, position_level, posted_at`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.Title, &j.CompanyID, &j.Company, &j.CompanyLogoURL,
		&j.Location, &j.SalaryMin, &j.SalaryMax, &j.IsSalaryNegotiable, &j.Industry,
		&j.Description, &j.WorkMode, &j.EmploymentType, &j.PositionLevel, &j.PostedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}
	return &j, nil
}

// CreateJob inserts a new job listing and returns its ID. The caller is
// responsible for denormalizing the company snapshot fields beforehand.
func (db *DB) CreateJob(ctx context.Context, j *Job) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, company_id, company, company_logo_url, location,
		                   salary_min, salary_max, is_salary_negotiable, industry,
		                   description, work_mode, employment_type, position_level)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id`,
		j.Title, j.CompanyID, j.Company, j.CompanyLogoURL, j.Location,
		j.SalaryMin, j.SalaryMax, j.IsSalaryNegotiable, j.Industry,
		j.Description, j.WorkMode, j.EmploymentType, j.PositionLevel,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}
	return id, nil
}

// GetJob retrieves a job by ID; nil result means not found
func (db *DB) GetJob(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	return scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID))
}

// ListJobs retrieves all job listings, newest first
func (db *DB) ListJobs(ctx context.Context) ([]Job, error) {
	return db.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY posted_at DESC`)
}

// ListJobsByCompany retrieves listings for one company, newest first
func (db *DB) ListJobsByCompany(ctx context.Context, companyID uuid.UUID) ([]Job, error) {
	return db.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE company_id = $1 ORDER BY posted_at DESC`, companyID)
}

// ListJobsByOwner retrieves the listings an employer posted across all of
// their companies, newest first
func (db *DB) ListJobsByOwner(ctx context.Context, ownerID uuid.UUID) ([]Job, error) {
	return db.queryJobs(ctx,
		`SELECT j.id, j.title, j.company_id, j.company, j.company_logo_url, j.location,
		        j.salary_min, j.salary_max, j.is_salary_negotiable, j.industry, j.description,
		        j.work_mode, j.employment_type, j.position_level, j.posted_at
		 FROM jobs j
		 JOIN companies c ON c.id = j.company_id
		 WHERE c.owner_id = $1
		 ORDER BY j.posted_at DESC`, ownerID)
}

// ListJobsByIDs retrieves the listings whose IDs are in ids, preserving the
// newest-first ordering. Used for the saved-jobs view.
func (db *DB) ListJobsByIDs(ctx context.Context, ids []uuid.UUID) ([]Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return db.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = ANY($1) ORDER BY posted_at DESC`, ids)
}

// ListIndustries returns the distinct industry values across all listings
func (db *DB) ListIndustries(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT DISTINCT industry FROM jobs ORDER BY industry`)
	if err != nil {
		return nil, fmt.Errorf("failed to list industries: %w", err)
	}
	defer rows.Close()

	var industries []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan industry: %w", err)
		}
		industries = append(industries, s)
	}
	return industries, nil
}

func (db *DB) queryJobs(ctx context.Context, query string, args ...any) ([]Job, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.CompanyID, &j.Company, &j.CompanyLogoURL,
			&j.Location, &j.SalaryMin, &j.SalaryMax, &j.IsSalaryNegotiable, &j.Industry,
			&j.Description, &j.WorkMode, &j.EmploymentType, &j.PositionLevel, &j.PostedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}
