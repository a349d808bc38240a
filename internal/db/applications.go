package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, job_id, company_id, job_title, company, company_logo_url,
	applicant_id, applicant_name, applicant_email, applicant_phone, applicant_portfolio,
	cover_letter, resume_url, status, submitted_at`

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.JobID, &a.CompanyID, &a.JobTitle, &a.Company,
		&a.CompanyLogoURL, &a.ApplicantID, &a.ApplicantName, &a.ApplicantEmail,
		&a.ApplicantPhone, &a.ApplicantPortfolio, &a.CoverLetter, &a.ResumeURL,
		&a.Status, &a.SubmittedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan application: %w", err)
	}
	return &a, nil
}

// CreateApplication inserts a new application with status "Applied" and
// returns its ID. The job snapshot fields must already be populated.
func (db *DB) CreateApplication(ctx context.Context, a *Application) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, company_id, job_title, company, company_logo_url,
		                           applicant_id, applicant_name, applicant_email, applicant_phone,
		                           applicant_portfolio, cover_letter, resume_url, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'Applied')
		 RETURNING id`,
		a.JobID, a.CompanyID, a.JobTitle, a.Company, a.CompanyLogoURL,
		a.ApplicantID, a.ApplicantName, a.ApplicantEmail, a.ApplicantPhone,
		a.ApplicantPortfolio, a.CoverLetter, a.ResumeURL,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create application: %w", err)
	}
	return id, nil
}

// GetApplication retrieves an application by ID; nil result means not found
func (db *DB) GetApplication(ctx context.Context, applicationID uuid.UUID) (*Application, error) {
	return scanApplication(db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, applicationID))
}

// ListApplicationsByApplicant retrieves a user's applications, newest first
func (db *DB) ListApplicationsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]Application, error) {
	return db.queryApplications(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE applicant_id = $1 ORDER BY submitted_at DESC`,
		applicantID)
}

// ListApplicationsByJob retrieves the applications for one listing, newest
// first
func (db *DB) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]Application, error) {
	return db.queryApplications(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY submitted_at DESC`,
		jobID)
}

// UpdateApplicationStatus updates exactly the status column of one
// application. Transitions are deliberately unrestricted.
func (db *DB) UpdateApplicationStatus(ctx context.Context, applicationID uuid.UUID, status ApplicationStatus) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1 WHERE id = $2`,
		status, applicationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", applicationID)
	}
	return nil
}

// HasApplied reports whether an applicant already applied to a job
func (db *DB) HasApplied(ctx context.Context, applicantID, jobID uuid.UUID) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE applicant_id = $1 AND job_id = $2)`,
		applicantID, jobID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check application: %w", err)
	}
	return exists, nil
}

func (db *DB) queryApplications(ctx context.Context, query string, args ...any) ([]Application, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var applications []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.CompanyID, &a.JobTitle, &a.Company,
			&a.CompanyLogoURL, &a.ApplicantID, &a.ApplicantName, &a.ApplicantEmail,
			&a.ApplicantPhone, &a.ApplicantPortfolio, &a.CoverLetter, &a.ResumeURL,
			&a.Status, &a.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, a)
	}
	return applications, nil
}
