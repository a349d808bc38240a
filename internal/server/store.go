package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/claritycareer/claritycareer/internal/db"
)

// Store is the data access surface the HTTP handlers depend on. *db.DB
// implements it; tests substitute an in-memory fake so handler behavior,
// including the events published after each mutation, can be exercised
// without a database.
type Store interface {
	Close()

	// Users and dashboard data
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, upd db.ProfileUpdate) error
	ToggleSavedJob(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	UpsertWorkExperience(ctx context.Context, exp *db.WorkExperience) (uuid.UUID, error)
	DeleteWorkExperience(ctx context.Context, userID, expID uuid.UUID) error
	UpsertEducation(ctx context.Context, edu *db.Education) (uuid.UUID, error)
	DeleteEducation(ctx context.Context, userID, eduID uuid.UUID) error

	// Companies
	CreateCompany(ctx context.Context, c *db.Company, ownerID uuid.UUID) (uuid.UUID, error)
	GetCompany(ctx context.Context, companyID uuid.UUID) (*db.Company, error)
	ListCompanies(ctx context.Context) ([]db.Company, error)
	ListCompaniesByOwner(ctx context.Context, ownerID uuid.UUID) ([]db.Company, error)

	// Jobs
	CreateJob(ctx context.Context, j *db.Job) (uuid.UUID, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*db.Job, error)
	ListJobs(ctx context.Context) ([]db.Job, error)
	ListJobsByCompany(ctx context.Context, companyID uuid.UUID) ([]db.Job, error)
	ListJobsByOwner(ctx context.Context, ownerID uuid.UUID) ([]db.Job, error)
	ListJobsByIDs(ctx context.Context, ids []uuid.UUID) ([]db.Job, error)
	ListIndustries(ctx context.Context) ([]string, error)

	// Applications
	CreateApplication(ctx context.Context, a *db.Application) (uuid.UUID, error)
	GetApplication(ctx context.Context, applicationID uuid.UUID) (*db.Application, error)
	ListApplicationsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]db.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]db.Application, error)
	UpdateApplicationStatus(ctx context.Context, applicationID uuid.UUID, status db.ApplicationStatus) error
	HasApplied(ctx context.Context, applicantID, jobID uuid.UUID) (bool, error)

	// Company insights
	CreateReview(ctx context.Context, r *db.Review) (uuid.UUID, error)
	ListReviews(ctx context.Context, companyID uuid.UUID) ([]db.Review, error)
	CreateSalaryEntry(ctx context.Context, s *db.SalaryEntry) (uuid.UUID, error)
	ListSalaryEntries(ctx context.Context, companyID uuid.UUID) ([]db.SalaryEntry, error)
	CreateInterview(ctx context.Context, i *db.Interview) (uuid.UUID, error)
	ListInterviews(ctx context.Context, companyID uuid.UUID) ([]db.Interview, error)
}
