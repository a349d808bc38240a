package server

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/claritycareer/claritycareer/internal/db"
)

// fakeStore is an in-memory Store for handler tests. It mirrors the
// database layer's contracts: nil results for missing rows, owner-scoped
// profile entry mutations, and status-only application updates.
type fakeStore struct {
	users           map[uuid.UUID]*db.User
	companies       map[uuid.UUID]*db.Company
	jobs            map[uuid.UUID]*db.Job
	applications    map[uuid.UUID]*db.Application
	workExperiences map[uuid.UUID]*db.WorkExperience
	educations      map[uuid.UUID]*db.Education
	reviews         []db.Review
	salaries        []db.SalaryEntry
	interviews      []db.Interview
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:           make(map[uuid.UUID]*db.User),
		companies:       make(map[uuid.UUID]*db.Company),
		jobs:            make(map[uuid.UUID]*db.Job),
		applications:    make(map[uuid.UUID]*db.Application),
		workExperiences: make(map[uuid.UUID]*db.WorkExperience),
		educations:      make(map[uuid.UUID]*db.Education),
	}
}

func (f *fakeStore) Close() {}

func (f *fakeStore) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	return f.users[userID], nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, userID uuid.UUID, _ db.ProfileUpdate) error {
	if f.users[userID] == nil {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

func (f *fakeStore) ToggleSavedJob(_ context.Context, userID, jobID uuid.UUID) (bool, error) {
	user := f.users[userID]
	if user == nil {
		return false, fmt.Errorf("user not found: %s", userID)
	}
	for i, saved := range user.SavedJobs {
		if saved == jobID {
			user.SavedJobs = append(user.SavedJobs[:i], user.SavedJobs[i+1:]...)
			return false, nil
		}
	}
	user.SavedJobs = append(user.SavedJobs, jobID)
	return true, nil
}

func (f *fakeStore) UpsertWorkExperience(_ context.Context, exp *db.WorkExperience) (uuid.UUID, error) {
	if exp.ID == uuid.Nil {
		exp.ID = uuid.New()
	}
	if existing, ok := f.workExperiences[exp.ID]; ok && existing.UserID != exp.UserID {
		return uuid.Nil, fmt.Errorf("%w: %s", db.ErrEntryNotFound, exp.ID)
	}
	clone := *exp
	f.workExperiences[exp.ID] = &clone
	return exp.ID, nil
}

func (f *fakeStore) DeleteWorkExperience(_ context.Context, userID, expID uuid.UUID) error {
	if existing, ok := f.workExperiences[expID]; ok && existing.UserID == userID {
		delete(f.workExperiences, expID)
		return nil
	}
	return fmt.Errorf("%w: %s", db.ErrEntryNotFound, expID)
}

func (f *fakeStore) UpsertEducation(_ context.Context, edu *db.Education) (uuid.UUID, error) {
	if edu.ID == uuid.Nil {
		edu.ID = uuid.New()
	}
	if existing, ok := f.educations[edu.ID]; ok && existing.UserID != edu.UserID {
		return uuid.Nil, fmt.Errorf("%w: %s", db.ErrEntryNotFound, edu.ID)
	}
	clone := *edu
	f.educations[edu.ID] = &clone
	return edu.ID, nil
}

func (f *fakeStore) DeleteEducation(_ context.Context, userID, eduID uuid.UUID) error {
	if existing, ok := f.educations[eduID]; ok && existing.UserID == userID {
		delete(f.educations, eduID)
		return nil
	}
	return fmt.Errorf("%w: %s", db.ErrEntryNotFound, eduID)
}

func (f *fakeStore) CreateCompany(_ context.Context, c *db.Company, ownerID uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()
	clone := *c
	clone.ID = id
	clone.OwnerID = &ownerID
	clone.CreatedAt = time.Now()
	f.companies[id] = &clone
	return id, nil
}

func (f *fakeStore) GetCompany(_ context.Context, companyID uuid.UUID) (*db.Company, error) {
	return f.companies[companyID], nil
}

func (f *fakeStore) ListCompanies(_ context.Context) ([]db.Company, error) {
	var out []db.Company
	for _, c := range f.companies {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeStore) ListCompaniesByOwner(_ context.Context, ownerID uuid.UUID) ([]db.Company, error) {
	var out []db.Company
	for _, c := range f.companies {
		if c.OwnerID != nil && *c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateJob(_ context.Context, j *db.Job) (uuid.UUID, error) {
	id := uuid.New()
	clone := *j
	clone.ID = id
	clone.PostedAt = time.Now()
	f.jobs[id] = &clone
	return id, nil
}

func (f *fakeStore) GetJob(_ context.Context, jobID uuid.UUID) (*db.Job, error) {
	return f.jobs[jobID], nil
}

func (f *fakeStore) ListJobs(_ context.Context) ([]db.Job, error) {
	var out []db.Job
	for _, j := range f.jobs {
		out = append(out, *j)
	}
	return out, nil
}

func (f *fakeStore) ListJobsByCompany(_ context.Context, companyID uuid.UUID) ([]db.Job, error) {
	var out []db.Job
	for _, j := range f.jobs {
		if j.CompanyID == companyID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeStore) ListJobsByOwner(_ context.Context, ownerID uuid.UUID) ([]db.Job, error) {
	var out []db.Job
	for _, j := range f.jobs {
		if company := f.companies[j.CompanyID]; company != nil && company.OwnerID != nil && *company.OwnerID == ownerID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeStore) ListJobsByIDs(_ context.Context, ids []uuid.UUID) ([]db.Job, error) {
	var out []db.Job
	for _, id := range ids {
		if j := f.jobs[id]; j != nil {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeStore) ListIndustries(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, j := range f.jobs {
		if !seen[j.Industry] {
			seen[j.Industry] = true
			out = append(out, j.Industry)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateApplication(_ context.Context, a *db.Application) (uuid.UUID, error) {
	id := uuid.New()
	clone := *a
	clone.ID = id
	clone.Status = db.StatusApplied
	clone.SubmittedAt = time.Now()
	f.applications[id] = &clone
	return id, nil
}

func (f *fakeStore) GetApplication(_ context.Context, applicationID uuid.UUID) (*db.Application, error) {
	return f.applications[applicationID], nil
}

func (f *fakeStore) ListApplicationsByApplicant(_ context.Context, applicantID uuid.UUID) ([]db.Application, error) {
	var out []db.Application
	for _, a := range f.applications {
		if a.ApplicantID == applicantID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) ListApplicationsByJob(_ context.Context, jobID uuid.UUID) ([]db.Application, error) {
	var out []db.Application
	for _, a := range f.applications {
		if a.JobID == jobID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateApplicationStatus(_ context.Context, applicationID uuid.UUID, status db.ApplicationStatus) error {
	application := f.applications[applicationID]
	if application == nil {
		return fmt.Errorf("application not found: %s", applicationID)
	}
	application.Status = status
	return nil
}

func (f *fakeStore) HasApplied(_ context.Context, applicantID, jobID uuid.UUID) (bool, error) {
	for _, a := range f.applications {
		if a.ApplicantID == applicantID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateReview(_ context.Context, r *db.Review) (uuid.UUID, error) {
	clone := *r
	clone.ID = uuid.New()
	clone.CreatedAt = time.Now()
	f.reviews = append(f.reviews, clone)
	return clone.ID, nil
}

func (f *fakeStore) ListReviews(_ context.Context, companyID uuid.UUID) ([]db.Review, error) {
	var out []db.Review
	for _, r := range f.reviews {
		if companyID == uuid.Nil || r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateSalaryEntry(_ context.Context, s *db.SalaryEntry) (uuid.UUID, error) {
	clone := *s
	clone.ID = uuid.New()
	clone.SubmittedAt = time.Now()
	f.salaries = append(f.salaries, clone)
	return clone.ID, nil
}

func (f *fakeStore) ListSalaryEntries(_ context.Context, companyID uuid.UUID) ([]db.SalaryEntry, error) {
	var out []db.SalaryEntry
	for _, s := range f.salaries {
		if companyID == uuid.Nil || s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateInterview(_ context.Context, i *db.Interview) (uuid.UUID, error) {
	clone := *i
	clone.ID = uuid.New()
	clone.CreatedAt = time.Now()
	f.interviews = append(f.interviews, clone)
	return clone.ID, nil
}

func (f *fakeStore) ListInterviews(_ context.Context, companyID uuid.UUID) ([]db.Interview, error) {
	var out []db.Interview
	for _, i := range f.interviews {
		if companyID == uuid.Nil || i.CompanyID == companyID {
			out = append(out, i)
		}
	}
	return out, nil
}
