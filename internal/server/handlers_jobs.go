package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/claritycareer/claritycareer/internal/db"
	"github.com/claritycareer/claritycareer/internal/jobsearch"
	"github.com/claritycareer/claritycareer/internal/server/middleware"
	"github.com/claritycareer/claritycareer/internal/types"
	"github.com/claritycareer/claritycareer/internal/watch"
)

// parseQuerySalary parses an optional salary bound query parameter.
// Missing or malformed values disable the bound.
func parseQuerySalary(r *http.Request, key string) *int64 {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return nil
	}
	val, err := strconv.ParseInt(valStr, 10, 64)
	if err != nil || val < 0 {
		return nil
	}
	return &val
}

// handleListJobs lists job listings matching the filter query parameters
// q, location, industry, min_salary and max_salary.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.db.ListJobs(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	criteria := jobsearch.Criteria{
		SearchTerm: r.URL.Query().Get("q"),
		Location:   r.URL.Query().Get("location"),
		Industry:   r.URL.Query().Get("industry"),
		MinSalary:  parseQuerySalary(r, "min_salary"),
		MaxSalary:  parseQuerySalary(r, "max_salary"),
	}
	matched := jobsearch.Filter(jobs, criteria)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  matched,
		"total": len(matched),
	})
}

// handleListIndustries returns the distinct industries across all listings,
// prefixed with the match-everything sentinel for filter dropdowns.
func (s *Server) handleListIndustries(w http.ResponseWriter, r *http.Request) {
	industries, err := s.db.ListIndustries(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"industries": append([]string{jobsearch.IndustryAll}, industries...),
	})
}

// handleGetJob retrieves a job listing by ID
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleCreateJob posts a new listing under one of the caller's companies.
// The company's name and logo are copied onto the listing at write time and
// never refreshed afterwards.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var form types.JobForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		s.formErrorResponse(w, err)
		return
	}

	companyID, err := uuid.Parse(form.CompanyID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	company, err := s.db.GetCompany(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if company == nil {
		notFound := &ErrCompanyNotFound{CompanyID: companyID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	if company.OwnerID == nil || *company.OwnerID != userID {
		denied := &ErrNotOwner{Resource: "company", ResourceID: companyID, UserID: userID}
		s.publishPermissionDenied(r.Context(), denied)
		s.errorResponse(w, HTTPStatus(denied), denied.Error())
		return
	}

	job := &db.Job{
		Title:              form.Title,
		CompanyID:          companyID,
		Company:            company.Name,
		CompanyLogoURL:     company.LogoURL,
		Location:           form.Location,
		SalaryMin:          form.SalaryMin,
		SalaryMax:          form.SalaryMax,
		IsSalaryNegotiable: form.IsSalaryNegotiable,
		Industry:           form.Industry,
		Description:        form.Description,
		WorkMode:           form.WorkMode,
		EmploymentType:     form.EmploymentType,
		PositionLevel:      form.PositionLevel,
	}

	jobID, err := s.db.CreateJob(r.Context(), job)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	created, err := s.db.GetJob(r.Context(), jobID)
	if err != nil || created == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load created job")
		return
	}

	s.publish(r.Context(), watch.TopicJobs, watch.NewEvent(watch.EventCreated, watch.TopicJobs, created))

	s.jsonResponse(w, http.StatusCreated, created)
}

// handleListPostedJobs lists the listings the employer posted across all of
// their companies.
func (s *Server) handleListPostedJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobs, err := s.db.ListJobsByOwner(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

// handleToggleSavedJob flips whether a listing is in the caller's saved
// set. Toggling is atomic, so rapid double-clicks land on a consistent
// final state.
func (s *Server) handleToggleSavedJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobID, err := uuid.Parse(r.PathValue("jobId"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	saved, err := s.db.ToggleSavedJob(r.Context(), userID, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobId": jobID,
		"saved": saved,
	})
}

// handleListSavedJobs returns the caller's saved listings, newest first.
func (s *Server) handleListSavedJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	jobs, err := s.db.ListJobsByIDs(r.Context(), user.SavedJobs)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

// formErrorResponse maps a form validation failure to a 400 with the field
// error message when one is attached.
func (s *Server) formErrorResponse(w http.ResponseWriter, err error) {
	var fieldErr *types.FieldError
	if errors.As(err, &fieldErr) {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{
			"error": fieldErr.Message,
			"field": fieldErr.Field,
		})
		return
	}
	s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
}

// publish sends an event on the watch broker, logging failures rather than
// failing the mutation that triggered them.
func (s *Server) publish(ctx context.Context, topic string, ev watch.Event) {
	if s.broker == nil {
		return
	}
	if err := s.broker.Publish(ctx, topic, ev); err != nil {
		log.Printf("[watch] Publish to %s failed: %v", topic, err)
	}
}

// publishPermissionDenied reports an ownership denial on the
// permission-errors topic alongside the 403 the caller receives.
func (s *Server) publishPermissionDenied(ctx context.Context, denied *ErrNotOwner) {
	ev := watch.NewEvent(watch.EventPermissionDenied, watch.TopicPermissionErrors, map[string]string{
		"resource":   denied.Resource,
		"resourceId": denied.ResourceID.String(),
		"userId":     denied.UserID.String(),
		"message":    denied.Error(),
	})
	s.publish(ctx, watch.TopicPermissionErrors, ev)
}
