package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/claritycareer/claritycareer/internal/db"
	"github.com/claritycareer/claritycareer/internal/server/middleware"
	"github.com/claritycareer/claritycareer/internal/types"
	"github.com/claritycareer/claritycareer/internal/watch"
)

// handleSubmitApplication applies the caller to a listing. The job title,
// company name, and logo are snapshotted onto the application so later
// edits to the listing don't rewrite application history.
func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var form types.ApplicationForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		s.formErrorResponse(w, err)
		return
	}

	job, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		notFound := &ErrJobNotFound{JobID: jobID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	applied, err := s.db.HasApplied(r.Context(), userID, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if applied {
		dup := &ErrAlreadyApplied{JobID: jobID}
		s.errorResponse(w, HTTPStatus(dup), dup.Error())
		return
	}

	application := &db.Application{
		JobID:              job.ID,
		CompanyID:          job.CompanyID,
		JobTitle:           job.Title,
		Company:            job.Company,
		CompanyLogoURL:     job.CompanyLogoURL,
		ApplicantID:        userID,
		ApplicantName:      form.Name,
		ApplicantEmail:     form.Email,
		ApplicantPhone:     form.Phone,
		ApplicantPortfolio: form.PortfolioURL,
		CoverLetter:        form.CoverLetter,
		ResumeURL:          form.ResumeURL,
	}

	applicationID, err := s.db.CreateApplication(r.Context(), application)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	created, err := s.db.GetApplication(r.Context(), applicationID)
	if err != nil || created == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load created application")
		return
	}

	jobTopic := watch.TopicJobApplications + jobID.String()
	s.publish(r.Context(), jobTopic, watch.NewEvent(watch.EventCreated, jobTopic, created))
	applicantTopic := watch.TopicApplicantApplications + userID.String()
	s.publish(r.Context(), applicantTopic, watch.NewEvent(watch.EventCreated, applicantTopic, created))

	s.jsonResponse(w, http.StatusCreated, created)
}

// handleListMyApplications returns the caller's applications, newest first
func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	applications, err := s.db.ListApplicationsByApplicant(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if applications == nil {
		applications = []db.Application{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"applications": applications,
		"total":        len(applications),
	})
}

// jobOwnedBy verifies that the caller owns the company behind a listing.
// Returns the job on success; writes the error response otherwise.
func (s *Server) jobOwnedBy(w http.ResponseWriter, r *http.Request, jobID, userID uuid.UUID) *db.Job {
	job, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil
	}
	if job == nil {
		notFound := &ErrJobNotFound{JobID: jobID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return nil
	}

	company, err := s.db.GetCompany(r.Context(), job.CompanyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil
	}
	if company == nil || company.OwnerID == nil || *company.OwnerID != userID {
		denied := &ErrNotOwner{Resource: "job", ResourceID: jobID, UserID: userID}
		s.publishPermissionDenied(r.Context(), denied)
		s.errorResponse(w, HTTPStatus(denied), denied.Error())
		return nil
	}
	return job
}

// handleListJobApplications lists the applications for one of the caller's
// listings
func (s *Server) handleListJobApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	if s.jobOwnedBy(w, r, jobID, userID) == nil {
		return
	}

	applications, err := s.db.ListApplicationsByJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if applications == nil {
		applications = []db.Application{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"applications": applications,
		"total":        len(applications),
	})
}

// handleUpdateApplicationStatus moves an application to a new status. Any
// transition between the known statuses is allowed; only the status column
// changes.
func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	applicationID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req types.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.formErrorResponse(w, err)
		return
	}

	status, err := db.ParseApplicationStatus(req.Status)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	application, err := s.db.GetApplication(r.Context(), applicationID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if application == nil {
		notFound := &ErrApplicationNotFound{ApplicationID: applicationID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	if s.jobOwnedBy(w, r, application.JobID, userID) == nil {
		return
	}

	if err := s.db.UpdateApplicationStatus(r.Context(), applicationID, status); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	application.Status = status

	payload := map[string]any{
		"applicationId": applicationID,
		"jobId":         application.JobID,
		"status":        status,
	}
	jobTopic := watch.TopicJobApplications + application.JobID.String()
	s.publish(r.Context(), jobTopic, watch.NewEvent(watch.EventStatusChanged, jobTopic, payload))
	applicantTopic := watch.TopicApplicantApplications + application.ApplicantID.String()
	s.publish(r.Context(), applicantTopic, watch.NewEvent(watch.EventStatusChanged, applicantTopic, payload))

	s.jsonResponse(w, http.StatusOK, application)
}
