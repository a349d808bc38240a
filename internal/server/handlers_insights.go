package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/claritycareer/claritycareer/internal/db"
	"github.com/claritycareer/claritycareer/internal/server/middleware"
	"github.com/claritycareer/claritycareer/internal/types"
)

// optionalCompanyID reads the company path parameter when the route has
// one. uuid.Nil means the route is the unscoped list.
func optionalCompanyID(r *http.Request) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		return uuid.Nil, true
	}
	companyID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return companyID, true
}

// lookupCompany fetches a company referenced by a submission form,
// translating absence to the typed not-found error.
func (s *Server) lookupCompany(r *http.Request, companyIDStr string) (*db.Company, error) {
	companyID, err := uuid.Parse(companyIDStr)
	if err != nil {
		return nil, &ErrValidation{Field: "companyId", Message: "invalid company ID"}
	}
	company, err := s.db.GetCompany(r.Context(), companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, &ErrCompanyNotFound{CompanyID: companyID}
	}
	return company, nil
}

// handleListReviews lists reviews, optionally scoped to one company
func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	companyID, ok := optionalCompanyID(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	reviews, err := s.db.ListReviews(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if reviews == nil {
		reviews = []db.Review{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"reviews": reviews,
		"total":   len(reviews),
	})
}

// handleCreateReview submits a company review. The company name is copied
// onto the review at write time.
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var form types.ReviewForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		s.formErrorResponse(w, err)
		return
	}

	company, err := s.lookupCompany(r, form.CompanyID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil || user == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load author")
		return
	}

	review := &db.Review{
		CompanyID:      company.ID,
		Company:        company.Name,
		Author:         user.DisplayName,
		UserID:         &userID,
		Rating:         form.Rating,
		Title:          form.Title,
		Pros:           form.Pros,
		Cons:           form.Cons,
		CultureInsight: form.CultureInsight,
	}

	reviewID, err := s.db.CreateReview(r.Context(), review)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	review.ID = reviewID

	s.jsonResponse(w, http.StatusCreated, review)
}

// handleListSalaries lists salary submissions, optionally scoped to one
// company
func (s *Server) handleListSalaries(w http.ResponseWriter, r *http.Request) {
	companyID, ok := optionalCompanyID(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	entries, err := s.db.ListSalaryEntries(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if entries == nil {
		entries = []db.SalaryEntry{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"salaries": entries,
		"total":    len(entries),
	})
}

// handleCreateSalary submits a salary data point. Authentication is
// optional: anonymous submissions carry no user ID.
func (s *Server) handleCreateSalary(w http.ResponseWriter, r *http.Request) {
	var form types.SalaryForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		s.formErrorResponse(w, err)
		return
	}

	company, err := s.lookupCompany(r, form.CompanyID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	entry := &db.SalaryEntry{
		JobTitle:          form.JobTitle,
		CompanyID:         company.ID,
		Company:           company.Name,
		Location:          form.Location,
		Salary:            form.Salary,
		YearsOfExperience: form.YearsOfExperience,
	}
	if userID, err := middleware.GetUserID(r); err == nil {
		entry.UserID = &userID
	}

	entryID, err := s.db.CreateSalaryEntry(r.Context(), entry)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	entry.ID = entryID

	s.jsonResponse(w, http.StatusCreated, entry)
}

// handleListInterviews lists interview experiences, optionally scoped to
// one company
func (s *Server) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	companyID, ok := optionalCompanyID(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	interviews, err := s.db.ListInterviews(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if interviews == nil {
		interviews = []db.Interview{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"interviews": interviews,
		"total":      len(interviews),
	})
}

// handleCreateInterview shares an interview experience
func (s *Server) handleCreateInterview(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var form types.InterviewForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		s.formErrorResponse(w, err)
		return
	}

	difficulty, err := db.ParseDifficulty(form.Difficulty)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	company, err := s.lookupCompany(r, form.CompanyID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil || user == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load author")
		return
	}

	interview := &db.Interview{
		CompanyID:  company.ID,
		Company:    company.Name,
		JobTitle:   form.JobTitle,
		Author:     user.DisplayName,
		UserID:     &userID,
		Difficulty: difficulty,
		Questions:  form.Questions,
		Experience: form.Experience,
	}

	interviewID, err := s.db.CreateInterview(r.Context(), interview)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	interview.ID = interviewID

	s.jsonResponse(w, http.StatusCreated, interview)
}

// handleCompanyStats returns cached salary aggregates for one company
func (s *Server) handleCompanyStats(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	companyStats, err := s.stats.CompanyStats(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if companyStats == nil {
		s.errorResponse(w, http.StatusNotFound, "No salary data for company")
		return
	}

	s.jsonResponse(w, http.StatusOK, companyStats)
}

// handleAllStats returns salary aggregates for every company with data
func (s *Server) handleAllStats(w http.ResponseWriter, r *http.Request) {
	all, err := s.stats.AllStats(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if all == nil {
		all = []db.SalaryStats{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"stats": all,
		"total": len(all),
	})
}
