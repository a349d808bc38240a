package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/claritycareer/claritycareer/internal/db"
	"github.com/claritycareer/claritycareer/internal/server/middleware"
	"github.com/claritycareer/claritycareer/internal/types"
)

// handleListCompanies lists all company profiles
func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.db.ListCompanies(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"companies": companies,
		"total":     len(companies),
	})
}

// handleGetCompany retrieves a company by ID
func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(r.PathValue("id"))
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
		s.errorResponse(w, http.StatusNotFound, "Company not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, company)
}

// handleListCompanyJobs lists the open listings under one company
func (s *Server) handleListCompanyJobs(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	jobs, err := s.db.ListJobsByCompany(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

// handleCreateCompany creates a company profile owned by the caller
func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var form types.CompanyForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		s.formErrorResponse(w, err)
		return
	}

	company := &db.Company{
		Name:         form.Name,
		LogoURL:      form.LogoURL,
		Website:      form.Website,
		Description:  form.Description,
		EmployeeSize: form.EmployeeSize,
	}

	companyID, err := s.db.CreateCompany(r.Context(), company, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	created, err := s.db.GetCompany(r.Context(), companyID)
	if err != nil || created == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load created company")
		return
	}

	s.jsonResponse(w, http.StatusCreated, created)
}

// handleListMyCompanies lists the companies the caller owns
func (s *Server) handleListMyCompanies(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	companies, err := s.db.ListCompaniesByOwner(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"companies": companies,
		"total":     len(companies),
	})
}

// previewRequest asks for metadata extracted from a company website so the
// profile form can be prefilled.
type previewRequest struct {
	Website string `json:"website"`
}

// handlePreviewCompany fetches a company website and returns its extracted
// name, description, and logo candidates.
func (s *Server) handlePreviewCompany(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Website == "" {
		s.errorResponse(w, http.StatusBadRequest, "Website is required")
		return
	}

	meta, err := s.enricher.FetchMetadata(r.Context(), req.Website)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Failed to fetch website: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, meta)
}
