package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/claritycareer/claritycareer/internal/db"
	"github.com/claritycareer/claritycareer/internal/server/middleware"
	"github.com/claritycareer/claritycareer/internal/types"
)

// handleGetProfile returns the caller's full profile with embedded work
// and education history
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := s.userService.Profile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleUpdateProfile shallow-merges the provided fields into the caller's
// profile. Omitted fields stay untouched.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.formErrorResponse(w, err)
		return
	}

	upd := db.ProfileUpdate{
		DisplayName:  req.DisplayName,
		PhotoURL:     req.PhotoURL,
		Phone:        req.Phone,
		PortfolioURL: req.PortfolioURL,
		ResumeURL:    req.ResumeURL,
		Skills:       req.Skills,
	}
	if err := s.db.UpdateProfile(r.Context(), userID, upd); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	profile, err := s.userService.Profile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleUpsertWorkExperience adds a work history entry or replaces the one
// matching the form's ID. Entries are keyed so concurrent edits to
// different entries don't overwrite each other.
func (s *Server) handleUpsertWorkExperience(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var form types.WorkExperienceForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		s.formErrorResponse(w, err)
		return
	}

	exp := &db.WorkExperience{
		UserID:      userID,
		Title:       form.Title,
		Company:     form.Company,
		Location:    form.Location,
		StartDate:   form.StartDate,
		EndDate:     form.EndDate,
		Description: form.Description,
	}
	if form.ID != "" {
		expID, err := uuid.Parse(form.ID)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid entry ID")
			return
		}
		exp.ID = expID
	}

	expID, err := s.db.UpsertWorkExperience(r.Context(), exp)
	if err != nil {
		if errors.Is(err, db.ErrEntryNotFound) {
			s.errorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	exp.ID = expID

	s.jsonResponse(w, http.StatusOK, exp)
}

// handleDeleteWorkExperience removes one of the caller's work history
// entries
func (s *Server) handleDeleteWorkExperience(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	expID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	if err := s.db.DeleteWorkExperience(r.Context(), userID, expID); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Entry deleted"})
}

// handleUpsertEducation adds an education entry or replaces the one
// matching the form's ID
func (s *Server) handleUpsertEducation(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var form types.EducationForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		s.formErrorResponse(w, err)
		return
	}

	edu := &db.Education{
		UserID:       userID,
		School:       form.School,
		Degree:       form.Degree,
		FieldOfStudy: form.FieldOfStudy,
		StartDate:    form.StartDate,
		EndDate:      form.EndDate,
	}
	if form.ID != "" {
		eduID, err := uuid.Parse(form.ID)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid entry ID")
			return
		}
		edu.ID = eduID
	}

	eduID, err := s.db.UpsertEducation(r.Context(), edu)
	if err != nil {
		if errors.Is(err, db.ErrEntryNotFound) {
			s.errorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	edu.ID = eduID

	s.jsonResponse(w, http.StatusOK, edu)
}

// handleDeleteEducation removes one of the caller's education entries
func (s *Server) handleDeleteEducation(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	eduID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	if err := s.db.DeleteEducation(r.Context(), userID, eduID); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Entry deleted"})
}
