// Package types provides request and response definitions shared between
// the HTTP layer and its callers.
package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/claritycareer/claritycareer/internal/role"
)

// RegisterRequest represents the request to create a new account.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"displayName" validate:"required,min=2"`
	Role        string `json:"role" validate:"required,oneof=employee employer"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest represents a password change request.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// DeleteAccountRequest confirms account deletion with the current password.
type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

// UserProfile is the API shape of an account, password hash excluded.
// WorkExperience and Education are loaded from their own tables but
// presented embedded, matching the document shape clients expect.
type UserProfile struct {
	ID             uuid.UUID   `json:"id"`
	Email          string      `json:"email"`
	DisplayName    string      `json:"displayName"`
	PhotoURL       *string     `json:"photoUrl,omitempty"`
	Role           role.Role   `json:"role"`
	Phone          *string     `json:"phone,omitempty"`
	PortfolioURL   *string     `json:"portfolioUrl,omitempty"`
	ResumeURL      *string     `json:"resumeUrl,omitempty"`
	Skills         []string    `json:"skills"`
	SavedJobs      []uuid.UUID `json:"savedJobs"`
	WorkExperience []WorkExperienceEntry `json:"workExperience"`
	Education      []EducationEntry      `json:"education"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// WorkExperienceEntry is the API shape of one work history entry.
type WorkExperienceEntry struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	StartDate   string    `json:"startDate"`
	EndDate     *string   `json:"endDate"`
	Description string    `json:"description"`
}

// EducationEntry is the API shape of one education entry.
type EducationEntry struct {
	ID           uuid.UUID `json:"id"`
	School       string    `json:"school"`
	Degree       string    `json:"degree"`
	FieldOfStudy string    `json:"fieldOfStudy"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
}

// AuthResponse carries the authenticated profile, its bearer token, and the
// dashboard landing path for the profile's role.
type AuthResponse struct {
	User          *UserProfile `json:"user"`
	Token         string       `json:"token"`
	DashboardPath string       `json:"dashboardPath"`
}

// Validate validates the RegisterRequest.
func (r *RegisterRequest) Validate() error { return validate.Struct(r) }

// Validate validates the LoginRequest.
func (r *LoginRequest) Validate() error { return validate.Struct(r) }

// Validate validates the UpdatePasswordRequest.
func (r *UpdatePasswordRequest) Validate() error { return validate.Struct(r) }

// Validate validates the DeleteAccountRequest.
func (r *DeleteAccountRequest) Validate() error { return validate.Struct(r) }
