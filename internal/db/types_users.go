package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/claritycareer/claritycareer/internal/role"
)

// User represents a user profile row. PasswordHash never leaves this
// package's callers unredacted; API layers convert to a response type.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	DisplayName  string      `json:"displayName"`
	PhotoURL     *string     `json:"photoUrl,omitempty"`
	Role         role.Role   `json:"role"`
	Phone        *string     `json:"phone,omitempty"`
	PortfolioURL *string     `json:"portfolioUrl,omitempty"`
	ResumeURL    *string     `json:"resumeUrl,omitempty"`
	Skills       []string    `json:"skills"`
	SavedJobs    []uuid.UUID `json:"savedJobs"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// WorkExperience is an entry in a user's work history. A nil EndDate means
// the position is current.
type WorkExperience struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	StartDate   string    `json:"startDate"`
	EndDate     *string   `json:"endDate"`
	Description string    `json:"description"`
}

// Education is an entry in a user's education history.
type Education struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	School       string    `json:"school"`
	Degree       string    `json:"degree"`
	FieldOfStudy string    `json:"fieldOfStudy"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
}

// ProfileUpdate carries the fields of a shallow profile merge. Nil fields
// are left untouched.
type ProfileUpdate struct {
	DisplayName  *string
	PhotoURL     *string
	Phone        *string
	PortfolioURL *string
	ResumeURL    *string
	Skills       []string
}
