package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus values mirror the application_status enum in PostgreSQL.
// Status may move from any value to any other; there is no enforced order.
type ApplicationStatus string

const (
	StatusApplied      ApplicationStatus = "Applied"
	StatusInterviewing ApplicationStatus = "Interviewing"
	StatusOffered      ApplicationStatus = "Offered"
	StatusRejected     ApplicationStatus = "Rejected"
)

// ParseApplicationStatus converts a raw string to an ApplicationStatus,
// returning an error for unknown values.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case StatusApplied, StatusInterviewing, StatusOffered, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// Application represents a job application row. The job fields (JobTitle,
// Company, CompanyLogoURL) are a snapshot of the job at submission time.
// Only Status is mutable after creation.
type Application struct {
	ID                 uuid.UUID         `json:"id"`
	JobID              uuid.UUID         `json:"jobId"`
	CompanyID          uuid.UUID         `json:"companyId"`
	JobTitle           string            `json:"jobTitle"`
	Company            string            `json:"company"`
	CompanyLogoURL     string            `json:"companyLogoUrl"`
	ApplicantID        uuid.UUID         `json:"applicantId"`
	ApplicantName      string            `json:"applicantName"`
	ApplicantEmail     string            `json:"applicantEmail"`
	ApplicantPhone     *string           `json:"applicantPhone,omitempty"`
	ApplicantPortfolio *string           `json:"applicantPortfolio,omitempty"`
	CoverLetter        *string           `json:"coverLetter,omitempty"`
	ResumeURL          *string           `json:"resumeUrl,omitempty"`
	Status             ApplicationStatus `json:"status"`
	SubmittedAt        time.Time         `json:"submittedAt"`
}
