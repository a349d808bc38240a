package db

import (
	"time"

	"github.com/google/uuid"
)

// Job represents a job listing row. Company and CompanyLogoURL are
// denormalized snapshots taken from the companies table at posting time and
// never refreshed afterwards.
type Job struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	CompanyID          uuid.UUID `json:"companyId"`
	Company            string    `json:"company"`
	CompanyLogoURL     string    `json:"companyLogoUrl"`
	Location           string    `json:"location"`
	SalaryMin          *int64    `json:"salaryMin,omitempty"`
	SalaryMax          *int64    `json:"salaryMax,omitempty"`
	IsSalaryNegotiable bool      `json:"isSalaryNegotiable"`
	Industry           string    `json:"industry"`
	Description        string    `json:"description"`
	WorkMode           *string   `json:"workMode,omitempty"`
	EmploymentType     *string   `json:"employmentType,omitempty"`
	PositionLevel      *string   `json:"positionLevel,omitempty"`
	PostedAt           time.Time `json:"postedAt"`
}
