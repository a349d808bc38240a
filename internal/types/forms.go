package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for all request types.
var validate = validator.New()

// FieldError is a validation failure attached to a single form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// JobForm carries the fields of the job posting form. Salary bounds may be
// omitted only when the salary is negotiable.
type JobForm struct {
	Title              string  `json:"title" validate:"required,min=2"`
	CompanyID          string  `json:"companyId" validate:"required,uuid"`
	Location           string  `json:"location" validate:"required,min=2"`
	SalaryMin          *int64  `json:"salaryMin" validate:"omitempty,min=1"`
	SalaryMax          *int64  `json:"salaryMax" validate:"omitempty,min=1"`
	IsSalaryNegotiable bool    `json:"isSalaryNegotiable"`
	Industry           string  `json:"industry" validate:"required,min=2"`
	Description        string  `json:"description" validate:"required,min=20"`
	WorkMode           *string `json:"workMode,omitempty" validate:"omitempty,oneof=On-site Remote Hybrid"`
	EmploymentType     *string `json:"employmentType,omitempty"`
	PositionLevel      *string `json:"positionLevel,omitempty"`
}

// Validate checks the tag constraints plus the salary cross-field rule:
// with a fixed salary both bounds are required and the maximum must exceed
// the minimum. Negotiable listings skip the comparison entirely.
func (f *JobForm) Validate() error {
	if err := validate.Struct(f); err != nil {
		return err
	}
	if f.IsSalaryNegotiable {
		return nil
	}
	if f.SalaryMin == nil {
		return &FieldError{Field: "salaryMin", Message: "Please enter a valid minimum salary."}
	}
	if f.SalaryMax == nil {
		return &FieldError{Field: "salaryMax", Message: "Please enter a valid maximum salary."}
	}
	if *f.SalaryMax <= *f.SalaryMin {
		return &FieldError{Field: "salaryMax", Message: "Maximum salary must be greater than minimum salary."}
	}
	return nil
}

// CompanyForm carries the fields of the company profile form.
type CompanyForm struct {
	Name         string  `json:"name" validate:"required,min=2"`
	LogoURL      string  `json:"logoUrl" validate:"required,url"`
	Website      *string `json:"website,omitempty" validate:"omitempty,url"`
	Description  *string `json:"description,omitempty" validate:"omitempty,min=10"`
	EmployeeSize *string `json:"employeeSize,omitempty"`
}

// Validate validates the CompanyForm.
func (f *CompanyForm) Validate() error { return validate.Struct(f) }

// ReviewForm carries the fields of the company review form.
type ReviewForm struct {
	CompanyID      string  `json:"companyId" validate:"required,uuid"`
	Rating         int     `json:"rating" validate:"required,min=1,max=5"`
	Title          string  `json:"title" validate:"required,min=5"`
	Pros           string  `json:"pros" validate:"required,min=10"`
	Cons           string  `json:"cons" validate:"required,min=10"`
	CultureInsight *string `json:"cultureInsight,omitempty"`
}

// Validate validates the ReviewForm.
func (f *ReviewForm) Validate() error { return validate.Struct(f) }

// SalaryForm carries the fields of the salary submission form. Submissions
// may be anonymous, so it holds no identity fields.
type SalaryForm struct {
	JobTitle          string `json:"jobTitle" validate:"required,min=2"`
	CompanyID         string `json:"companyId" validate:"required,uuid"`
	Location          string `json:"location" validate:"required,min=2"`
	Salary            int64  `json:"salary" validate:"required,min=1"`
	YearsOfExperience int    `json:"yearsOfExperience" validate:"gte=0"`
}

// Validate validates the SalaryForm.
func (f *SalaryForm) Validate() error { return validate.Struct(f) }

// InterviewForm carries the fields of the interview experience form.
type InterviewForm struct {
	CompanyID  string `json:"companyId" validate:"required,uuid"`
	JobTitle   string `json:"jobTitle" validate:"required,min=2"`
	Difficulty string `json:"difficulty" validate:"required,oneof=Easy Average Difficult"`
	Questions  string `json:"questions" validate:"required,min=10"`
	Experience string `json:"experience" validate:"required,min=20"`
}

// Validate validates the InterviewForm.
func (f *InterviewForm) Validate() error { return validate.Struct(f) }

// ApplicationForm carries the applicant-provided fields of a job
// application. The job snapshot fields come from the listing itself.
type ApplicationForm struct {
	Name         string  `json:"name" validate:"required,min=2"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        *string `json:"phone,omitempty"`
	PortfolioURL *string `json:"portfolioUrl,omitempty" validate:"omitempty,url"`
	CoverLetter  *string `json:"coverLetter,omitempty" validate:"omitempty,min=20"`
	ResumeURL    *string `json:"resumeUrl,omitempty" validate:"omitempty,url"`
}

// Validate validates the ApplicationForm.
func (f *ApplicationForm) Validate() error { return validate.Struct(f) }

// ProfileUpdateRequest is a shallow profile merge; nil fields are ignored.
type ProfileUpdateRequest struct {
	DisplayName  *string  `json:"displayName,omitempty" validate:"omitempty,min=2"`
	PhotoURL     *string  `json:"photoUrl,omitempty" validate:"omitempty,url"`
	Phone        *string  `json:"phone,omitempty"`
	PortfolioURL *string  `json:"portfolioUrl,omitempty" validate:"omitempty,url"`
	ResumeURL    *string  `json:"resumeUrl,omitempty" validate:"omitempty,url"`
	Skills       []string `json:"skills,omitempty"`
}

// Validate validates the ProfileUpdateRequest.
func (r *ProfileUpdateRequest) Validate() error { return validate.Struct(r) }

// WorkExperienceForm adds or replaces one work history entry. An empty ID
// creates a new entry; a known ID updates it in place.
type WorkExperienceForm struct {
	ID          string  `json:"id,omitempty" validate:"omitempty,uuid"`
	Title       string  `json:"title" validate:"required,min=2"`
	Company     string  `json:"company" validate:"required,min=2"`
	Location    string  `json:"location"`
	StartDate   string  `json:"startDate" validate:"required"`
	EndDate     *string `json:"endDate"`
	Description string  `json:"description"`
}

// Validate validates the WorkExperienceForm.
func (f *WorkExperienceForm) Validate() error { return validate.Struct(f) }

// EducationForm adds or replaces one education entry.
type EducationForm struct {
	ID           string `json:"id,omitempty" validate:"omitempty,uuid"`
	School       string `json:"school" validate:"required,min=2"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldOfStudy" validate:"required"`
	StartDate    string `json:"startDate" validate:"required"`
	EndDate      string `json:"endDate"`
}

// Validate validates the EducationForm.
func (f *EducationForm) Validate() error { return validate.Struct(f) }

// StatusUpdateRequest changes an application's status.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=Applied Interviewing Offered Rejected"`
}

// Validate validates the StatusUpdateRequest.
func (r *StatusUpdateRequest) Validate() error { return validate.Struct(r) }
