package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Review is an employee-written company review. Company is a denormalized
// snapshot of the company name at submission time.
type Review struct {
	ID             uuid.UUID  `json:"id"`
	CompanyID      uuid.UUID  `json:"companyId"`
	Company        string     `json:"company"`
	Author         string     `json:"author"`
	UserID         *uuid.UUID `json:"userId,omitempty"`
	Rating         int        `json:"rating"`
	Title          string     `json:"title"`
	Pros           string     `json:"pros"`
	Cons           string     `json:"cons"`
	CultureInsight *string    `json:"cultureInsight,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// SalaryEntry is a self-reported salary data point. UserID is nil for
// anonymous submissions.
type SalaryEntry struct {
	ID                uuid.UUID  `json:"id"`
	JobTitle          string     `json:"jobTitle"`
	CompanyID         uuid.UUID  `json:"companyId"`
	Company           string     `json:"company"`
	Location          string     `json:"location"`
	Salary            int64      `json:"salary"`
	YearsOfExperience int        `json:"yearsOfExperience"`
	UserID            *uuid.UUID `json:"userId,omitempty"`
	SubmittedAt       time.Time  `json:"submittedAt"`
}

// SalaryStats is an aggregate over a company's salary submissions.
type SalaryStats struct {
	CompanyID     uuid.UUID `json:"companyId"`
	Company       string    `json:"company"`
	SampleCount   int       `json:"sampleCount"`
	AverageSalary int64     `json:"averageSalary"`
	MinSalary     int64     `json:"minSalary"`
	MaxSalary     int64     `json:"maxSalary"`
}

// Difficulty values mirror the interview_difficulty enum in PostgreSQL.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "Easy"
	DifficultyAverage   Difficulty = "Average"
	DifficultyDifficult Difficulty = "Difficult"
)

// ParseDifficulty converts a raw string to a Difficulty, returning an error
// for unknown values.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	switch d {
	case DifficultyEasy, DifficultyAverage, DifficultyDifficult:
		return d, nil
	}
	return "", fmt.Errorf("unknown interview difficulty %q", s)
}

// Interview is a shared interview experience.
type Interview struct {
	ID         uuid.UUID  `json:"id"`
	CompanyID  uuid.UUID  `json:"companyId"`
	Company    string     `json:"company"`
	JobTitle   string     `json:"jobTitle"`
	Author     string     `json:"author"`
	UserID     *uuid.UUID `json:"userId,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
	Questions  string     `json:"questions"`
	Experience string     `json:"experience"`
	CreatedAt  time.Time  `json:"createdAt"`
}
