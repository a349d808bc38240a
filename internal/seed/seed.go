// Package seed loads fixture data into the database from a JSON file
// validated against an embedded JSON Schema.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/sync/errgroup"

	"github.com/claritycareer/claritycareer/internal/config"
	"github.com/claritycareer/claritycareer/internal/db"
	"github.com/claritycareer/claritycareer/internal/role"
)

//go:embed schema.json
var schemaJSON []byte

// Document is the shape of a seed file. Companies reference their owner by
// email; jobs and insights reference companies by name.
type Document struct {
	Users      []UserFixture      `json:"users"`
	Companies  []CompanyFixture   `json:"companies"`
	Jobs       []JobFixture       `json:"jobs"`
	Reviews    []ReviewFixture    `json:"reviews"`
	Salaries   []SalaryFixture    `json:"salaries"`
	Interviews []InterviewFixture `json:"interviews"`
}

// UserFixture seeds one account.
type UserFixture struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

// CompanyFixture seeds one company profile.
type CompanyFixture struct {
	Name         string  `json:"name"`
	LogoURL      string  `json:"logoUrl"`
	Website      *string `json:"website,omitempty"`
	Description  *string `json:"description,omitempty"`
	EmployeeSize *string `json:"employeeSize,omitempty"`
	OwnerEmail   string  `json:"ownerEmail"`
}

// JobFixture seeds one listing under a named company.
type JobFixture struct {
	Title              string  `json:"title"`
	Company            string  `json:"company"`
	Location           string  `json:"location"`
	SalaryMin          *int64  `json:"salaryMin,omitempty"`
	SalaryMax          *int64  `json:"salaryMax,omitempty"`
	IsSalaryNegotiable bool    `json:"isSalaryNegotiable"`
	Industry           string  `json:"industry"`
	Description        string  `json:"description"`
	WorkMode           *string `json:"workMode,omitempty"`
}

// ReviewFixture seeds one company review.
type ReviewFixture struct {
	Company string `json:"company"`
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Pros    string `json:"pros"`
	Cons    string `json:"cons"`
}

// SalaryFixture seeds one anonymous salary data point.
type SalaryFixture struct {
	JobTitle          string `json:"jobTitle"`
	Company           string `json:"company"`
	Location          string `json:"location"`
	Salary            int64  `json:"salary"`
	YearsOfExperience int    `json:"yearsOfExperience"`
}

// InterviewFixture seeds one interview experience.
type InterviewFixture struct {
	Company    string `json:"company"`
	JobTitle   string `json:"jobTitle"`
	Author     string `json:"author"`
	Difficulty string `json:"difficulty"`
	Questions  string `json:"questions"`
	Experience string `json:"experience"`
}

// Validate checks raw seed file contents against the embedded schema.
func Validate(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("seed file is invalid:\n")
	for i, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, field, desc.Description()))
	}
	return fmt.Errorf("%s", sb.String())
}

// Parse validates and decodes a seed file.
func Parse(data []byte) (*Document, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return &doc, nil
}

// Run loads the seed file at path into the database. Companies resolve
// their owner by email; jobs and insights resolve companies by name, with
// the company's name and logo denormalized onto them the same way the API
// does it.
func Run(ctx context.Context, database *db.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return err
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}

	usersByEmail := make(map[string]*db.User)
	for _, u := range doc.Users {
		accountRole, err := role.Parse(u.Role)
		if err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
		hash, err := passwordConfig.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
		userID, err := database.CreateUser(ctx, u.Email, u.DisplayName, hash, accountRole)
		if err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
		usersByEmail[u.Email] = &db.User{ID: userID, Email: u.Email, Role: accountRole}
	}
	log.Printf("[seed] Created %d user(s)", len(doc.Users))

	companiesByName := make(map[string]*db.Company)
	for _, c := range doc.Companies {
		owner, ok := usersByEmail[c.OwnerEmail]
		if !ok {
			return fmt.Errorf("company %s: owner %s not in seed users", c.Name, c.OwnerEmail)
		}
		company := &db.Company{
			Name:         c.Name,
			LogoURL:      c.LogoURL,
			Website:      c.Website,
			Description:  c.Description,
			EmployeeSize: c.EmployeeSize,
		}
		companyID, err := database.CreateCompany(ctx, company, owner.ID)
		if err != nil {
			return fmt.Errorf("company %s: %w", c.Name, err)
		}
		company.ID = companyID
		companiesByName[c.Name] = company
	}
	log.Printf("[seed] Created %d company(ies)", len(doc.Companies))

	companyFor := func(name string) (*db.Company, error) {
		company, ok := companiesByName[name]
		if !ok {
			return nil, fmt.Errorf("company %q not in seed companies", name)
		}
		return company, nil
	}

	for _, j := range doc.Jobs {
		company, err := companyFor(j.Company)
		if err != nil {
			return fmt.Errorf("job %s: %w", j.Title, err)
		}
		job := &db.Job{
			Title:              j.Title,
			CompanyID:          company.ID,
			Company:            company.Name,
			CompanyLogoURL:     company.LogoURL,
			Location:           j.Location,
			SalaryMin:          j.SalaryMin,
			SalaryMax:          j.SalaryMax,
			IsSalaryNegotiable: j.IsSalaryNegotiable,
			Industry:           j.Industry,
			Description:        j.Description,
			WorkMode:           j.WorkMode,
		}
		if _, err := database.CreateJob(ctx, job); err != nil {
			return fmt.Errorf("job %s: %w", j.Title, err)
		}
	}
	log.Printf("[seed] Created %d job(s)", len(doc.Jobs))

	// The insight collections don't depend on each other, only on the
	// companies created above, so their inserts run in parallel.
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for _, r := range doc.Reviews {
			company, err := companyFor(r.Company)
			if err != nil {
				return fmt.Errorf("review %s: %w", r.Title, err)
			}
			review := &db.Review{
				CompanyID: company.ID,
				Company:   company.Name,
				Author:    r.Author,
				Rating:    r.Rating,
				Title:     r.Title,
				Pros:      r.Pros,
				Cons:      r.Cons,
			}
			if _, err := database.CreateReview(gCtx, review); err != nil {
				return fmt.Errorf("review %s: %w", r.Title, err)
			}
		}
		return nil
	})

	g.Go(func() error {
		for _, s := range doc.Salaries {
			company, err := companyFor(s.Company)
			if err != nil {
				return fmt.Errorf("salary %s: %w", s.JobTitle, err)
			}
			entry := &db.SalaryEntry{
				JobTitle:          s.JobTitle,
				CompanyID:         company.ID,
				Company:           company.Name,
				Location:          s.Location,
				Salary:            s.Salary,
				YearsOfExperience: s.YearsOfExperience,
			}
			if _, err := database.CreateSalaryEntry(gCtx, entry); err != nil {
				return fmt.Errorf("salary %s: %w", s.JobTitle, err)
			}
		}
		return nil
	})

	g.Go(func() error {
		for _, i := range doc.Interviews {
			company, err := companyFor(i.Company)
			if err != nil {
				return fmt.Errorf("interview %s: %w", i.JobTitle, err)
			}
			difficulty, err := db.ParseDifficulty(i.Difficulty)
			if err != nil {
				return fmt.Errorf("interview %s: %w", i.JobTitle, err)
			}
			interview := &db.Interview{
				CompanyID:  company.ID,
				Company:    company.Name,
				JobTitle:   i.JobTitle,
				Author:     i.Author,
				Difficulty: difficulty,
				Questions:  i.Questions,
				Experience: i.Experience,
			}
			if _, err := database.CreateInterview(gCtx, interview); err != nil {
				return fmt.Errorf("interview %s: %w", i.JobTitle, err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Printf("[seed] Created %d review(s), %d salary(ies), %d interview(s)",
		len(doc.Reviews), len(doc.Salaries), len(doc.Interviews))

	return nil
}
