// Package jobsearch implements the in-memory job listing filter.
//
// The candidate set is the full listing table, so filtering stays a pure
// synchronous computation over the fetched slice rather than a SQL query.
package jobsearch

import (
	"strings"

	"github.com/claritycareer/claritycareer/internal/db"
)

// IndustryAll is the sentinel industry filter value that matches every
// listing.
const IndustryAll = "all"

// Criteria holds the five independent job filter predicates. Zero values
// disable their predicate: empty strings match everything, a nil MinSalary
// acts as 0 and a nil MaxSalary as unbounded.
type Criteria struct {
	SearchTerm string
	Location   string
	Industry   string
	MinSalary  *int64
	MaxSalary  *int64
}

// Matches reports whether the job satisfies all five predicates.
func Matches(job *db.Job, c Criteria) bool {
	return matchesText(job, c.SearchTerm) &&
		matchesLocation(job, c.Location) &&
		matchesIndustry(job, c.Industry) &&
		matchesSalaryFloor(job, c.MinSalary) &&
		matchesSalaryCeiling(job, c.MaxSalary)
}

// Filter returns the listings matching c, preserving input order.
func Filter(jobs []db.Job, c Criteria) []db.Job {
	matched := make([]db.Job, 0, len(jobs))
	for i := range jobs {
		if Matches(&jobs[i], c) {
			matched = append(matched, jobs[i])
		}
	}
	return matched
}

// matchesText checks the free-text term against title, company name, and
// description, case-insensitively.
func matchesText(job *db.Job, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(job.Title), needle) ||
		strings.Contains(strings.ToLower(job.Company), needle) ||
		strings.Contains(strings.ToLower(job.Description), needle)
}

func matchesLocation(job *db.Job, location string) bool {
	return strings.Contains(strings.ToLower(job.Location), strings.ToLower(location))
}

func matchesIndustry(job *db.Job, industry string) bool {
	if industry == "" || industry == IndustryAll {
		return true
	}
	return job.Industry == industry
}

// matchesSalaryFloor requires the job's maximum salary to reach the filter
// minimum. A listing without a stated maximum passes unconditionally.
func matchesSalaryFloor(job *db.Job, minSalary *int64) bool {
	if minSalary == nil || job.SalaryMax == nil {
		return true
	}
	return *job.SalaryMax >= *minSalary
}

// matchesSalaryCeiling requires the job's minimum salary to fit under the
// filter maximum. A listing without a stated minimum passes unconditionally.
func matchesSalaryCeiling(job *db.Job, maxSalary *int64) bool {
	if maxSalary == nil || job.SalaryMin == nil {
		return true
	}
	return *job.SalaryMin <= *maxSalary
}
