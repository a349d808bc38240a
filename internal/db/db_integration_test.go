package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claritycareer/claritycareer/internal/role"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL and
// applies the schema. Tests skip when the variable is unset.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	database, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, database.Migrate(ctx))
	return database
}

func createTestUser(t *testing.T, database *DB, r role.Role) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	email := "test-" + uuid.New().String() + "@example.com"
	userID, err := database.CreateUser(ctx, email, "Test User", "not-a-real-hash", r)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.DeleteUser(ctx, userID) })
	return userID
}

func createTestCompany(t *testing.T, database *DB, ownerID uuid.UUID) *Company {
	t.Helper()
	ctx := context.Background()

	company := &Company{
		Name:    "Test Co " + uuid.New().String()[:8],
		LogoURL: "https://cdn.example.com/logo.png",
	}
	companyID, err := database.CreateCompany(ctx, company, ownerID)
	require.NoError(t, err)
	company.ID = companyID
	return company
}

func createTestJob(t *testing.T, database *DB, company *Company) *Job {
	t.Helper()
	ctx := context.Background()

	min := int64(90000)
	max := int64(140000)
	job := &Job{
		Title:          "Backend Engineer",
		CompanyID:      company.ID,
		Company:        company.Name,
		CompanyLogoURL: company.LogoURL,
		Location:       "Remote",
		SalaryMin:      &min,
		SalaryMax:      &max,
		Industry:       "Technology",
		Description:    "Build and run the API.",
	}
	jobID, err := database.CreateJob(ctx, job)
	require.NoError(t, err)
	job.ID = jobID
	return job
}

func TestIntegration_CreateAndGetJob(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()
	ctx := context.Background()

	ownerID := createTestUser(t, database, role.Employer)
	company := createTestCompany(t, database, ownerID)
	job := createTestJob(t, database, company)

	got, err := database.GetJob(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, job.Title, got.Title)
	assert.Equal(t, company.ID, got.CompanyID)
	// Denormalized snapshot fields come back as stored.
	assert.Equal(t, company.Name, got.Company)
	assert.Equal(t, company.LogoURL, got.CompanyLogoURL)
	require.NotNil(t, got.SalaryMin)
	assert.Equal(t, int64(90000), *got.SalaryMin)
	assert.False(t, got.PostedAt.IsZero())
}

func TestIntegration_GetJob_Missing(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	got, err := database.GetJob(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIntegration_ToggleSavedJob(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()
	ctx := context.Background()

	ownerID := createTestUser(t, database, role.Employer)
	company := createTestCompany(t, database, ownerID)
	job := createTestJob(t, database, company)
	userID := createTestUser(t, database, role.Employee)

	// First toggle saves the job.
	saved, err := database.ToggleSavedJob(ctx, userID, job.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	user, err := database.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Contains(t, user.SavedJobs, job.ID)

	// Second toggle removes it, leaving no duplicates behind.
	saved, err = database.ToggleSavedJob(ctx, userID, job.ID)
	require.NoError(t, err)
	assert.False(t, saved)

	user, err = database.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.NotContains(t, user.SavedJobs, job.ID)
}

func TestIntegration_ApplicationLifecycle(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()
	ctx := context.Background()

	ownerID := createTestUser(t, database, role.Employer)
	company := createTestCompany(t, database, ownerID)
	job := createTestJob(t, database, company)
	applicantID := createTestUser(t, database, role.Employee)

	applied, err := database.HasApplied(ctx, applicantID, job.ID)
	require.NoError(t, err)
	assert.False(t, applied)

	app := &Application{
		JobID:          job.ID,
		CompanyID:      job.CompanyID,
		JobTitle:       job.Title,
		Company:        job.Company,
		CompanyLogoURL: job.CompanyLogoURL,
		ApplicantID:    applicantID,
		ApplicantName:  "Test Applicant",
		ApplicantEmail: "applicant@example.com",
		Status:         StatusApplied,
	}
	appID, err := database.CreateApplication(ctx, app)
	require.NoError(t, err)

	applied, err = database.HasApplied(ctx, applicantID, job.ID)
	require.NoError(t, err)
	assert.True(t, applied)

	// Status moves freely between values; only the status column changes.
	require.NoError(t, database.UpdateApplicationStatus(ctx, appID, StatusInterviewing))
	require.NoError(t, database.UpdateApplicationStatus(ctx, appID, StatusRejected))
	require.NoError(t, database.UpdateApplicationStatus(ctx, appID, StatusOffered))

	got, err := database.GetApplication(ctx, appID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, StatusOffered, got.Status)
	assert.Equal(t, job.Title, got.JobTitle)

	mine, err := database.ListApplicationsByApplicant(ctx, applicantID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, appID, mine[0].ID)

	forJob, err := database.ListApplicationsByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, forJob, 1)
}

func TestIntegration_WorkExperienceUpsertAndDelete(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()
	ctx := context.Background()

	userID := createTestUser(t, database, role.Employee)

	exp := &WorkExperience{
		UserID:      userID,
		Title:       "Engineer",
		Company:     "Innovate Inc.",
		Location:    "Remote",
		StartDate:   "2022-01",
		Description: "Backend work.",
	}
	expID, err := database.UpsertWorkExperience(ctx, exp)
	require.NoError(t, err)

	// Upsert with the same id updates in place instead of appending.
	exp.ID = expID
	exp.Title = "Senior Engineer"
	updatedID, err := database.UpsertWorkExperience(ctx, exp)
	require.NoError(t, err)
	assert.Equal(t, expID, updatedID)

	list, err := database.ListWorkExperiences(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Senior Engineer", list[0].Title)

	require.NoError(t, database.DeleteWorkExperience(ctx, userID, expID))

	list, err = database.ListWorkExperiences(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestIntegration_UpsertEntry_OtherUsersID(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()
	ctx := context.Background()

	owner := createTestUser(t, database, role.Employee)
	intruder := createTestUser(t, database, role.Employee)

	exp := &WorkExperience{
		UserID:      owner,
		Title:       "Engineer",
		Company:     "Innovate Inc.",
		Location:    "Remote",
		StartDate:   "2022-01",
		Description: "Backend work.",
	}
	expID, err := database.UpsertWorkExperience(ctx, exp)
	require.NoError(t, err)

	// Reusing someone else's entry ID must not touch their row.
	_, err = database.UpsertWorkExperience(ctx, &WorkExperience{
		ID:          expID,
		UserID:      intruder,
		Title:       "Hijacked",
		Company:     "Evil Corp",
		Location:    "Nowhere",
		StartDate:   "2020-01",
		Description: "Overwrite attempt.",
	})
	require.ErrorIs(t, err, ErrEntryNotFound)

	list, err := database.ListWorkExperiences(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Engineer", list[0].Title)
	assert.Equal(t, "Innovate Inc.", list[0].Company)
	assert.Equal(t, owner, list[0].UserID)

	intruderList, err := database.ListWorkExperiences(ctx, intruder)
	require.NoError(t, err)
	assert.Empty(t, intruderList)

	edu := &Education{
		UserID:       owner,
		School:       "State University",
		Degree:       "BS",
		FieldOfStudy: "Computer Science",
		StartDate:    "2014-09",
		EndDate:      "2018-06",
	}
	eduID, err := database.UpsertEducation(ctx, edu)
	require.NoError(t, err)

	_, err = database.UpsertEducation(ctx, &Education{
		ID:           eduID,
		UserID:       intruder,
		School:       "Diploma Mill",
		Degree:       "PhD",
		FieldOfStudy: "Nothing",
		StartDate:    "2010-01",
		EndDate:      "2010-02",
	})
	require.ErrorIs(t, err, ErrEntryNotFound)

	edus, err := database.ListEducations(ctx, owner)
	require.NoError(t, err)
	require.Len(t, edus, 1)
	assert.Equal(t, "State University", edus[0].School)
}

func TestIntegration_SalaryStats(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()
	ctx := context.Background()

	ownerID := createTestUser(t, database, role.Employer)
	company := createTestCompany(t, database, ownerID)

	for _, salary := range []int64{100000, 120000, 140000} {
		_, err := database.CreateSalaryEntry(ctx, &SalaryEntry{
			JobTitle:          "Engineer",
			CompanyID:         company.ID,
			Company:           company.Name,
			Location:          "Remote",
			Salary:            salary,
			YearsOfExperience: 5,
		})
		require.NoError(t, err)
	}

	got, err := database.GetSalaryStats(ctx, company.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 3, got.SampleCount)
	assert.Equal(t, int64(120000), got.AverageSalary)
	assert.Equal(t, int64(100000), got.MinSalary)
	assert.Equal(t, int64(140000), got.MaxSalary)

	missing, err := database.GetSalaryStats(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
