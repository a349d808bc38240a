package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claritycareer/claritycareer/internal/db"
	"github.com/claritycareer/claritycareer/internal/role"
	"github.com/claritycareer/claritycareer/internal/watch"
)

// newTestServerWithStore wires a fake store and the in-process hub so
// handler tests can drive full mutation paths and observe the events they
// publish.
func newTestServerWithStore(store *fakeStore) *Server {
	s := newTestServer()
	s.db = store
	return s
}

func recvEvent(t *testing.T, events <-chan watch.Event) watch.Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "event channel closed before delivery")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return watch.Event{}
	}
}

// seedJobListing stores an employer, their company, and one job.
func seedJobListing(store *fakeStore) (employerID uuid.UUID, job *db.Job) {
	employerID = uuid.New()
	store.users[employerID] = &db.User{ID: employerID, Role: role.Employer}

	companyID := uuid.New()
	store.companies[companyID] = &db.Company{
		ID:      companyID,
		Name:    "Innovate Inc.",
		LogoURL: "https://cdn.example.com/logo.png",
		OwnerID: &employerID,
	}

	jobID := uuid.New()
	job = &db.Job{
		ID:             jobID,
		Title:          "Backend Engineer",
		CompanyID:      companyID,
		Company:        "Innovate Inc.",
		CompanyLogoURL: "https://cdn.example.com/logo.png",
		Location:       "Remote",
		Industry:       "Technology",
		Description:    "Build and run the API.",
	}
	store.jobs[jobID] = job
	return employerID, job
}

func TestSubmitApplication_PublishesCreatedOnBothTopics(t *testing.T) {
	store := newFakeStore()
	_, job := seedJobListing(store)
	s := newTestServerWithStore(store)

	applicantID := uuid.New()
	jobTopic := watch.TopicJobApplications + job.ID.String()
	applicantTopic := watch.TopicApplicantApplications + applicantID.String()

	jobEvents, releaseJob, err := s.broker.Subscribe(context.Background(), jobTopic)
	require.NoError(t, err)
	defer releaseJob()
	applicantEvents, releaseApplicant, err := s.broker.Subscribe(context.Background(), applicantTopic)
	require.NoError(t, err)
	defer releaseApplicant()

	body := `{"name": "Alex Chen", "email": "alex@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/jobs/"+job.ID.String()+"/applications", strings.NewReader(body))
	req.SetPathValue("id", job.ID.String())
	req = asIdentity(req, applicantID, role.Employee)
	w := httptest.NewRecorder()

	s.handleSubmitApplication(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	for _, events := range []<-chan watch.Event{jobEvents, applicantEvents} {
		ev := recvEvent(t, events)
		assert.Equal(t, watch.EventCreated, ev.Type)

		var application db.Application
		require.NoError(t, json.Unmarshal(ev.Payload, &application))
		assert.Equal(t, job.ID, application.JobID)
		assert.Equal(t, applicantID, application.ApplicantID)
		assert.Equal(t, db.StatusApplied, application.Status)
		// Snapshot fields come from the listing.
		assert.Equal(t, "Backend Engineer", application.JobTitle)
		assert.Equal(t, "Innovate Inc.", application.Company)
	}
}

func TestUpdateApplicationStatus_PublishesToApplicantTopic(t *testing.T) {
	store := newFakeStore()
	employerID, job := seedJobListing(store)
	s := newTestServerWithStore(store)

	applicantID := uuid.New()
	applicationID := uuid.New()
	store.applications[applicationID] = &db.Application{
		ID:          applicationID,
		JobID:       job.ID,
		CompanyID:   job.CompanyID,
		JobTitle:    job.Title,
		Company:     job.Company,
		ApplicantID: applicantID,
		Status:      db.StatusApplied,
	}

	applicantTopic := watch.TopicApplicantApplications + applicantID.String()
	applicantEvents, releaseApplicant, err := s.broker.Subscribe(context.Background(), applicantTopic)
	require.NoError(t, err)
	defer releaseApplicant()

	jobTopic := watch.TopicJobApplications + job.ID.String()
	jobEvents, releaseJob, err := s.broker.Subscribe(context.Background(), jobTopic)
	require.NoError(t, err)
	defer releaseJob()

	body := `{"status": "Interviewing"}`
	req := httptest.NewRequest(http.MethodPut, "/applications/"+applicationID.String()+"/status", strings.NewReader(body))
	req.SetPathValue("id", applicationID.String())
	req = asIdentity(req, employerID, role.Employer)
	w := httptest.NewRecorder()

	s.handleUpdateApplicationStatus(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, db.StatusInterviewing, store.applications[applicationID].Status)

	// The applicant's dashboard topic sees the change without a refresh.
	for _, events := range []<-chan watch.Event{applicantEvents, jobEvents} {
		ev := recvEvent(t, events)
		assert.Equal(t, watch.EventStatusChanged, ev.Type)

		var payload struct {
			ApplicationID uuid.UUID `json:"applicationId"`
			JobID         uuid.UUID `json:"jobId"`
			Status        string    `json:"status"`
		}
		require.NoError(t, json.Unmarshal(ev.Payload, &payload))
		assert.Equal(t, applicationID, payload.ApplicationID)
		assert.Equal(t, job.ID, payload.JobID)
		assert.Equal(t, "Interviewing", payload.Status)
	}
}

func TestUpdateApplicationStatus_NotOwner_PublishesPermissionDenied(t *testing.T) {
	store := newFakeStore()
	_, job := seedJobListing(store)
	s := newTestServerWithStore(store)

	applicationID := uuid.New()
	store.applications[applicationID] = &db.Application{
		ID:          applicationID,
		JobID:       job.ID,
		ApplicantID: uuid.New(),
		Status:      db.StatusApplied,
	}

	deniedEvents, release, err := s.broker.Subscribe(context.Background(), watch.TopicPermissionErrors)
	require.NoError(t, err)
	defer release()

	otherEmployer := uuid.New()
	body := `{"status": "Rejected"}`
	req := httptest.NewRequest(http.MethodPut, "/applications/"+applicationID.String()+"/status", strings.NewReader(body))
	req.SetPathValue("id", applicationID.String())
	req = asIdentity(req, otherEmployer, role.Employer)
	w := httptest.NewRecorder()

	s.handleUpdateApplicationStatus(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	// The status never moved.
	assert.Equal(t, db.StatusApplied, store.applications[applicationID].Status)

	ev := recvEvent(t, deniedEvents)
	assert.Equal(t, watch.EventPermissionDenied, ev.Type)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.Equal(t, otherEmployer.String(), payload["userId"])
}

func TestUpdateApplicationStatus_Missing(t *testing.T) {
	store := newFakeStore()
	employerID, _ := seedJobListing(store)
	s := newTestServerWithStore(store)

	missingID := uuid.New()
	body := `{"status": "Offered"}`
	req := httptest.NewRequest(http.MethodPut, "/applications/"+missingID.String()+"/status", strings.NewReader(body))
	req.SetPathValue("id", missingID.String())
	req = asIdentity(req, employerID, role.Employer)
	w := httptest.NewRecorder()

	s.handleUpdateApplicationStatus(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
