package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcfg "github.com/claritycareer/claritycareer/internal/config"
	"github.com/claritycareer/claritycareer/internal/enrich"
	"github.com/claritycareer/claritycareer/internal/role"
	"github.com/claritycareer/claritycareer/internal/server/middleware"
	"github.com/claritycareer/claritycareer/internal/watch"
)

// newTestServer builds a Server without a database connection. Tests using
// it exercise parsing, validation, and guard paths that never reach the
// store; storage-dependent handler paths substitute a fakeStore via
// newTestServerWithStore, and SQL itself is covered by integration tests.
func newTestServer() *Server {
	jwtService := NewJWTService(&appcfg.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing",
		ExpirationHours: 1,
	})
	s := &Server{
		broker:     watch.NewHub(),
		enricher:   enrich.New(),
		jwtService: jwtService,
	}
	s.userService = NewUserService(newMockUserStore(), &appcfg.PasswordConfig{BcryptCost: 10})
	s.authHandler = NewAuthHandler(s.userService, jwtService)
	return s
}

func asIdentity(req *http.Request, userID uuid.UUID, r role.Role) *http.Request {
	return req.WithContext(middleware.WithIdentity(req.Context(), userID, r))
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestHandleGetJob_InvalidID(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/jobs/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()

	s.handleGetJob(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "Invalid job ID")
}

func TestHandleGetCompany_InvalidID(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/companies/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()

	s.handleGetCompany(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreateJob_InvalidBody(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader("{not json"))
	req = asIdentity(req, uuid.New(), role.Employer)
	w := httptest.NewRecorder()

	s.handleCreateJob(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreateJob_SalaryBoundsRejected(t *testing.T) {
	s := newTestServer()

	body := `{
		"title": "Backend Engineer",
		"companyId": "` + uuid.NewString() + `",
		"location": "Berlin",
		"salaryMin": 150000,
		"salaryMax": 100000,
		"isSalaryNegotiable": false,
		"industry": "Technology",
		"description": "Build and run distributed backend services."
	}`
	req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(body))
	req = asIdentity(req, uuid.New(), role.Employer)
	w := httptest.NewRecorder()

	s.handleCreateJob(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "salaryMax", resp["field"])
}

func TestHandleToggleSavedJob_InvalidID(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/users/me/saved-jobs/not-a-uuid", nil)
	req.SetPathValue("jobId", "not-a-uuid")
	req = asIdentity(req, uuid.New(), role.Employee)
	w := httptest.NewRecorder()

	s.handleToggleSavedJob(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSubmitApplication_InvalidJobID(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/jobs/not-a-uuid/applications", strings.NewReader("{}"))
	req.SetPathValue("id", "not-a-uuid")
	req = asIdentity(req, uuid.New(), role.Employee)
	w := httptest.NewRecorder()

	s.handleSubmitApplication(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUpdateApplicationStatus_UnknownStatus(t *testing.T) {
	s := newTestServer()

	applicationID := uuid.NewString()
	req := httptest.NewRequest(http.MethodPut, "/applications/"+applicationID+"/status",
		strings.NewReader(`{"status": "Ghosted"}`))
	req.SetPathValue("id", applicationID)
	req = asIdentity(req, uuid.New(), role.Employer)
	w := httptest.NewRecorder()

	s.handleUpdateApplicationStatus(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePreviewCompany_MissingWebsite(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/companies/preview", strings.NewReader(`{}`))
	req = asIdentity(req, uuid.New(), role.Employer)
	w := httptest.NewRecorder()

	s.handlePreviewCompany(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "Website is required")
}

func TestHandleCreateSalary_InvalidForm(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/salaries",
		strings.NewReader(`{"jobTitle": "x", "companyId": "not-a-uuid", "location": "", "salary": 0}`))
	w := httptest.NewRecorder()

	s.handleCreateSalary(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseQuerySalary(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  *int64
	}{
		{"missing", "", nil},
		{"malformed", "?min_salary=abc", nil},
		{"negative", "?min_salary=-5", nil},
		{"valid", "?min_salary=90000", ptr(int64(90000))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/jobs"+tt.query, nil)
			got := parseQuerySalary(req, "min_salary")
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

// TestRoutesRequireAuth walks the guarded routes through the real router
// and checks that anonymous requests are rejected before any handler runs.
func TestRoutesRequireAuth(t *testing.T) {
	s := newTestServer()
	mux := s.routes()

	guarded := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/me"},
		{http.MethodPut, "/auth/password"},
		{http.MethodDelete, "/auth/account"},
		{http.MethodPost, "/jobs"},
		{http.MethodPost, "/companies"},
		{http.MethodGet, "/users/me"},
		{http.MethodPut, "/users/me"},
		{http.MethodGet, "/users/me/applications"},
		{http.MethodPost, "/reviews"},
		{http.MethodPut, "/applications/" + uuid.NewString() + "/status"},
	}

	for _, route := range guarded {
		req := httptest.NewRequest(route.method, route.path, strings.NewReader("{}"))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

// TestRoutesEnforceRole checks that a valid token with the wrong role hits
// the 403 guard.
func TestRoutesEnforceRole(t *testing.T) {
	s := newTestServer()
	mux := s.routes()

	employeeToken, err := s.jwtService.GenerateToken(uuid.New(), role.Employee)
	require.NoError(t, err)
	employerToken, err := s.jwtService.GenerateToken(uuid.New(), role.Employer)
	require.NoError(t, err)

	tests := []struct {
		method string
		path   string
		token  string
	}{
		{http.MethodPost, "/jobs", employeeToken},
		{http.MethodPost, "/companies", employeeToken},
		{http.MethodGet, "/users/me/companies", employeeToken},
		{http.MethodGet, "/users/me/saved-jobs", employerToken},
		{http.MethodGet, "/users/me/applications", employerToken},
		{http.MethodPost, "/jobs/" + uuid.NewString() + "/applications", employerToken},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
		req.Header.Set("Authorization", "Bearer "+tt.token)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestCORSPreflightThroughMiddleware(t *testing.T) {
	s := newTestServer()
	handler := s.withCORS(s.routes())

	req := httptest.NewRequest(http.MethodOptions, "/jobs", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestExtractClientID(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.RemoteAddr = "203.0.113.7:54321"
	assert.Equal(t, "203.0.113.7", s.extractClientID(req))

	req.RemoteAddr = "no-port-here"
	assert.Equal(t, "no-port-here", s.extractClientID(req))
}
