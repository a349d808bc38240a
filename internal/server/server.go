// Package server provides the HTTP REST API for the ClarityCareer job board.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claritycareer/claritycareer/internal/config"
	"github.com/claritycareer/claritycareer/internal/db"
	"github.com/claritycareer/claritycareer/internal/enrich"
	"github.com/claritycareer/claritycareer/internal/role"
	"github.com/claritycareer/claritycareer/internal/server/middleware"
	"github.com/claritycareer/claritycareer/internal/server/ratelimit"
	"github.com/claritycareer/claritycareer/internal/stats"
	"github.com/claritycareer/claritycareer/internal/watch"
)

// statsRefreshInterval is how often the cached salary aggregates are
// rebuilt when Redis is configured.
const statsRefreshInterval = 30 * time.Minute

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          Store
	broker      watch.Broker
	stats       *stats.Service
	enricher    *enrich.Extractor
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:       database,
		enricher: enrich.New(),
	}

	// Redis is optional: without it the watch broker runs in-process and
	// salary aggregates are computed per request.
	if cfg.RedisURL != "" {
		rdb, err := watch.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		s.broker = watch.NewRedisBroker(rdb)
		s.stats = stats.New(database, rdb)
		if err := s.stats.StartRefresher(context.Background(), statsRefreshInterval); err != nil {
			return nil, fmt.Errorf("failed to start stats refresher: %w", err)
		}
	} else {
		s.broker = watch.NewHub()
		s.stats = stats.New(database, nil)
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for watch streams
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router with per-route auth and role guards.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	authed := middleware.Auth(s.jwtService.AsTokenValidator())
	optional := middleware.OptionalAuth(s.jwtService.AsTokenValidator())
	employer := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireRole(role.Employer)(h))
	}
	employee := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireRole(role.Employee)(h))
	}

	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("GET /auth/me", authed(http.HandlerFunc(s.handleMe)))
	mux.Handle("PUT /auth/password", authed(http.HandlerFunc(s.handleUpdatePassword)))
	mux.Handle("DELETE /auth/account", authed(http.HandlerFunc(s.handleDeleteAccount)))

	// Job listings
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/industries", s.handleListIndustries)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.Handle("POST /jobs", employer(s.handleCreateJob))
	mux.Handle("GET /jobs/{id}/applications", employer(s.handleListJobApplications))
	mux.Handle("POST /jobs/{id}/applications", employee(s.handleSubmitApplication))

	// Companies
	mux.HandleFunc("GET /companies", s.handleListCompanies)
	mux.HandleFunc("GET /companies/{id}", s.handleGetCompany)
	mux.HandleFunc("GET /companies/{id}/jobs", s.handleListCompanyJobs)
	mux.Handle("POST /companies", employer(s.handleCreateCompany))
	mux.Handle("POST /companies/preview", employer(s.handlePreviewCompany))

	// Company insights
	mux.HandleFunc("GET /reviews", s.handleListReviews)
	mux.HandleFunc("GET /salaries", s.handleListSalaries)
	mux.HandleFunc("GET /interviews", s.handleListInterviews)
	mux.HandleFunc("GET /companies/{id}/reviews", s.handleListReviews)
	mux.HandleFunc("GET /companies/{id}/salaries", s.handleListSalaries)
	mux.HandleFunc("GET /companies/{id}/interviews", s.handleListInterviews)
	mux.HandleFunc("GET /companies/{id}/stats", s.handleCompanyStats)
	mux.HandleFunc("GET /stats/salaries", s.handleAllStats)
	mux.Handle("POST /reviews", authed(http.HandlerFunc(s.handleCreateReview)))
	mux.Handle("POST /interviews", authed(http.HandlerFunc(s.handleCreateInterview)))
	mux.Handle("POST /salaries", optional(http.HandlerFunc(s.handleCreateSalary)))

	// Applications
	mux.Handle("PUT /applications/{id}/status", employer(s.handleUpdateApplicationStatus))

	// Dashboard views
	mux.Handle("GET /users/me", authed(http.HandlerFunc(s.handleGetProfile)))
	mux.Handle("PUT /users/me", authed(http.HandlerFunc(s.handleUpdateProfile)))
	mux.Handle("PUT /users/me/work-experiences", authed(http.HandlerFunc(s.handleUpsertWorkExperience)))
	mux.Handle("DELETE /users/me/work-experiences/{id}", authed(http.HandlerFunc(s.handleDeleteWorkExperience)))
	mux.Handle("PUT /users/me/educations", authed(http.HandlerFunc(s.handleUpsertEducation)))
	mux.Handle("DELETE /users/me/educations/{id}", authed(http.HandlerFunc(s.handleDeleteEducation)))
	mux.Handle("GET /users/me/saved-jobs", employee(s.handleListSavedJobs))
	mux.Handle("POST /users/me/saved-jobs/{jobId}", employee(s.handleToggleSavedJob))
	mux.Handle("GET /users/me/applications", employee(s.handleListMyApplications))
	mux.Handle("GET /users/me/jobs", employer(s.handleListPostedJobs))
	mux.Handle("GET /users/me/companies", employer(s.handleListMyCompanies))

	// Live update streams
	mux.HandleFunc("GET /watch/jobs", s.handleWatchJobs)
	mux.Handle("GET /watch/applications", employee(s.handleWatchMyApplications))
	mux.Handle("GET /jobs/{id}/applications/watch", employer(s.handleWatchJobApplications))
	mux.Handle("GET /watch/permission-errors", authed(http.HandlerFunc(s.handleWatchPermissionErrors)))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.stats != nil {
		s.stats.Stop()
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleMe returns the caller's profile with role-dependent navigation.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.MeWithUserID(w, r, userID)
}

// handleUpdatePassword handles password update requests.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// handleDeleteAccount handles account deletion requests.
func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.DeleteAccountWithUserID(w, r, userID)
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
