package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/claritycareer/claritycareer/internal/server/middleware"
	"github.com/claritycareer/claritycareer/internal/watch"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// streamTopic subscribes to a watch topic and relays its events as SSE
// until the client disconnects.
func (s *Server) streamTopic(w http.ResponseWriter, r *http.Request, topic string) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	events, release, err := s.broker.Subscribe(r.Context(), topic)
	if err != nil {
		sse.WriteError("Failed to subscribe: " + err.Error())
		return
	}
	defer release()

	if err := sse.WriteEvent("subscribed", map[string]string{"topic": topic}); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := sse.WriteEvent(ev.Type, ev); err != nil {
				return
			}
		}
	}
}

// handleWatchJobs streams newly posted listings
func (s *Server) handleWatchJobs(w http.ResponseWriter, r *http.Request) {
	s.streamTopic(w, r, watch.TopicJobs)
}

// handleWatchMyApplications streams changes to the caller's own
// applications
func (s *Server) handleWatchMyApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.streamTopic(w, r, watch.TopicApplicantApplications+userID.String())
}

// handleWatchJobApplications streams incoming applications for one of the
// caller's listings
func (s *Server) handleWatchJobApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	if s.jobOwnedBy(w, r, jobID, userID) == nil {
		return
	}

	s.streamTopic(w, r, watch.TopicJobApplications+jobID.String())
}

// handleWatchPermissionErrors streams ownership denials so dashboards can
// surface them
func (s *Server) handleWatchPermissionErrors(w http.ResponseWriter, r *http.Request) {
	s.streamTopic(w, r, watch.TopicPermissionErrors)
}
