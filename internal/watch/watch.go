// Package watch provides change notification for job board data.
//
// Mutations publish events to a Broker; live views subscribe to a topic and
// receive every event published after they attached. The Broker interface
// keeps the core testable with synthetic events, with an in-process Hub for
// single-node deployments and tests, and a Redis-backed implementation for
// fan-out across nodes.
package watch

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Event kinds published on the broker.
const (
	EventCreated          = "created"
	EventStatusChanged    = "status_changed"
	EventPermissionDenied = "permission_denied"
)

// Topic names. Per-entity topics append the entity id, e.g.
// TopicJobApplications + jobID.
const (
	TopicJobs                  = "jobs"
	TopicJobApplications       = "applications:job:"
	TopicApplicantApplications = "applications:applicant:"
	TopicPermissionErrors      = "permission-errors"
)

// Event is one change notification.
type Event struct {
	Type    string          `json:"type"`
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload,omitempty"`
	At      time.Time       `json:"at"`
}

// NewEvent builds an event for topic with the payload marshaled to JSON.
// Marshal failures degrade to an event without a payload rather than
// blocking the mutation that triggered it.
func NewEvent(eventType, topic string, payload any) Event {
	ev := Event{Type: eventType, Topic: topic, At: time.Now().UTC()}
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			ev.Payload = data
		}
	}
	return ev
}

// Broker delivers events from publishers to topic subscribers.
type Broker interface {
	// Publish delivers ev to every current subscriber of topic.
	Publish(ctx context.Context, topic string, ev Event) error
	// Subscribe returns a channel of events for topic and a release
	// function. The channel is closed after release.
	Subscribe(ctx context.Context, topic string) (<-chan Event, func(), error)
}

// subscriberBuffer is the per-subscriber channel depth. A subscriber that
// falls this far behind loses events rather than blocking publishers.
const subscriberBuffer = 16

// Hub is an in-process Broker.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{}
}

// NewHub creates an empty in-process broker.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan Event]struct{})}
}

// Publish delivers ev to every subscriber of topic. Slow subscribers are
// skipped, never waited on.
func (h *Hub) Publish(_ context.Context, topic string, ev Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[topic] {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

// Subscribe attaches a new subscriber to topic.
func (h *Hub) Subscribe(_ context.Context, topic string) (<-chan Event, func(), error) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[chan Event]struct{})
	}
	h.subs[topic][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[topic], ch)
			if len(h.subs[topic]) == 0 {
				delete(h.subs, topic)
			}
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, release, nil
}
