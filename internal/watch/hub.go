// Package watch implements the snapshot-subscription side of the store:
// every committed write re-delivers the full visible project list to each
// subscriber, in server-observed write order. There is no retry; a failed
// snapshot query is delivered to the subscriber as an error and the caller
// decides what to show.
package watch

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/alexispparra/roots-sub000/internal/domain/project"
	"github.com/alexispparra/roots-sub000/internal/logger"
	"github.com/alexispparra/roots-sub000/internal/storage/postgres"
)

// Snapshot is one delivery to a subscriber: the full visible list, or the
// error that prevented computing it.
type Snapshot struct {
	Projects []*project.Project
	Err      error
}

type subscriber struct {
	email string
	ch    chan Snapshot
}

// Hub fans out whole-collection snapshots to per-user subscribers
type Hub struct {
	mu       sync.Mutex
	projects postgres.ProjectRepository
	subs     map[int]*subscriber
	nextID   int
	log      *log.Logger
}

// NewHub creates a hub reading snapshots from the given repository
func NewHub(projects postgres.ProjectRepository) *Hub {
	return &Hub{
		projects: projects,
		subs:     make(map[int]*subscriber),
		log:      logger.Watch(),
	}
}

// Subscribe registers a listener for the given email and immediately queues
// the current snapshot. The returned cancel function tears the subscription
// down; it is safe to call more than once.
func (h *Hub) Subscribe(email string) (<-chan Snapshot, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	// Buffer of one with latest-wins delivery: a slow consumer only ever
	// misses intermediate snapshots, never the newest one.
	sub := &subscriber{email: email, ch: make(chan Snapshot, 1)}
	h.subs[id] = sub

	h.deliverLocked(sub)
	h.log.Debug("Subscriber registered", "email", email, "subscribers", len(h.subs))

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(sub.ch)
			h.log.Debug("Subscriber removed", "email", email, "subscribers", len(h.subs))
		})
	}
	return sub.ch, cancel
}

// Notify re-delivers the current snapshot to every subscriber. Call it after
// each committed write; holding the lock across all deliveries preserves
// per-subscriber ordering relative to writes.
func (h *Hub) Notify() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		h.deliverLocked(sub)
	}
}

func (h *Hub) deliverLocked(sub *subscriber) {
	projects, err := h.projects.GetByParticipantEmail(sub.email)
	if err != nil {
		h.log.Error("Snapshot query failed", "email", sub.email, "error", err)
	}

	snapshot := Snapshot{Projects: projects, Err: err}
	select {
	case sub.ch <- snapshot:
	default:
		// Replace the stale queued snapshot with the new one.
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- snapshot
	}
}

// Subscribers returns the current subscriber count
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
