package session

import (
	"errors"
	"sync"

	domain "coachdesk/internal/domain/session"
)

// Registry errors
var (
	ErrNotFound  = errors.New("session not found")
	ErrCoachBusy = errors.New("a session is already active for this coach")
)

// Registry holds live meeting sessions in memory. Sessions are transient by
// design: they exist only for the lifetime of the process and are discarded
// when released. The registry enforces the single concurrency slot: at most
// one active session per coach.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session // by session ID
	byCoach  map[string]string          // coach ID -> active session ID
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*domain.Session),
		byCoach:  make(map[string]string),
	}
}

// Add registers a new session instance under its coach's slot.
// PRE: s is idle or active
// POST: session retrievable by ID; coach slot occupied
// Returns ErrCoachBusy if the coach already holds an active session.
func (r *Registry) Add(s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if activeID, ok := r.byCoach[s.CoachID]; ok {
		if existing, found := r.sessions[activeID]; found && existing.IsActive() {
			return ErrCoachBusy
		}
		// Stale slot from an ended-but-unreleased session; reclaim it.
		delete(r.byCoach, s.CoachID)
	}
	r.sessions[s.ID] = s
	r.byCoach[s.CoachID] = s.ID
	return nil
}

// Get returns a session by ID.
// POST: returns the live session instance or ErrNotFound
func (r *Registry) Get(id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// ActiveForCoach returns the coach's active session, if any.
func (r *Registry) ActiveForCoach(coachID string) (*domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byCoach[coachID]
	if !ok {
		return nil, false
	}
	s, found := r.sessions[id]
	if !found || !s.IsActive() {
		return nil, false
	}
	return s, true
}

// Release discards a session instance. The chat log becomes unreachable
// after this call; callers archive the transcript first if they need it.
// Idempotent.
// POST: session absent; coach slot freed if it pointed at this session
func (r *Registry) Release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return
	}
	delete(r.sessions, id)
	if r.byCoach[s.CoachID] == id {
		delete(r.byCoach, s.CoachID)
	}
}

// ForceRelease frees a coach's slot regardless of session state. Admin-only
// escape hatch for a slot wedged by an abruptly closed coach context.
// POST: coach slot freed; the session, if any, is discarded
func (r *Registry) ForceRelease(coachID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byCoach[coachID]; ok {
		delete(r.sessions, id)
		delete(r.byCoach, coachID)
	}
}
