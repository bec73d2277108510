package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/weldyapp/weldy/internal/engine"
)

// ErrNotFound is returned when a session id is unknown.
var ErrNotFound = errors.New("session not found")

// Record is a stored session with bookkeeping timestamps.
type Record struct {
	Session   engine.Session `json:"session"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Store persists sessions between requests.
type Store interface {
	Create(ctx context.Context, s engine.Session) (Record, error)
	Get(ctx context.Context, id string) (Record, error)
	Update(ctx context.Context, s engine.Session) (Record, error)
	Modify(ctx context.Context, id string, fn func(engine.Session) (engine.Session, error)) (Record, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Record, error)
}

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Record
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Record),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create stores s under a new id, or under s.ID if already set.
func (m *MemoryStore) Create(_ context.Context, s engine.Session) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if _, exists := m.sessions[s.ID]; exists {
		return Record{}, fmt.Errorf("creating session: id %q already exists", s.ID)
	}
	now := m.now()
	rec := Record{Session: s.Clone(), CreatedAt: now, UpdatedAt: now}
	m.sessions[s.ID] = rec
	return copyRecord(rec), nil
}

// Get returns the session with id.
func (m *MemoryStore) Get(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.sessions[id]
	if !ok {
		return Record{}, fmt.Errorf("getting session %q: %w", id, ErrNotFound)
	}
	return copyRecord(rec), nil
}

// Update replaces an existing session.
func (m *MemoryStore) Update(_ context.Context, s engine.Session) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.sessions[s.ID]
	if !ok {
		return Record{}, fmt.Errorf("updating session %q: %w", s.ID, ErrNotFound)
	}
	rec.Session = s.Clone()
	rec.UpdatedAt = m.now()
	m.sessions[s.ID] = rec
	return copyRecord(rec), nil
}

// Modify applies fn to the stored session and saves the result while holding
// the store lock, so concurrent actions on one session are serialized. When fn
// fails the stored session is left unchanged.
func (m *MemoryStore) Modify(_ context.Context, id string, fn func(engine.Session) (engine.Session, error)) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.sessions[id]
	if !ok {
		return Record{}, fmt.Errorf("modifying session %q: %w", id, ErrNotFound)
	}
	next, err := fn(rec.Session.Clone())
	if err != nil {
		return Record{}, err
	}
	next.ID = id
	rec.Session = next.Clone()
	rec.UpdatedAt = m.now()
	m.sessions[id] = rec
	return copyRecord(rec), nil
}

// Delete removes a session.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("deleting session %q: %w", id, ErrNotFound)
	}
	delete(m.sessions, id)
	return nil
}

// List returns all sessions, oldest first.
func (m *MemoryStore) List(_ context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, 0, len(m.sessions))
	for _, rec := range m.sessions {
		out = append(out, copyRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Session.ID < out[j].Session.ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func copyRecord(r Record) Record {
	r.Session = r.Session.Clone()
	return r
}
