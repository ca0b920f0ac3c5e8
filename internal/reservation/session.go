package reservation

import (
	"context"
	"sync"
	"time"

	"github.com/nekogravitycat/court-reservation/internal/pkg/clock"
)

// SessionKey identifies one user's reservation page for one court.
type SessionKey struct {
	UserID  string
	CourtID string
}

// SessionStore keeps selections between requests and guards checkout with a
// busy flag so a second pay request cannot run while one is pending.
type SessionStore interface {
	// Load returns the stored selection, or an empty one when there is none.
	Load(ctx context.Context, key SessionKey) (*Selection, error)
	Save(ctx context.Context, key SessionKey, sel *Selection) error
	Delete(ctx context.Context, key SessionKey) error

	// Acquire sets the busy flag, reporting false when it is already set.
	Acquire(ctx context.Context, key SessionKey) (bool, error)
	Release(ctx context.Context, key SessionKey) error
	// Busy reports whether a checkout currently holds the flag.
	Busy(ctx context.Context, key SessionKey) (bool, error)
}

type memoryEntry struct {
	sel     Selection
	expires time.Time
}

type memorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	clock    clock.Clock
	sessions map[SessionKey]memoryEntry
	busy     map[SessionKey]time.Time
}

// NewMemorySessionStore keeps sessions in process memory. Entries idle for
// longer than ttl are dropped; the busy flag expires after ttl as well.
func NewMemorySessionStore(ttl time.Duration, clk clock.Clock) SessionStore {
	return &memorySessionStore{
		ttl:      ttl,
		clock:    clk,
		sessions: make(map[SessionKey]memoryEntry),
		busy:     make(map[SessionKey]time.Time),
	}
}

func cloneSelection(s Selection) *Selection {
	out := &Selection{Ranges: append([]Range(nil), s.Ranges...)}
	if s.Anchor != nil {
		a := *s.Anchor
		out.Anchor = &a
	}
	if s.Current != nil {
		c := *s.Current
		out.Current = &c
	}
	return out
}

func (m *memorySessionStore) Load(ctx context.Context, key SessionKey) (*Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[key]
	if !ok || !m.clock.Now().Before(e.expires) {
		delete(m.sessions, key)
		return &Selection{}, nil
	}
	return cloneSelection(e.sel), nil
}

func (m *memorySessionStore) Save(ctx context.Context, key SessionKey, sel *Selection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[key] = memoryEntry{sel: *cloneSelection(*sel), expires: m.clock.Now().Add(m.ttl)}
	return nil
}

func (m *memorySessionStore) Delete(ctx context.Context, key SessionKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, key)
	return nil
}

func (m *memorySessionStore) Acquire(ctx context.Context, key SessionKey) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	if until, ok := m.busy[key]; ok && now.Before(until) {
		return false, nil
	}
	m.busy[key] = now.Add(m.ttl)
	return true, nil
}

func (m *memorySessionStore) Release(ctx context.Context, key SessionKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.busy, key)
	return nil
}

func (m *memorySessionStore) Busy(ctx context.Context, key SessionKey) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	until, ok := m.busy[key]
	return ok && m.clock.Now().Before(until), nil
}
