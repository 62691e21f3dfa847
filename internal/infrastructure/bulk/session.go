package bulk

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jeenmata/impex/internal/domain/shared"
)

// State is the lifecycle state of an upload session
type State string

const (
	StateValidated State = "validated"
	StateImporting State = "importing"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Session holds a validated upload until it is imported or expires
type Session struct {
	ID            string            `json:"id"`
	Entity        EntityType        `json:"entity"`
	FileName      string            `json:"file_name"`
	FileSize      int64             `json:"file_size"`
	UploadedBy    string            `json:"uploaded_by,omitempty"`
	State         State             `json:"state"`
	Result        *ValidationResult `json:"result"`
	ImportedCount int               `json:"imported_count"`
	CreatedAt     time.Time         `json:"created_at"`
	ExpiresAt     time.Time         `json:"expires_at"`
}

// NewSession creates a validated session that expires after ttl
func NewSession(entity EntityType, fileName string, fileSize int64, uploadedBy string, result *ValidationResult, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Entity:     entity,
		FileName:   fileName,
		FileSize:   fileSize,
		UploadedBy: uploadedBy,
		State:      StateValidated,
		Result:     result,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
}

// Expired reports whether the session is past its TTL
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionStore keeps upload sessions between validate and import. Stores
// hand out copies; state changes go through Save or Claim.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	// Claim moves a live session from one state to another in one step and
	// returns the updated copy. It fails with INVALID_STATE when the session
	// is not in from.
	Claim(ctx context.Context, id string, from, to State) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// MemorySessionStore is a SessionStore with a background sweep of expired
// sessions
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// SessionStoreOption configures a MemorySessionStore
type SessionStoreOption func(*MemorySessionStore)

// WithClock sets the time source used for expiry checks
func WithClock(now func() time.Time) SessionStoreOption {
	return func(s *MemorySessionStore) {
		s.now = now
	}
}

// NewMemorySessionStore creates a store and starts its sweep loop. A zero
// interval disables the loop.
func NewMemorySessionStore(sweepInterval time.Duration, opts ...SessionStoreOption) *MemorySessionStore {
	s := &MemorySessionStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if sweepInterval > 0 {
		go s.sweepLoop(sweepInterval)
	}
	return s
}

func (s *MemorySessionStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// Stop ends the sweep loop
func (s *MemorySessionStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Save stores a copy of session
func (s *MemorySessionStore) Save(_ context.Context, session *Session) error {
	cp := *session
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = &cp
	return nil
}

// Get returns a copy of a live session
func (s *MemorySessionStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, err := s.live(id)
	if err != nil {
		return nil, err
	}
	cp := *session
	return &cp, nil
}

// Claim moves a live session from one state to another under the store lock
func (s *MemorySessionStore) Claim(_ context.Context, id string, from, to State) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.live(id)
	if err != nil {
		return nil, err
	}
	if session.State != from {
		return nil, shared.NewDomainError("INVALID_STATE", "Upload session has already been "+string(session.State))
	}
	session.State = to
	cp := *session
	return &cp, nil
}

// live must be called with the lock held
func (s *MemorySessionStore) live(id string) (*Session, error) {
	session, ok := s.sessions[id]
	if !ok || session.Expired(s.now()) {
		return nil, shared.NewNotFoundError("Upload session")
	}
	return session, nil
}

// Delete removes a session
func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Cleanup removes expired sessions
func (s *MemorySessionStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
		}
	}
}

// Len returns the number of stored sessions, expired or not
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
