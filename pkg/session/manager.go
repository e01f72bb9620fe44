package session

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/store"
)

// Default manager limits.
const (
	DefaultMaxSessions = 100
	DefaultTTL         = 2 * time.Hour
)

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	MaxSessions int
	TTL         time.Duration

	// Store persists documents. Nil keeps sessions in memory only.
	Store store.Store
	// Debounce is the quiet interval before a change is written.
	Debounce time.Duration

	Session Options
	Logger  *log.Logger
}

// Manager tracks open sessions by id.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	maxSessions int
	ttl         time.Duration

	store  store.Store
	writes *store.Debouncer
	opts   Options
	logger *log.Logger
}

// Info summarizes a session for listings.
type Info struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Nodes      int       `json:"nodes"`
	CreatedAt  time.Time `json:"createdAt"`
	LastAccess time.Time `json:"lastAccess"`
}

// Info summarizes the session.
func (s *Session) Info() Info {
	return Info{
		ID:         s.ID,
		Name:       s.Name,
		Nodes:      s.Len(),
		CreatedAt:  s.CreatedAt,
		LastAccess: s.LastAccess(),
	}
}

// NewManager creates a session manager.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	m := &Manager{
		sessions:    make(map[string]*Session),
		maxSessions: cfg.MaxSessions,
		ttl:         cfg.TTL,
		store:       cfg.Store,
		opts:        cfg.Session,
		logger:      cfg.Logger,
	}
	if cfg.Store != nil {
		m.writes = store.NewDebouncer(cfg.Store, cfg.Debounce, cfg.Logger)
		m.writes.OnError = func(name string, err error) {
			m.logger.Warn("background save failed", "document", name, "error", err)
		}
	}
	return m
}

func (m *Manager) sessionOptions() Options {
	opts := m.opts
	if m.writes != nil {
		next := opts.OnChange
		opts.OnChange = func(name string, data mindmap.Data) {
			m.writes.Schedule(name, data)
			if next != nil {
				next(name, data)
			}
		}
	}
	return opts
}

// Create opens a session on data. A nil data starts from the default
// single-root document. The document is persisted under name right away.
func (m *Manager) Create(name string, data *mindmap.Data) (*Session, error) {
	if err := errors.ValidateDocumentName(name); err != nil {
		return nil, err
	}
	var sess *Session
	if data != nil {
		sess = FromData(name, *data, m.sessionOptions())
	} else {
		sess = New(name, mindmap.NewDefault(), m.sessionOptions())
	}
	if m.writes != nil {
		m.writes.Schedule(name, sess.Data())
	}
	m.add(sess)
	return sess, nil
}

// Open loads name from the store and opens a session on it. A document that
// was never saved starts as the default single-root map.
func (m *Manager) Open(ctx context.Context, name string) (*Session, error) {
	if err := errors.ValidateDocumentName(name); err != nil {
		return nil, err
	}
	if m.store == nil {
		return m.Create(name, nil)
	}
	data, err := m.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	if data == nil {
		m.logger.Debug("document not found, starting fresh", "document", name)
		return m.Create(name, nil)
	}
	sess := FromData(name, *data, m.sessionOptions())
	m.add(sess)
	return sess, nil
}

func (m *Manager) add(sess *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.maxSessions {
		var oldestID string
		var oldestTime time.Time
		for id, s := range m.sessions {
			if at := s.LastAccess(); oldestTime.IsZero() || at.Before(oldestTime) {
				oldestID = id
				oldestTime = at
			}
		}
		delete(m.sessions, oldestID)
		m.logger.Debug("evicted session", "id", oldestID)
	}
	m.sessions[sess.ID] = sess
	m.logger.Debug("opened session", "id", sess.ID, "document", sess.Name)
}

// Get returns a session by id and refreshes its last access time.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	sess.touch(time.Now())
	return sess, nil
}

// Delete closes a session. Pending writes for its document still complete.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	delete(m.sessions, id)
	return nil
}

// List summarizes open sessions, most recently used first.
func (m *Manager) List() []Info {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Info, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastAccess.After(out[j].LastAccess) })
	return out
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Cleanup removes sessions idle for longer than the TTL.
func (m *Manager) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.ttl)
	removed := 0
	for id, s := range m.sessions {
		if s.LastAccess().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Debug("expired sessions", "count", removed)
	}
	return removed
}

// StartCleanup starts a background cleanup goroutine and returns a stop
// function.
func (m *Manager) StartCleanup(interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				m.Cleanup()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// Flush writes every pending change now.
func (m *Manager) Flush(ctx context.Context) error {
	if m.writes == nil {
		return nil
	}
	return m.writes.Flush(ctx)
}

// Close flushes pending writes. It does not close the store.
func (m *Manager) Close() error {
	if m.writes == nil {
		return nil
	}
	return m.writes.Close()
}
