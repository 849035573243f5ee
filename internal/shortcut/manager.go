package shortcut

import "time"

// Store is the persistence collaborator. Calls are treated as fallible
// remote operations; the manager logs failures and does not retry.
type Store interface {
	List() ([]Shortcut, error)
	Create(s Shortcut) error
	Update(s Shortcut) error
	Delete(id int64) error
}

// Logger is the minimal logging surface the manager needs.
type Logger interface {
	Debug(msg string, args ...any)
	Error(msg string, args ...any)
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}

// Manager runs the save path: name defaulting, duplicate checking, identity
// assignment, and the store call.
type Manager struct {
	store Store
	log   Logger
	now   func() time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(log Logger) ManagerOption {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithClock overrides the identity clock. Used by tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a manager backed by the given store.
func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store: store,
		log:   nopLogger{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Save persists a candidate. Returns true if a create call was issued.
//
// A candidate without a name is named after the first sequence element. A
// candidate whose sequence duplicates a different existing shortcut is
// dropped without error. Store failures are logged and swallowed; the save
// simply does not happen.
func (m *Manager) Save(candidate Shortcut) bool {
	if len(candidate.Sequence) == 0 {
		m.log.Debug("save skipped: empty sequence")
		return false
	}
	if candidate.Name == "" {
		candidate.Name = candidate.Sequence[0]
	}

	existing, err := m.store.List()
	if err != nil {
		m.log.Error("list shortcuts: %v", err)
		return false
	}
	if IsDuplicate(candidate, existing) {
		m.log.Debug("save dropped: duplicate sequence %v", candidate.Sequence)
		return false
	}

	candidate.ID = m.now().UnixMilli()
	if err := m.store.Create(candidate); err != nil {
		m.log.Error("create shortcut %d: %v", candidate.ID, err)
		return false
	}
	return true
}

// Update replaces an existing shortcut wholesale. The duplicate guard still
// applies: an update colliding with a different shortcut's sequence is
// dropped. Returns true if the store call was issued.
func (m *Manager) Update(s Shortcut) bool {
	if !s.Saved() || len(s.Sequence) == 0 {
		m.log.Debug("update skipped: unsaved shortcut or empty sequence")
		return false
	}
	if s.Name == "" {
		s.Name = s.Sequence[0]
	}

	existing, err := m.store.List()
	if err != nil {
		m.log.Error("list shortcuts: %v", err)
		return false
	}
	if IsDuplicate(s, existing) {
		m.log.Debug("update dropped: duplicate sequence %v", s.Sequence)
		return false
	}

	if err := m.store.Update(s); err != nil {
		m.log.Error("update shortcut %d: %v", s.ID, err)
		return false
	}
	return true
}

// Delete removes a shortcut by id. Failures are logged, not surfaced.
func (m *Manager) Delete(id int64) bool {
	if err := m.store.Delete(id); err != nil {
		m.log.Error("delete shortcut %d: %v", id, err)
		return false
	}
	return true
}

// List returns the persisted shortcuts, or nil on store failure.
func (m *Manager) List() []Shortcut {
	shortcuts, err := m.store.List()
	if err != nil {
		m.log.Error("list shortcuts: %v", err)
		return nil
	}
	return shortcuts
}
