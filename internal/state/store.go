// Package state persists per-session build state: quantity overrides entered
// between runs and a short run history. The session is bound to one input
// file; processing a different file invalidates the overrides wholesale.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/badno/shopbuild/internal/quantity"
)

const (
	StateVersion     = "1.0"
	DefaultStateFile = "output/.shopbuild-session.json"
)

// HistoryEntry records a single action in the session history.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"` // preview, build, quantities, etc.
	Count     int       `json:"count"`  // Number of rows affected
	Details   string    `json:"details"`
}

// SessionFile is the on-disk session structure.
type SessionFile struct {
	Version     string         `json:"version"`
	SessionID   string         `json:"session_id"`
	SourceFile  string         `json:"source_file"`
	Fingerprint string         `json:"source_fingerprint"`
	Overrides   map[string]int `json:"quantity_overrides"` // keyed by "size|colour|title"
	History     []HistoryEntry `json:"history"`
	LastUpdated time.Time      `json:"last_updated"`
}

// Store manages session state persistence.
type Store struct {
	mu       sync.RWMutex
	filePath string
	session  *SessionFile
}

// NewStore creates a session store backed by the given file.
func NewStore(filePath string) *Store {
	if filePath == "" {
		filePath = DefaultStateFile
	}

	return &Store{
		filePath: filePath,
		session:  emptySession(),
	}
}

func emptySession() *SessionFile {
	return &SessionFile{
		Version:   StateVersion,
		SessionID: uuid.NewString(),
		Overrides: make(map[string]int),
		History:   []HistoryEntry{},
	}
}

// Load reads the session from disk. A missing file starts a fresh session.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.session = emptySession()
			return nil
		}
		return err
	}

	var session SessionFile
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}
	if session.Overrides == nil {
		session.Overrides = make(map[string]int)
	}
	if session.SessionID == "" {
		session.SessionID = uuid.NewString()
	}
	s.session = &session

	return nil
}

// Save writes the session to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.LastUpdated = time.Now()

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.session, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0644)
}

// SessionID returns the current session's identifier.
func (s *Store) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.SessionID
}

// SourceFile returns the input file the session is bound to.
func (s *Store) SourceFile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.SourceFile
}

// BindSource binds the session to an input file. When the file differs from
// the one the session was built against, all overrides are invalidated and
// a fresh session id is assigned. An unbound session adopts the file and
// keeps overrides recorded ahead of the first build. Reports whether
// invalidation happened.
func (s *Store) BindSource(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	fp := fingerprint(path)
	if s.session.SourceFile == path && s.session.Fingerprint == fp {
		return false
	}

	if s.session.SourceFile == "" {
		s.session.SourceFile = path
		s.session.Fingerprint = fp
		return false
	}

	invalidated := len(s.session.Overrides) > 0
	s.session.SessionID = uuid.NewString()
	s.session.SourceFile = path
	s.session.Fingerprint = fp
	s.session.Overrides = make(map[string]int)
	return invalidated
}

// SetOverride records an explicit quantity for one variant key.
func (s *Store) SetOverride(key quantity.Key, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty < 0 {
		qty = 0
	}
	s.session.Overrides[key.String()] = qty
}

// RemoveOverride deletes one override. Reports whether it existed.
func (s *Store) RemoveOverride(key quantity.Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.session.Overrides[key.String()]
	delete(s.session.Overrides, key.String())
	return ok
}

// Overrides returns the recorded overrides as canonical keys. Entries whose
// stored form no longer parses are skipped.
func (s *Store) Overrides() map[quantity.Key]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[quantity.Key]int, len(s.session.Overrides))
	for raw, qty := range s.session.Overrides {
		key, err := quantity.ParseKey(raw)
		if err != nil {
			continue
		}
		out[key] = qty
	}
	return out
}

// ClearOverrides removes all overrides.
func (s *Store) ClearOverrides() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.session.Overrides)
	s.session.Overrides = make(map[string]int)
	return n
}

// AddHistory appends an entry to the session history.
func (s *Store) AddHistory(action string, count int, details string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.History = append(s.session.History, HistoryEntry{
		Timestamp: time.Now(),
		Action:    action,
		Count:     count,
		Details:   details,
	})
}

// History returns a copy of the session history.
func (s *Store) History() []HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]HistoryEntry, len(s.session.History))
	copy(history, s.session.History)
	return history
}

// fingerprint identifies an input file cheaply by size and mtime. Good
// enough to detect a new upload between runs.
func fingerprint(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d-%d", info.Size(), info.ModTime().UnixNano())
}
