// Package store is an in-memory, mutex-protected cache of decision records,
// keyed by decision ID and indexed by session ID, backing the ambient HTTP
// surface's GET /v1/decisions/{id} lookup and its per-session recency view.
package store

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/nl-sre/semantico/engine"
)

const (
	LogLevelDebug = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var currentLogLevel = LogLevelInfo

func logf(level int, format string, v ...interface{}) {
	if level >= currentLogLevel {
		log.Printf(format, v...)
	}
}

// ErrNotFound is returned by Get when no decision is stored under id.
var ErrNotFound = errors.New("store: decision not found")

// maxRecentPerSession bounds how many decision IDs a session's recency
// index retains; the oldest entry is evicted once the bound is exceeded.
const maxRecentPerSession = 20

// Record is the externally-facing decision record: the decision ID and
// session ID that key it, the caller-supplied timestamp it was minted
// with, and the core engine.Decision payload.
type Record struct {
	ID        string          `json:"id"`
	SessionID string          `json:"session_id"`
	Timestamp string          `json:"timestamp,omitempty"`
	Decision  engine.Decision `json:"decision"`
}

// DecisionStore holds Records in memory, JSON-marshaled on write the way a
// durable store would, so the in-memory shape and a future on-disk one stay
// interchangeable. Records are indexed both by decision ID, for direct
// lookup, and by session ID, for the "recent decisions in this session"
// view.
type DecisionStore struct {
	mu     sync.Mutex
	data   map[string]string   // decision ID -> JSON-marshaled Record
	bySess map[string][]string // session ID -> decision IDs, newest first
}

// New returns an empty DecisionStore.
func New() *DecisionStore {
	return &DecisionStore{
		data:   make(map[string]string),
		bySess: make(map[string][]string),
	}
}

// Put stores record under record.ID, overwriting any previous entry with
// the same ID, and prepends record.ID to record.SessionID's recency index.
func (s *DecisionStore) Put(record Record) error {
	logf(LogLevelDebug, "store: storing decision %s for session %s", record.ID, record.SessionID)

	jsonData, err := json.Marshal(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[record.ID] = string(jsonData)

	if record.SessionID != "" {
		ids := append([]string{record.ID}, s.bySess[record.SessionID]...)
		if len(ids) > maxRecentPerSession {
			ids = ids[:maxRecentPerSession]
		}
		s.bySess[record.SessionID] = ids
	}
	return nil
}

// Get retrieves the record stored under id.
func (s *DecisionStore) Get(id string) (Record, error) {
	logf(LogLevelDebug, "store: retrieving decision %s", id)

	s.mu.Lock()
	raw, ok := s.data[id]
	s.mu.Unlock()
	if !ok {
		return Record{}, ErrNotFound
	}

	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// RecentForSession returns up to limit records for sessionID, most recent
// first. An unknown session ID yields an empty, non-error result.
func (s *DecisionStore) RecentForSession(sessionID string, limit int) ([]Record, error) {
	logf(LogLevelDebug, "store: listing recent decisions for session %s", sessionID)

	s.mu.Lock()
	ids := append([]string(nil), s.bySess[sessionID]...)
	s.mu.Unlock()

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		record, err := s.Get(id)
		if err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// Delete removes id from the store, if present. Deleting an absent id is
// not an error. The session recency index is left to expire the ID
// naturally via eviction rather than being scanned and rewritten here.
func (s *DecisionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}
