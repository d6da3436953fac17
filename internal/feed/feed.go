// Package feed provides the append-only activity feed of the prison.
// Background processes and the command processor record notable
// happenings here; the guardian's log viewer and the spectator hub read
// them back.
package feed

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Category classifies a feed entry.
type Category string

const (
	CategoryEvent    Category = "EVENT"    // random world incidents
	CategoryActivity Category = "ACTIVITY" // autonomous NPC activity
	CategorySecurity Category = "SECURITY" // door locks, alarms
	CategoryPlayer   Category = "PLAYER"   // notable player actions
	CategorySystem   Category = "SYSTEM"   // clock and lifecycle notices
)

// Entry is an immutable record of something that happened in the prison.
type Entry struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	Category Category  `json:"category"`
	Message  string    `json:"message"`
	Severity int       `json:"severity"` // 0 when not applicable
	GameDay  int       `json:"game_day"`
}

// Persister defines how an entry is durably stored.
type Persister interface {
	Append(entry Entry) error
}

// Log is the in-memory append-only activity feed. Writes optionally
// flow through to a Persister; reads never block writers for long.
type Log struct {
	mu        sync.RWMutex
	entries   []Entry
	persister Persister
}

// NewLog creates an activity feed with an optional persister.
func NewLog(persister Persister) *Log {
	return &Log{
		entries:   make([]Entry, 0),
		persister: persister,
	}
}

// Record appends a new entry, stamping its ID and time, and returns it.
func (l *Log) Record(category Category, message string, severity, gameDay int) Entry {
	entry := Entry{
		ID:       uuid.NewString(),
		Time:     time.Now(),
		Category: category,
		Message:  message,
		Severity: severity,
		GameDay:  gameDay,
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()

	if l.persister != nil {
		// Write through without holding up the caller.
		go func(e Entry) {
			_ = l.persister.Append(e)
		}(entry)
	}
	return entry
}

// Recent returns up to n of the newest entries, oldest first.
func (l *Log) Recent(n int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Entry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

// All returns the whole history.
func (l *Log) All() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
