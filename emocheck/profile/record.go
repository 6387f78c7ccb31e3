// Package profile defines the durable per-user record.
package profile

import (
	"strings"
	"time"

	"emobots/emocheck/session"
)

// Entry is one committed journal entry. Immutable once appended.
type Entry struct {
	Emotions  []string  `json:"emotions"`
	Intensity *int      `json:"intensity,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// WordCount returns the number of whitespace-delimited tokens in the text.
func (e Entry) WordCount() int {
	return len(strings.Fields(e.Text))
}

// Record is the per-user aggregate, persisted as a single JSON document.
// The active breathing timer handle lives in an in-memory registry, never
// here; the session state tag is all that survives a restart.
type Record struct {
	History        []Entry       `json:"history"`
	Streak         int           `json:"streak"`
	Unlocked       []string      `json:"unlocked"`
	BreathingCount int           `json:"breathing_count"`
	Session        session.State `json:"session"`
}

// NewRecord returns the default record created on first contact.
func NewRecord() *Record {
	return &Record{Session: session.NewState()}
}

// HasUnlocked reports whether the named achievement is already unlocked.
func (r *Record) HasUnlocked(name string) bool {
	for _, u := range r.Unlocked {
		if u == name {
			return true
		}
	}
	return false
}

// Unlock records an achievement. Unlocks are monotonic; repeats are ignored.
func (r *Record) Unlock(name string) {
	if r.HasUnlocked(name) {
		return
	}
	r.Unlocked = append(r.Unlocked, name)
}

// LastEntry returns the most recent entry, or nil for an empty history.
func (r *Record) LastEntry() *Entry {
	if len(r.History) == 0 {
		return nil
	}
	return &r.History[len(r.History)-1]
}

// EmotionsLogged returns the set of emotion names across all history.
func (r *Record) EmotionsLogged() map[string]bool {
	seen := make(map[string]bool)
	for _, e := range r.History {
		for _, name := range e.Emotions {
			seen[name] = true
		}
	}
	return seen
}
