// Package journal appends entries and maintains the day streak.
package journal

import (
	"errors"
	"time"

	"emobots/emocheck/achievement"
	"emobots/emocheck/profile"
)

// ErrEmptyEntry rejects a commit with neither emotions nor text.
var ErrEmptyEntry = errors.New("journal: entry has no emotions and no text")

// Commit validates and appends an entry, recomputes the streak and sweeps
// the achievement catalog. It returns the names of achievements unlocked by
// this commit, in catalog order. The record is mutated in place; callers
// persist it afterwards.
//
// Streak semantics: calendar days are compared in UTC. The streak starts at
// 1 on the first entry ever, increments when the previous entry was logged
// on a different day, and is otherwise unchanged. It never resets on a gap.
func Commit(r *profile.Record, entry profile.Entry, now time.Time) ([]string, error) {
	if len(entry.Emotions) == 0 && entry.Text == "" {
		return nil, ErrEmptyEntry
	}

	now = now.UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}

	prev := r.LastEntry()
	r.History = append(r.History, entry)

	switch {
	case prev == nil:
		r.Streak = 1
	case !sameDay(prev.CreatedAt, now):
		r.Streak++
	}

	return achievement.EvaluateNew(r), nil
}

// CompleteBreathing credits one finished breathing sequence and sweeps the
// catalog so ZenMaster can unlock. Mirrors Commit's contract: mutates in
// place, returns new unlocks.
func CompleteBreathing(r *profile.Record) []string {
	r.BreathingCount++
	return achievement.EvaluateNew(r)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
