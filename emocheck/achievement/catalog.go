// Package achievement defines the milestone catalog and its unlock rules.
package achievement

import (
	"emobots/emocheck/emotion"
	"emobots/emocheck/profile"
)

// Achievement is one milestone. Unlocked is a pure predicate over the
// post-mutation record; it must not modify it.
type Achievement struct {
	Name        string
	Icon        string
	Description string
	Unlocked    func(r *profile.Record) bool
}

// Catalog lists every achievement. Declaration order is the notification
// order when several unlock on the same commit.
var Catalog = []Achievement{
	{
		Name:        "FirstEntry",
		Icon:        "🌱",
		Description: "Log your very first journal entry",
		Unlocked: func(r *profile.Record) bool {
			return len(r.History) == 1
		},
	},
	{
		Name:        "DeepThinker",
		Icon:        "🧠",
		Description: "Write 10 entries of 50 words or more",
		Unlocked: func(r *profile.Record) bool {
			long := 0
			for _, e := range r.History {
				if e.WordCount() >= 50 {
					long++
				}
			}
			return long >= 10
		},
	},
	{
		Name:        "EmotionExplorer",
		Icon:        "🧭",
		Description: "Log every emotion in the catalog at least once",
		Unlocked: func(r *profile.Record) bool {
			seen := r.EmotionsLogged()
			for _, name := range emotion.Names() {
				if !seen[name] {
					return false
				}
			}
			return true
		},
	},
	{
		Name:        "WeekStreak",
		Icon:        "🔥",
		Description: "Journal 7 days in a row",
		Unlocked: func(r *profile.Record) bool {
			return r.Streak >= 7
		},
	},
	{
		Name:        "ZenMaster",
		Icon:        "🧘",
		Description: "Complete 50 breathing exercises",
		Unlocked: func(r *profile.Record) bool {
			return r.BreathingCount >= 50
		},
	},
}

// Lookup returns the catalog entry for name.
func Lookup(name string) (Achievement, bool) {
	for _, a := range Catalog {
		if a.Name == name {
			return a, true
		}
	}
	return Achievement{}, false
}

// EvaluateNew sweeps the catalog in declaration order and unlocks every
// newly satisfied achievement, returning their names.
func EvaluateNew(r *profile.Record) []string {
	var unlocked []string
	for _, a := range Catalog {
		if r.HasUnlocked(a.Name) {
			continue
		}
		if a.Unlocked(r) {
			r.Unlock(a.Name)
			unlocked = append(unlocked, a.Name)
		}
	}
	return unlocked
}
