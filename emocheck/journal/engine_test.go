package journal

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"emobots/emocheck/emotion"
	"emobots/emocheck/profile"
)

var day0 = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func intp(v int) *int { return &v }

func TestCommitRejectsEmptyEntry(t *testing.T) {
	r := profile.NewRecord()
	_, err := Commit(r, profile.Entry{}, day0)
	if !errors.Is(err, ErrEmptyEntry) {
		t.Fatalf("err = %v, want ErrEmptyEntry", err)
	}
	if len(r.History) != 0 || r.Streak != 0 {
		t.Fatalf("record mutated on rejected commit: %+v", r)
	}
}

func TestFirstCommitScenario(t *testing.T) {
	r := profile.NewRecord()
	entry := profile.Entry{
		Emotions:  []string{"Joy"},
		Intensity: intp(3),
		Text:      "feeling great",
		CreatedAt: day0,
	}
	unlocked, err := Commit(r, entry, day0)
	if err != nil {
		t.Fatal(err)
	}
	if r.Streak != 1 {
		t.Errorf("streak = %d, want 1", r.Streak)
	}
	if len(r.History) != 1 {
		t.Errorf("history length = %d, want 1", len(r.History))
	}
	if !reflect.DeepEqual(unlocked, []string{"FirstEntry"}) {
		t.Errorf("unlocked = %v, want [FirstEntry]", unlocked)
	}
}

func TestStreakIncrementsOnNewDayOnly(t *testing.T) {
	r := profile.NewRecord()
	commit := func(at time.Time) {
		t.Helper()
		if _, err := Commit(r, profile.Entry{Emotions: []string{"Calm"}, CreatedAt: at}, at); err != nil {
			t.Fatal(err)
		}
	}

	commit(day0)
	if r.Streak != 1 {
		t.Fatalf("after first: streak %d", r.Streak)
	}

	commit(day0.Add(2 * time.Hour)) // same calendar day
	if r.Streak != 1 {
		t.Fatalf("same-day commit moved streak to %d", r.Streak)
	}

	commit(day0.Add(24 * time.Hour))
	if r.Streak != 2 {
		t.Fatalf("next-day commit: streak %d, want 2", r.Streak)
	}

	// A gap of several days still only adds 1; the streak never resets.
	commit(day0.Add(6 * 24 * time.Hour))
	if r.Streak != 3 {
		t.Fatalf("post-gap commit: streak %d, want 3", r.Streak)
	}
}

func TestStreakNeverDecreases(t *testing.T) {
	r := profile.NewRecord()
	prev := 0
	for i := 0; i < 20; i++ {
		at := day0.Add(time.Duration(i*13) * time.Hour)
		if _, err := Commit(r, profile.Entry{Text: "x", CreatedAt: at}, at); err != nil {
			t.Fatal(err)
		}
		if r.Streak < prev || r.Streak > prev+1 {
			t.Fatalf("commit %d: streak went %d -> %d", i, prev, r.Streak)
		}
		prev = r.Streak
	}
}

func TestWeekStreakScenario(t *testing.T) {
	r := profile.NewRecord()
	var unlocked []string
	for i := 0; i < 7; i++ {
		at := day0.Add(time.Duration(i) * 24 * time.Hour)
		got, err := Commit(r, profile.Entry{Emotions: []string{"Joy"}, CreatedAt: at}, at)
		if err != nil {
			t.Fatal(err)
		}
		unlocked = got
	}
	if r.Streak != 7 {
		t.Fatalf("streak = %d, want 7", r.Streak)
	}
	if !reflect.DeepEqual(unlocked, []string{"WeekStreak"}) {
		t.Fatalf("7th commit unlocked %v, want [WeekStreak]", unlocked)
	}
}

func TestDeepThinkerAcrossCommits(t *testing.T) {
	long := strings.Repeat("word ", 50)
	r := profile.NewRecord()
	for i := 0; i < 10; i++ {
		at := day0.Add(time.Duration(i) * time.Hour)
		unlocked, err := Commit(r, profile.Entry{Text: long, CreatedAt: at}, at)
		if err != nil {
			t.Fatal(err)
		}
		if i < 9 {
			for _, name := range unlocked {
				if name == "DeepThinker" {
					t.Fatalf("DeepThinker unlocked on commit %d", i+1)
				}
			}
		}
	}
	if !r.HasUnlocked("DeepThinker") {
		t.Fatal("DeepThinker not unlocked after 10 long entries")
	}
}

func TestEmotionExplorerExactCoverage(t *testing.T) {
	r := profile.NewRecord()
	names := emotion.Names()
	for i, name := range names {
		at := day0.Add(time.Duration(i) * time.Hour)
		unlocked, err := Commit(r, profile.Entry{Emotions: []string{name}, CreatedAt: at}, at)
		if err != nil {
			t.Fatal(err)
		}
		hit := false
		for _, u := range unlocked {
			if u == "EmotionExplorer" {
				hit = true
			}
		}
		if i < len(names)-1 && hit {
			t.Fatalf("EmotionExplorer unlocked before full coverage (commit %d)", i+1)
		}
		if i == len(names)-1 && !hit {
			t.Fatal("EmotionExplorer not unlocked at full coverage")
		}
	}
}

func TestCompleteBreathingZenMaster(t *testing.T) {
	r := profile.NewRecord()
	for i := 0; i < 49; i++ {
		if unlocked := CompleteBreathing(r); unlocked != nil {
			t.Fatalf("session %d unlocked %v", i+1, unlocked)
		}
	}
	unlocked := CompleteBreathing(r)
	if r.BreathingCount != 50 {
		t.Fatalf("count = %d, want 50", r.BreathingCount)
	}
	if !reflect.DeepEqual(unlocked, []string{"ZenMaster"}) {
		t.Fatalf("unlocked = %v, want [ZenMaster]", unlocked)
	}
}
