package achievement

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"emobots/emocheck/emotion"
	"emobots/emocheck/profile"
)

func entry(text string, emotions ...string) profile.Entry {
	return profile.Entry{Emotions: emotions, Text: text, CreatedAt: time.Now().UTC()}
}

func TestFirstEntry(t *testing.T) {
	r := profile.NewRecord()
	if got := EvaluateNew(r); got != nil {
		t.Fatalf("empty record unlocked %v", got)
	}

	r.History = append(r.History, entry("hi", "Joy"))
	r.Streak = 1
	got := EvaluateNew(r)
	if !reflect.DeepEqual(got, []string{"FirstEntry"}) {
		t.Fatalf("first commit unlocked %v, want [FirstEntry]", got)
	}

	// A second sweep must not re-unlock.
	r.History = append(r.History, entry("again", "Joy"))
	if got := EvaluateNew(r); got != nil {
		t.Fatalf("second commit unlocked %v", got)
	}
}

func TestDeepThinker(t *testing.T) {
	long := ""
	for i := 0; i < 50; i++ {
		long += fmt.Sprintf("word%d ", i)
	}
	r := profile.NewRecord()
	for i := 0; i < 9; i++ {
		r.History = append(r.History, entry(long, "Calm"))
	}
	EvaluateNew(r)
	if r.HasUnlocked("DeepThinker") {
		t.Fatal("DeepThinker unlocked at 9 long entries")
	}
	r.History = append(r.History, entry(long, "Calm"))
	EvaluateNew(r)
	if !r.HasUnlocked("DeepThinker") {
		t.Fatal("DeepThinker not unlocked at 10 long entries")
	}
}

func TestEmotionExplorerRequiresFullCoverage(t *testing.T) {
	names := emotion.Names()
	r := profile.NewRecord()
	for _, name := range names[:len(names)-1] {
		r.History = append(r.History, entry("", name))
	}
	EvaluateNew(r)
	if r.HasUnlocked("EmotionExplorer") {
		t.Fatal("EmotionExplorer unlocked one emotion short of coverage")
	}
	r.History = append(r.History, entry("", names[len(names)-1]))
	EvaluateNew(r)
	if !r.HasUnlocked("EmotionExplorer") {
		t.Fatal("EmotionExplorer not unlocked at full coverage")
	}
}

func TestWeekStreak(t *testing.T) {
	r := profile.NewRecord()
	r.History = append(r.History, entry("", "Joy"))
	r.Streak = 6
	EvaluateNew(r)
	if r.HasUnlocked("WeekStreak") {
		t.Fatal("WeekStreak unlocked at streak 6")
	}
	r.Streak = 7
	EvaluateNew(r)
	if !r.HasUnlocked("WeekStreak") {
		t.Fatal("WeekStreak not unlocked at streak 7")
	}
}

func TestZenMaster(t *testing.T) {
	r := profile.NewRecord()
	r.BreathingCount = 49
	EvaluateNew(r)
	if r.HasUnlocked("ZenMaster") {
		t.Fatal("ZenMaster unlocked at 49 sessions")
	}
	r.BreathingCount = 50
	got := EvaluateNew(r)
	if !reflect.DeepEqual(got, []string{"ZenMaster"}) {
		t.Fatalf("50th session unlocked %v, want [ZenMaster]", got)
	}
}

func TestCatalogOrderOnSimultaneousUnlock(t *testing.T) {
	r := profile.NewRecord()
	r.History = append(r.History, entry("", "Joy"))
	r.Streak = 7
	got := EvaluateNew(r)
	want := []string{"FirstEntry", "WeekStreak"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unlock order %v, want %v", got, want)
	}
}

func TestLookup(t *testing.T) {
	a, ok := Lookup("ZenMaster")
	if !ok || a.Icon == "" || a.Description == "" {
		t.Fatalf("Lookup(ZenMaster) = %+v, %v", a, ok)
	}
	if _, ok := Lookup("Nope"); ok {
		t.Fatal("unexpected hit for unknown achievement")
	}
}
