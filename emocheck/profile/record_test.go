package profile

import (
	"encoding/json"
	"testing"

	"emobots/emocheck/session"
)

func TestNewRecordDefaults(t *testing.T) {
	r := NewRecord()
	if r.Session.Kind != session.Home {
		t.Errorf("session kind = %s, want home", r.Session.Kind)
	}
	if len(r.History) != 0 || r.Streak != 0 || r.BreathingCount != 0 {
		t.Errorf("record not zeroed: %+v", r)
	}
}

func TestUnlockIsMonotonic(t *testing.T) {
	r := NewRecord()
	r.Unlock("FirstEntry")
	r.Unlock("FirstEntry")
	if len(r.Unlocked) != 1 {
		t.Fatalf("unlocked = %v", r.Unlocked)
	}
	if !r.HasUnlocked("FirstEntry") || r.HasUnlocked("ZenMaster") {
		t.Fatalf("membership checks wrong: %v", r.Unlocked)
	}
}

func TestWordCount(t *testing.T) {
	e := Entry{Text: "  one two\nthree   four "}
	if got := e.WordCount(); got != 4 {
		t.Errorf("WordCount = %d, want 4", got)
	}
	if got := (Entry{}).WordCount(); got != 0 {
		t.Errorf("empty WordCount = %d", got)
	}
}

func TestEmotionsLogged(t *testing.T) {
	r := NewRecord()
	r.History = append(r.History,
		Entry{Emotions: []string{"Joy", "Fear"}},
		Entry{Emotions: []string{"Joy"}},
	)
	seen := r.EmotionsLogged()
	if len(seen) != 2 || !seen["Joy"] || !seen["Fear"] {
		t.Fatalf("seen = %v", seen)
	}
}

func TestRecordJSONRoundTrip(t *testing.T) {
	intensity := 2
	r := NewRecord()
	r.History = append(r.History, Entry{Emotions: []string{"Calm"}, Intensity: &intensity, Text: "ok"})
	r.Streak = 3
	r.Session = session.State{Kind: session.SelectIntensity, Intensity: &session.IntensityFlow{Emotion: "Calm"}}

	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	var got Record
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}
	if got.Streak != 3 || len(got.History) != 1 || *got.History[0].Intensity != 2 {
		t.Fatalf("round trip = %+v", got)
	}
	if got.Session.Kind != session.SelectIntensity || got.Session.Intensity.Emotion != "Calm" {
		t.Fatalf("session round trip = %+v", got.Session)
	}
}
