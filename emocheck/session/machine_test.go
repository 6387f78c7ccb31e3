package session

import (
	"errors"
	"reflect"
	"testing"
)

func apply(t *testing.T, s State, ev Event) (State, Effect) {
	t.Helper()
	next, eff, err := Apply(s, ev)
	if err != nil {
		t.Fatalf("Apply(%s, %s): %v", s.Kind, ev.Kind, err)
	}
	return next, eff
}

func TestSingleEmotionFlow(t *testing.T) {
	s := NewState()

	s, _ = apply(t, s, Event{Kind: EventOpenEmotionMenu})
	if s.Kind != SelectEmotion {
		t.Fatalf("kind = %s, want %s", s.Kind, SelectEmotion)
	}

	s, _ = apply(t, s, Event{Kind: EventChooseEmotion, Emotion: "Joy"})
	if s.Kind != SelectIntensity || s.Intensity == nil || s.Intensity.Emotion != "Joy" {
		t.Fatalf("after choose: %+v", s)
	}

	s, _ = apply(t, s, Event{Kind: EventChooseIntensity, Intensity: 3})
	if s.Kind != Journal || s.Journal == nil {
		t.Fatalf("after intensity: %+v", s)
	}
	if got := s.Journal.Emotions; !reflect.DeepEqual(got, []string{"Joy"}) {
		t.Fatalf("journal emotions = %v", got)
	}
	if s.Journal.Intensity == nil || *s.Journal.Intensity != 3 {
		t.Fatalf("journal intensity = %v", s.Journal.Intensity)
	}

	s, eff := apply(t, s, Event{Kind: EventSubmitText, Text: "feeling great"})
	if s.Kind != Home {
		t.Fatalf("after submit kind = %s", s.Kind)
	}
	if eff.Kind != EffectCommit || eff.Draft == nil {
		t.Fatalf("effect = %+v", eff)
	}
	if eff.Draft.Text != "feeling great" || *eff.Draft.Intensity != 3 {
		t.Fatalf("draft = %+v", eff.Draft)
	}
}

func TestChooseUnknownEmotion(t *testing.T) {
	s := State{Kind: SelectEmotion}
	next, _, err := Apply(s, Event{Kind: EventChooseEmotion, Emotion: "Boredom"})
	if !errors.Is(err, ErrUnknownEmotion) {
		t.Fatalf("err = %v, want ErrUnknownEmotion", err)
	}
	if next.Kind != SelectEmotion {
		t.Fatalf("state changed to %s", next.Kind)
	}
}

func TestMultiToggleIsItsOwnInverse(t *testing.T) {
	s := NewState()
	s, _ = apply(t, s, Event{Kind: EventOpenMultiMenu})

	s, _ = apply(t, s, Event{Kind: EventToggleEmotion, Emotion: "Joy"})
	s, _ = apply(t, s, Event{Kind: EventToggleEmotion, Emotion: "Fear"})
	s, _ = apply(t, s, Event{Kind: EventToggleEmotion, Emotion: "Joy"})

	if got := s.Multi.Selected; !reflect.DeepEqual(got, []string{"Fear"}) {
		t.Fatalf("selected = %v, want [Fear]", got)
	}

	s, _ = apply(t, s, Event{Kind: EventToggleEmotion, Emotion: "Fear"})
	if len(s.Multi.Selected) != 0 {
		t.Fatalf("selected = %v, want empty", s.Multi.Selected)
	}
}

func TestMultiConfirmEmptyRejected(t *testing.T) {
	s := State{Kind: SelectMultiple, Multi: &MultiFlow{}}
	next, eff, err := Apply(s, Event{Kind: EventConfirmMulti})
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("err = %v, want ErrEmptySelection", err)
	}
	if next.Kind != SelectMultiple {
		t.Fatalf("state left SelectMultiple: %s", next.Kind)
	}
	if eff.Kind != EffectNone {
		t.Fatalf("unexpected effect %v", eff.Kind)
	}
}

func TestMultiConfirmCommitsWithoutIntensity(t *testing.T) {
	s := State{Kind: SelectMultiple, Multi: &MultiFlow{Selected: []string{"Joy", "Fear"}}}
	s, _ = apply(t, s, Event{Kind: EventConfirmMulti})
	if s.Kind != Journal {
		t.Fatalf("kind = %s", s.Kind)
	}
	if s.Journal.Intensity != nil {
		t.Fatalf("multi draft carries intensity %v", *s.Journal.Intensity)
	}

	_, eff := apply(t, s, Event{Kind: EventSubmitText, Text: "mixed day"})
	if eff.Draft == nil || eff.Draft.Intensity != nil {
		t.Fatalf("draft = %+v", eff.Draft)
	}
	if !reflect.DeepEqual(eff.Draft.Emotions, []string{"Joy", "Fear"}) {
		t.Fatalf("draft emotions = %v", eff.Draft.Emotions)
	}
}

func TestBackClearsPendingSelection(t *testing.T) {
	s := State{Kind: SelectIntensity, Intensity: &IntensityFlow{Emotion: "Anger"}}
	s, eff := apply(t, s, Event{Kind: EventBack})
	if s.Kind != Home || s.Intensity != nil {
		t.Fatalf("after back: %+v", s)
	}
	if eff.Kind != EffectNone {
		t.Fatalf("effect = %v", eff.Kind)
	}
}

func TestBackFromBreathingCancelsTimer(t *testing.T) {
	s := State{Kind: Breathing}
	s, eff := apply(t, s, Event{Kind: EventBack})
	if s.Kind != Home {
		t.Fatalf("kind = %s", s.Kind)
	}
	if eff.Kind != EffectCancelBreathing {
		t.Fatalf("effect = %v, want cancel", eff.Kind)
	}
}

func TestStopBreathing(t *testing.T) {
	s := State{Kind: Breathing}
	s, eff := apply(t, s, Event{Kind: EventStopBreathing})
	if s.Kind != Home || eff.Kind != EffectCancelBreathing {
		t.Fatalf("state %s effect %v", s.Kind, eff.Kind)
	}
}

func TestStartBreathingFromHome(t *testing.T) {
	s, eff := apply(t, NewState(), Event{Kind: EventStartBreathing})
	if s.Kind != Breathing || eff.Kind != EffectStartBreathing {
		t.Fatalf("state %s effect %v", s.Kind, eff.Kind)
	}
}

func TestUnmatchedEventIgnored(t *testing.T) {
	cases := []struct {
		state State
		ev    Event
	}{
		{NewState(), Event{Kind: EventChooseIntensity, Intensity: 1}},
		{NewState(), Event{Kind: EventBack}},
		{State{Kind: History}, Event{Kind: EventChooseEmotion, Emotion: "Joy"}},
		{State{Kind: SelectEmotion}, Event{Kind: EventConfirmMulti}},
		{NewState(), Event{Kind: EventStopBreathing}},
	}
	for _, tc := range cases {
		next, eff, err := Apply(tc.state, tc.ev)
		if !errors.Is(err, ErrIgnored) {
			t.Errorf("%s in %s: err = %v, want ErrIgnored", tc.ev.Kind, tc.state.Kind, err)
		}
		if next.Kind != tc.state.Kind {
			t.Errorf("%s in %s: state moved to %s", tc.ev.Kind, tc.state.Kind, next.Kind)
		}
		if eff.Kind != EffectNone {
			t.Errorf("%s in %s: effect %v", tc.ev.Kind, tc.state.Kind, eff.Kind)
		}
	}
}

func TestNormalizeRepairsBrokenVariants(t *testing.T) {
	broken := State{Kind: SelectIntensity} // variant data missing
	if got := broken.Normalize(); got.Kind != Home {
		t.Errorf("SelectIntensity without emotion normalized to %s", got.Kind)
	}
	broken = State{Kind: Journal}
	if got := broken.Normalize(); got.Kind != Home {
		t.Errorf("Journal without draft normalized to %s", got.Kind)
	}
	s := State{Kind: SelectMultiple}
	if got := s.Normalize(); got.Kind != SelectMultiple || got.Multi == nil {
		t.Errorf("SelectMultiple normalize: %+v", got)
	}
	if got := (State{Kind: "garbage"}).Normalize(); got.Kind != Home {
		t.Errorf("unknown kind normalized to %s", got.Kind)
	}
}
