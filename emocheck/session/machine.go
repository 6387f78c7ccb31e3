package session

import (
	"errors"

	"emobots/emocheck/emotion"
)

var (
	// ErrIgnored marks an event that has no transition in the current state.
	// The state is unchanged; callers may surface a transient notice.
	ErrIgnored = errors.New("session: event ignored in current state")
	// ErrEmptySelection rejects a multi-select confirm with nothing toggled.
	ErrEmptySelection = errors.New("session: no emotions selected")
	// ErrUnknownEmotion rejects a pick that is not in the catalog.
	ErrUnknownEmotion = errors.New("session: unknown emotion")
)

// EffectKind tells the caller which side effect a transition requires beyond
// persisting the new state.
type EffectKind int

const (
	EffectNone EffectKind = iota
	// EffectCommit carries a journal draft to run through the journal engine.
	EffectCommit
	// EffectStartBreathing starts the breathing sequencer for this user.
	EffectStartBreathing
	// EffectCancelBreathing cancels the user's active sequencer, no credit.
	EffectCancelBreathing
)

// Draft is the journal entry content assembled by the flow, ready to commit.
type Draft struct {
	Emotions  []string
	Intensity *int
	Text      string
}

// Effect is the side effect requested by a transition.
type Effect struct {
	Kind  EffectKind
	Draft *Draft
}

// Apply runs one event against the current state and returns the next state
// plus the side effect the caller must perform. On error the returned state
// equals the input state.
func Apply(s State, ev Event) (State, Effect, error) {
	s = s.Normalize()

	switch ev.Kind {
	case EventBack, EventCancel:
		// Universal escape hatch. Pending selections are dropped with the
		// variant data; an active breathing timer must be cancelled.
		if s.Kind == Home {
			return s, Effect{}, ErrIgnored
		}
		eff := Effect{}
		if s.Kind == Breathing {
			eff.Kind = EffectCancelBreathing
		}
		return homeState(), eff, nil

	case EventStopBreathing:
		if s.Kind != Breathing {
			return s, Effect{}, ErrIgnored
		}
		return homeState(), Effect{Kind: EffectCancelBreathing}, nil
	}

	switch s.Kind {
	case Home:
		return applyHome(s, ev)
	case SelectEmotion:
		if ev.Kind == EventChooseEmotion {
			if !knownEmotion(ev.Emotion) {
				return s, Effect{}, ErrUnknownEmotion
			}
			return State{Kind: SelectIntensity, Intensity: &IntensityFlow{Emotion: ev.Emotion}}, Effect{}, nil
		}
	case SelectIntensity:
		if ev.Kind == EventChooseIntensity {
			idx := ev.Intensity
			return State{
				Kind:    Journal,
				Journal: &JournalFlow{Emotions: []string{s.Intensity.Emotion}, Intensity: &idx},
			}, Effect{}, nil
		}
	case SelectMultiple:
		switch ev.Kind {
		case EventToggleEmotion:
			if !knownEmotion(ev.Emotion) {
				return s, Effect{}, ErrUnknownEmotion
			}
			return State{
				Kind:  SelectMultiple,
				Multi: &MultiFlow{Selected: toggle(s.Multi.Selected, ev.Emotion)},
			}, Effect{}, nil
		case EventConfirmMulti:
			if len(s.Multi.Selected) == 0 {
				return s, Effect{}, ErrEmptySelection
			}
			return State{
				Kind:    Journal,
				Journal: &JournalFlow{Emotions: s.Multi.Selected},
			}, Effect{}, nil
		}
	case Journal:
		if ev.Kind == EventSubmitText {
			draft := &Draft{
				Emotions:  s.Journal.Emotions,
				Intensity: s.Journal.Intensity,
				Text:      ev.Text,
			}
			return homeState(), Effect{Kind: EffectCommit, Draft: draft}, nil
		}
	}

	return s, Effect{}, ErrIgnored
}

func applyHome(s State, ev Event) (State, Effect, error) {
	switch ev.Kind {
	case EventOpenEmotionMenu:
		return State{Kind: SelectEmotion}, Effect{}, nil
	case EventOpenMultiMenu:
		return State{Kind: SelectMultiple, Multi: &MultiFlow{}}, Effect{}, nil
	case EventOpenHistory:
		return State{Kind: History}, Effect{}, nil
	case EventOpenAchievements:
		return State{Kind: Achievements}, Effect{}, nil
	case EventStartBreathing:
		return State{Kind: Breathing}, Effect{Kind: EffectStartBreathing}, nil
	}
	return s, Effect{}, ErrIgnored
}

func knownEmotion(name string) bool {
	_, ok := emotion.Lookup(name)
	return ok
}

// toggle applies a symmetric difference of name into the selection,
// preserving the toggle order of the remainder.
func toggle(selected []string, name string) []string {
	for i, s := range selected {
		if s == name {
			out := make([]string, 0, len(selected)-1)
			out = append(out, selected[:i]...)
			return append(out, selected[i+1:]...)
		}
	}
	out := make([]string, 0, len(selected)+1)
	out = append(out, selected...)
	return append(out, name)
}
