// Package session models the per-user interaction state machine.
//
// A State is a tagged union: the Kind selects the variant, and each variant
// carries only the data meaningful in that mode. Intensity without a chosen
// emotion is unrepresentable.
package session

// Kind names the interaction mode a user is in.
type Kind string

const (
	Home            Kind = "home"
	SelectEmotion   Kind = "select_emotion"
	SelectIntensity Kind = "select_intensity"
	Journal         Kind = "journal"
	SelectMultiple  Kind = "select_multiple"
	Breathing       Kind = "breathing"
	History         Kind = "history"
	Achievements    Kind = "achievements"
)

// IntensityFlow is the variant data for SelectIntensity: a single emotion has
// been chosen and the intensity pick is pending.
type IntensityFlow struct {
	Emotion string `json:"emotion"`
}

// JournalFlow is the variant data for Journal: the selection is locked in and
// free text is awaited. Intensity is nil for multi-emotion drafts.
type JournalFlow struct {
	Emotions  []string `json:"emotions"`
	Intensity *int     `json:"intensity,omitempty"`
}

// MultiFlow is the variant data for SelectMultiple: the set of toggled
// emotions, in toggle order.
type MultiFlow struct {
	Selected []string `json:"selected"`
}

// State is the session state tag plus its variant data. Exactly one variant
// field is non-nil, matching Kind; all are nil for the stateless kinds.
type State struct {
	Kind      Kind           `json:"kind"`
	Intensity *IntensityFlow `json:"intensity,omitempty"`
	Journal   *JournalFlow   `json:"journal,omitempty"`
	Multi     *MultiFlow     `json:"multi,omitempty"`
}

// NewState returns the initial session state.
func NewState() State {
	return State{Kind: Home}
}

func homeState() State {
	return State{Kind: Home}
}

// Normalize repairs a state whose variant data is missing or inconsistent
// with its kind, falling back to Home. Persisted states pass through here on
// load so a partially written record cannot wedge a user.
func (s State) Normalize() State {
	switch s.Kind {
	case Home, SelectEmotion, History, Achievements, Breathing:
		return State{Kind: s.Kind}
	case SelectIntensity:
		if s.Intensity == nil || s.Intensity.Emotion == "" {
			return homeState()
		}
		return State{Kind: SelectIntensity, Intensity: s.Intensity}
	case Journal:
		if s.Journal == nil {
			return homeState()
		}
		return State{Kind: Journal, Journal: s.Journal}
	case SelectMultiple:
		if s.Multi == nil {
			return State{Kind: SelectMultiple, Multi: &MultiFlow{}}
		}
		return State{Kind: SelectMultiple, Multi: s.Multi}
	default:
		return homeState()
	}
}
