package session

// EventKind is the closed set of inbound events the machine understands.
// Callback payloads and free-text messages are decoded into these before
// dispatch; there is no string-keyed branching past this point.
type EventKind string

const (
	EventOpenEmotionMenu  EventKind = "open_emotion_menu"
	EventOpenMultiMenu    EventKind = "open_multi_menu"
	EventChooseEmotion    EventKind = "choose_emotion"
	EventChooseIntensity  EventKind = "choose_intensity"
	EventToggleEmotion    EventKind = "toggle_emotion"
	EventConfirmMulti     EventKind = "confirm_multi"
	EventSubmitText       EventKind = "submit_text"
	EventCancel           EventKind = "cancel"
	EventBack             EventKind = "back"
	EventOpenHistory      EventKind = "open_history"
	EventOpenAchievements EventKind = "open_achievements"
	EventStartBreathing   EventKind = "start_breathing"
	EventStopBreathing    EventKind = "stop_breathing"
)

// Event is one decoded inbound event. Emotion, Intensity and Text are only
// read for the kinds that carry them.
type Event struct {
	Kind      EventKind
	Emotion   string
	Intensity int
	Text      string
}
