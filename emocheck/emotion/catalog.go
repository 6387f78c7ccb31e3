// Package emotion defines the static emotion catalog.
package emotion

// Emotion is one catalog entry. Name is the unique key; IntensityLevels is
// ordered from mildest to strongest, so the index doubles as the rank.
type Emotion struct {
	Name            string
	Color           string
	Emoji           string
	Tips            []string
	IntensityLevels []string
}

// Catalog holds every known emotion in declaration order.
var Catalog = []Emotion{
	{
		Name:  "Joy",
		Color: "#FFD700",
		Emoji: "😊",
		Tips: []string{
			"Savor the moment and write down what caused it",
			"Share your joy with someone close to you",
			"Take a photo or keep a small memento of this moment",
		},
		IntensityLevels: []string{"Content", "Pleased", "Happy", "Ecstatic"},
	},
	{
		Name:  "Sadness",
		Color: "#4169E1",
		Emoji: "😢",
		Tips: []string{
			"Allow yourself to feel it without judgment",
			"Reach out to a friend or family member",
			"Go for a gentle walk outside",
		},
		IntensityLevels: []string{"Down", "Blue", "Sorrowful", "Grieving"},
	},
	{
		Name:  "Anger",
		Color: "#DC143C",
		Emoji: "😠",
		Tips: []string{
			"Take ten slow breaths before responding",
			"Step away from the situation for a few minutes",
			"Write down what triggered you and why",
		},
		IntensityLevels: []string{"Annoyed", "Frustrated", "Angry", "Furious"},
	},
	{
		Name:  "Fear",
		Color: "#800080",
		Emoji: "😨",
		Tips: []string{
			"Name the specific thing you are afraid of",
			"Ask yourself what is the realistic worst case",
			"Ground yourself: five things you can see, four you can touch",
		},
		IntensityLevels: []string{"Uneasy", "Worried", "Scared", "Terrified"},
	},
	{
		Name:  "Surprise",
		Color: "#FF8C00",
		Emoji: "😲",
		Tips: []string{
			"Pause before reacting to the unexpected",
			"Note whether the surprise is pleasant or not",
			"Give yourself time to process before deciding anything",
		},
		IntensityLevels: []string{"Curious", "Startled", "Astonished", "Shocked"},
	},
	{
		Name:  "Calm",
		Color: "#20B2AA",
		Emoji: "😌",
		Tips: []string{
			"Notice what helped you reach this state",
			"Use this clarity for a task that needs focus",
			"Practice a short breathing exercise to extend it",
		},
		IntensityLevels: []string{"Settled", "Relaxed", "Peaceful", "Serene"},
	},
}

// Lookup returns the catalog entry for name.
func Lookup(name string) (Emotion, bool) {
	for _, e := range Catalog {
		if e.Name == name {
			return e, true
		}
	}
	return Emotion{}, false
}

// Names returns all catalog names in declaration order.
func Names() []string {
	names := make([]string, len(Catalog))
	for i, e := range Catalog {
		names[i] = e.Name
	}
	return names
}

// IntensityLabel returns the label for an intensity index of the named
// emotion, or an empty string when either is unknown.
func IntensityLabel(name string, index int) string {
	e, ok := Lookup(name)
	if !ok || index < 0 || index >= len(e.IntensityLevels) {
		return ""
	}
	return e.IntensityLevels[index]
}
