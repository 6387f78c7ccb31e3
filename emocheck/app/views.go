package app

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"emobots/core/telegram/format"
	"emobots/core/telegram/keyboard"
	"emobots/emocheck/achievement"
	"emobots/emocheck/breathing"
	"emobots/emocheck/emotion"
	"emobots/emocheck/profile"
	"emobots/emocheck/session"
)

// Callback keys. Payloads ride after the "|" separator.
const (
	cbMenu         = "menu"
	cbCheckin      = "checkin"
	cbMulti        = "multi"
	cbEmotion      = "emotion"
	cbIntensity    = "intensity"
	cbToggle       = "toggle"
	cbConfirmMulti = "confirm_multi"
	cbHistory      = "history"
	cbAchievements = "achievements"
	cbBreathe      = "breathe"
	cbStopBreathe  = "stop_breathe"
	cbBack         = "back"
	cbDoneDelete   = "done_delete"
	cbTips         = "tips"
)

const historyViewLimit = 10

func mainMenuView(rec *profile.Record) (string, *tele.ReplyMarkup) {
	var b strings.Builder
	b.WriteString("*Emotions in Check* 🦉\n\n")
	b.WriteString("How are you feeling right now?\n")
	if rec.Streak > 0 {
		fmt.Fprintf(&b, "\n🔥 Streak: *%d day", rec.Streak)
		if rec.Streak != 1 {
			b.WriteString("s")
		}
		b.WriteString("*")
	}

	markup := keyboard.Inline(
		[]keyboard.InlineBtn{
			{Text: "📝 Check in", Unique: cbCheckin},
			{Text: "🎭 Mixed feelings", Unique: cbMulti},
		},
		[]keyboard.InlineBtn{
			{Text: "📖 History", Unique: cbHistory},
			{Text: "🏆 Achievements", Unique: cbAchievements},
		},
		[]keyboard.InlineBtn{
			{Text: "🧘 Breathing exercise", Unique: cbBreathe},
		},
		[]keyboard.InlineBtn{
			{Text: "✅ Done", Unique: cbDoneDelete},
		},
	)
	return b.String(), markup
}

func emotionMenuView() (string, *tele.ReplyMarkup) {
	btns := make([]keyboard.InlineBtn, 0, len(emotion.Catalog))
	for _, e := range emotion.Catalog {
		btns = append(btns, keyboard.InlineBtn{
			Text:    e.Emoji + " " + e.Name,
			Unique:  cbEmotion,
			Payload: e.Name,
		})
	}
	markup := keyboard.InlineNPerRow(2, btns)
	keyboard.WithRow(markup, keyboard.InlineBtn{Text: "⬅️ Back", Unique: cbBack})
	return "Which emotion fits best?", markup
}

func intensityMenuView(name string) (string, *tele.ReplyMarkup) {
	e, ok := emotion.Lookup(name)
	if !ok {
		return "Which emotion fits best?", nil
	}
	btns := make([]keyboard.InlineBtn, 0, len(e.IntensityLevels))
	for i, level := range e.IntensityLevels {
		btns = append(btns, keyboard.InlineBtn{
			Text:    level,
			Unique:  cbIntensity,
			Payload: strconv.Itoa(i),
		})
	}
	markup := keyboard.InlineNPerRow(2, btns)
	keyboard.WithRow(markup, keyboard.InlineBtn{Text: "⬅️ Back", Unique: cbBack})
	text := fmt.Sprintf("%s *%s* — how strong is it?", e.Emoji, e.Name)
	return text, markup
}

func multiMenuView(selected []string) (string, *tele.ReplyMarkup) {
	chosen := make(map[string]bool, len(selected))
	for _, name := range selected {
		chosen[name] = true
	}
	btns := make([]keyboard.InlineBtn, 0, len(emotion.Catalog))
	for _, e := range emotion.Catalog {
		label := e.Emoji + " " + e.Name
		if chosen[e.Name] {
			label = "✅ " + label
		}
		btns = append(btns, keyboard.InlineBtn{
			Text:    label,
			Unique:  cbToggle,
			Payload: e.Name,
		})
	}
	markup := keyboard.InlineNPerRow(2, btns)
	keyboard.WithRow(markup,
		keyboard.InlineBtn{Text: "✔️ Confirm", Unique: cbConfirmMulti},
		keyboard.InlineBtn{Text: "⬅️ Back", Unique: cbBack},
	)
	text := "Tap every emotion you're feeling, then confirm."
	if len(selected) > 0 {
		text += fmt.Sprintf("\n\nSelected: *%d*", len(selected))
	}
	return text, markup
}

func journalPromptView(flow *session.JournalFlow) (string, *tele.ReplyMarkup) {
	var b strings.Builder
	b.WriteString("You picked ")
	for i, name := range flow.Emotions {
		if i > 0 {
			b.WriteString(", ")
		}
		if e, ok := emotion.Lookup(name); ok {
			b.WriteString(e.Emoji + " ")
		}
		b.WriteString("*" + name + "*")
	}
	if flow.Intensity != nil && len(flow.Emotions) == 1 {
		if label := emotion.IntensityLabel(flow.Emotions[0], *flow.Intensity); label != "" {
			fmt.Fprintf(&b, " (%s)", label)
		}
	}
	b.WriteString(".\n\nWrite a few words about it, or send anything to log it as is.")

	markup := keyboard.Inline([]keyboard.InlineBtn{
		{Text: "✖️ Cancel", Unique: cbBack},
	})
	return b.String(), markup
}

func historyView(rec *profile.Record) (string, *tele.ReplyMarkup) {
	var b strings.Builder
	b.WriteString("*Your journal* 📖\n")

	if len(rec.History) == 0 {
		b.WriteString("\nNothing here yet. Check in to start your journal.")
	} else {
		start := len(rec.History) - historyViewLimit
		if start < 0 {
			start = 0
		}
		for _, e := range rec.History[start:] {
			b.WriteString("\n")
			b.WriteString(e.CreatedAt.Format("Jan 2"))
			b.WriteString(" — ")
			for i, name := range e.Emotions {
				if i > 0 {
					b.WriteString(", ")
				}
				if em, ok := emotion.Lookup(name); ok {
					b.WriteString(em.Emoji)
				}
				b.WriteString(name)
			}
			if e.Intensity != nil && len(e.Emotions) == 1 {
				if label := emotion.IntensityLabel(e.Emotions[0], *e.Intensity); label != "" {
					b.WriteString(" (" + label + ")")
				}
			}
			if e.Text != "" {
				b.WriteString(": _" + format.EscapeMarkdown(truncate(e.Text, 60)) + "_")
			}
		}
		fmt.Fprintf(&b, "\n\nEntries: *%d*  Streak: *%d*", len(rec.History), rec.Streak)
	}

	markup := keyboard.Inline([]keyboard.InlineBtn{
		{Text: "⬅️ Back", Unique: cbBack},
	})
	return b.String(), markup
}

func achievementsView(rec *profile.Record) (string, *tele.ReplyMarkup) {
	var b strings.Builder
	b.WriteString("*Achievements* 🏆\n")
	for _, a := range achievement.Catalog {
		b.WriteString("\n")
		if rec.HasUnlocked(a.Name) {
			b.WriteString(a.Icon + " *" + a.Name + "* — " + a.Description)
		} else {
			b.WriteString("🔒 " + a.Name + " — " + a.Description)
		}
	}
	fmt.Fprintf(&b, "\n\nUnlocked: *%d/%d*", len(rec.Unlocked), len(achievement.Catalog))

	markup := keyboard.Inline([]keyboard.InlineBtn{
		{Text: "⬅️ Back", Unique: cbBack},
	})
	return b.String(), markup
}

func breathingStepView(cycle, cycles int, step breathing.Step) (string, *tele.ReplyMarkup) {
	text := fmt.Sprintf("%s *%s*\n\nCycle %d/%d", step.Emoji(), step.Label(), cycle+1, cycles)
	markup := keyboard.Inline([]keyboard.InlineBtn{
		{Text: "⏹ Stop", Unique: cbStopBreathe},
	})
	return text, markup
}

func breathingIntroView() (string, *tele.ReplyMarkup) {
	text := "🧘 *Breathing exercise*\n\nGet comfortable. We'll do 3 slow cycles together."
	markup := keyboard.Inline([]keyboard.InlineBtn{
		{Text: "⏹ Stop", Unique: cbStopBreathe},
	})
	return text, markup
}

func breathingDoneView(count int, unlocked []string) (string, *tele.ReplyMarkup) {
	var b strings.Builder
	b.WriteString("✨ *Well done.*\n\nYou completed the exercise.")
	fmt.Fprintf(&b, "\nSessions so far: *%d*", count)
	b.WriteString(unlockNotice(unlocked))

	markup := keyboard.Inline([]keyboard.InlineBtn{
		{Text: "🏠 Menu", Unique: cbMenu},
	})
	return b.String(), markup
}

func tipsView(name string) (string, *tele.ReplyMarkup) {
	e, ok := emotion.Lookup(name)
	if !ok {
		return "", nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s *Coping with %s*\n", e.Emoji, e.Name)
	for _, tip := range e.Tips {
		b.WriteString("\n• " + tip)
	}
	markup := keyboard.Inline([]keyboard.InlineBtn{
		{Text: "🏠 Menu", Unique: cbMenu},
	})
	return b.String(), markup
}

func unlockNotice(names []string) string {
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\n🎉 *Achievement unlocked!*")
	for _, name := range names {
		if a, ok := achievement.Lookup(name); ok {
			b.WriteString("\n" + a.Icon + " *" + a.Name + "* — " + a.Description)
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
