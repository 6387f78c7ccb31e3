package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"emobots/assistant"
	"emobots/core/buildinfo"
	"emobots/core/logger"
	tghelpers "emobots/core/telegram/helpers"
	"emobots/core/telegram/keyboard"
	"emobots/emocheck/profile"
	"emobots/emocheck/session"
)

func (a *App) handleStart(c tele.Context) error {
	return a.goHome(c, false)
}

func (a *App) handleMenu(c tele.Context) error {
	return a.goHome(c, false)
}

func (a *App) handleHistory(c tele.Context) error {
	return a.dispatchCommand(c, session.Event{Kind: session.EventOpenHistory})
}

func (a *App) handleAchievements(c tele.Context) error {
	return a.dispatchCommand(c, session.Event{Kind: session.EventOpenAchievements})
}

func (a *App) handleBreathe(c tele.Context) error {
	return a.dispatchCommand(c, session.Event{Kind: session.EventStartBreathing})
}

// handleReset erases the journal record and the assistant history for this
// chat, then shows a fresh menu.
func (a *App) handleReset(c tele.Context) error {
	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)
	err := a.withUser(userID, func() error {
		a.seq.Stop(userID)
		a.forgetBreathingView(userID)
		if err := a.records.Reset(ctx, userID); err != nil {
			return err
		}
		return a.turns.Purge(ctx, c.Chat().ID)
	})
	if err != nil {
		return err
	}
	logger.Info(ctx, "app", "record.reset",
		slog.Int64("user_id", userID),
	)
	text, markup := mainMenuView(profile.NewRecord())
	return tghelpers.SendMD(c, "All clear. Starting fresh. 🌱\n\n"+text, markup)
}

func (a *App) handleStats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	users, err := a.records.Count(ctx)
	if err != nil {
		return err
	}
	entries, err := a.records.EntryCount(ctx)
	if err != nil {
		return err
	}
	text := fmt.Sprintf("*Stats*\n\nUsers: *%d*\nEntries: *%d*\nBuild: `%s` (%s)",
		users, entries, buildinfo.Commit, buildinfo.Date)
	return tghelpers.SendMD(c, text)
}

// goHome forces the session back to the main menu, cancelling any active
// breathing sequence. Used by /start, /menu and the menu callback.
func (a *App) goHome(c tele.Context, edit bool) error {
	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)

	var rec *profile.Record
	err := a.withUser(userID, func() error {
		var err error
		rec, err = a.records.Load(ctx, userID)
		if err != nil {
			return err
		}
		if rec.Session.Kind == session.Breathing {
			a.seq.Stop(userID)
			a.forgetBreathingView(userID)
		}
		rec.Session = session.NewState()
		return a.records.Save(ctx, userID, rec)
	})
	if err != nil {
		return err
	}

	text, markup := mainMenuView(rec)
	if edit {
		return tghelpers.EditOrSendMD(c, text, markup)
	}
	return tghelpers.SendMD(c, text, markup)
}

func (a *App) sendHome(c tele.Context, rec *profile.Record) error {
	text, markup := mainMenuView(rec)
	return tghelpers.SendMD(c, text, markup)
}

// dispatchCommand runs a session event triggered by a slash command. The
// session is first brought home so the command works as a shortcut from any
// state, then the event is applied and the view sent as a new message.
func (a *App) dispatchCommand(c tele.Context, ev session.Event) error {
	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)

	var render func() error
	err := a.withUser(userID, func() error {
		rec, err := a.records.Load(ctx, userID)
		if err != nil {
			return err
		}
		if rec.Session.Kind != session.Home {
			if rec.Session.Kind == session.Breathing {
				a.seq.Stop(userID)
				a.forgetBreathingView(userID)
			}
			rec.Session = session.NewState()
		}
		next, eff, err := session.Apply(rec.Session, ev)
		if err != nil {
			return err
		}
		rec.Session = next

		render, err = a.applyEffect(c, ctx, rec, eff)
		if err != nil {
			return err
		}
		return a.records.Save(ctx, userID, rec)
	})
	if err != nil {
		return a.reportTransitionError(c, ctx, ev, err)
	}
	return render()
}

// handleText routes free text by session state: in the journal flow it
// commits the entry, everywhere else it goes to the assistant persona.
func (a *App) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}

	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)

	var (
		inJournal bool
		render    func() error
	)
	err := a.withUser(userID, func() error {
		rec, err := a.records.Load(ctx, userID)
		if err != nil {
			return err
		}
		if rec.Session.Kind != session.Journal {
			return nil
		}
		inJournal = true

		next, eff, err := session.Apply(rec.Session, session.Event{
			Kind: session.EventSubmitText,
			Text: text,
		})
		if err != nil {
			return err
		}
		rec.Session = next
		render, err = a.applyEffect(c, ctx, rec, eff)
		if err != nil {
			return err
		}
		return a.records.Save(ctx, userID, rec)
	})
	if err != nil {
		return err
	}
	if inJournal {
		return render()
	}
	return a.relayToAssistant(c, ctx, text)
}

// relayToAssistant forwards free text to the OWLai persona with the recent
// turn window. A failed call is logged and silently skipped.
func (a *App) relayToAssistant(c tele.Context, ctx context.Context, text string) error {
	chatID := c.Chat().ID

	tghelpers.Notify(c, tele.Typing)
	time.Sleep(replyDelay())

	recent, err := a.turns.Recent(ctx, chatID, a.cfg.Gemini.HistoryTurns)
	if err != nil {
		logger.Warn(ctx, "assistant", "history.load",
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
		recent = nil
	}
	window := make([]assistant.Turn, 0, len(recent))
	for _, t := range recent {
		window = append(window, assistant.Turn{Role: t.Role, Content: t.Content})
	}

	reply, err := a.ai.Reply(ctx, window, text)
	if err != nil {
		logger.Warn(ctx, "assistant", "reply.skip",
			slog.Int64("chat_id", chatID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return nil
	}

	if err := a.turns.Append(ctx, chatID, "user", text); err != nil {
		logger.Warn(ctx, "assistant", "history.append",
			slog.String("err", err.Error()),
		)
	}
	if err := a.turns.Append(ctx, chatID, "model", reply); err != nil {
		logger.Warn(ctx, "assistant", "history.append",
			slog.String("err", err.Error()),
		)
	}

	return tghelpers.ReplyMD(c, reply)
}

// sendCommitConfirmation acknowledges a journal commit with the updated
// streak, any unlocks and a tips shortcut for the first logged emotion.
func (a *App) sendCommitConfirmation(c tele.Context, rec *profile.Record, entry profile.Entry, unlocked []string) error {
	var b strings.Builder
	b.WriteString("Logged ✅\n")
	fmt.Fprintf(&b, "\n🔥 Streak: *%d*  📖 Entries: *%d*", rec.Streak, len(rec.History))
	b.WriteString(unlockNotice(unlocked))

	rows := [][]keyboard.InlineBtn{
		{{Text: "🏠 Menu", Unique: cbMenu}},
	}
	if len(entry.Emotions) > 0 {
		rows = append([][]keyboard.InlineBtn{
			{{Text: "💡 Coping tips", Unique: cbTips, Payload: entry.Emotions[0]}},
		}, rows...)
	}
	return tghelpers.SendMD(c, b.String(), keyboard.Inline(rows...))
}

// replyDelay returns the short humanizing pause before assistant replies.
func replyDelay() time.Duration {
	return 500*time.Millisecond + time.Duration(rand.Int63n(int64(time.Second)))
}
