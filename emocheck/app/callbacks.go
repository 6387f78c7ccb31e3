package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"emobots/core/logger"
	"emobots/core/telegram/callbacks"
	tghelpers "emobots/core/telegram/helpers"
	"emobots/emocheck/journal"
	"emobots/emocheck/profile"
	"emobots/emocheck/session"
)

func (a *App) cbMenuHandler(c tele.Context) error {
	return a.goHome(c, true)
}

func (a *App) cbCheckinHandler(c tele.Context) error {
	return a.dispatchCallback(c, session.Event{Kind: session.EventOpenEmotionMenu})
}

func (a *App) cbMultiHandler(c tele.Context) error {
	return a.dispatchCallback(c, session.Event{Kind: session.EventOpenMultiMenu})
}

func (a *App) cbEmotionHandler(c tele.Context) error {
	return a.dispatchCallback(c, session.Event{
		Kind:    session.EventChooseEmotion,
		Emotion: callbacks.Payload(c),
	})
}

func (a *App) cbIntensityHandler(c tele.Context) error {
	idx, ok := callbacks.PayloadInt(c)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
	}
	return a.dispatchCallback(c, session.Event{
		Kind:      session.EventChooseIntensity,
		Intensity: idx,
	})
}

func (a *App) cbToggleHandler(c tele.Context) error {
	return a.dispatchCallback(c, session.Event{
		Kind:    session.EventToggleEmotion,
		Emotion: callbacks.Payload(c),
	})
}

func (a *App) cbConfirmMultiHandler(c tele.Context) error {
	return a.dispatchCallback(c, session.Event{Kind: session.EventConfirmMulti})
}

func (a *App) cbHistoryHandler(c tele.Context) error {
	return a.dispatchCallback(c, session.Event{Kind: session.EventOpenHistory})
}

func (a *App) cbAchievementsHandler(c tele.Context) error {
	return a.dispatchCallback(c, session.Event{Kind: session.EventOpenAchievements})
}

func (a *App) cbBreatheHandler(c tele.Context) error {
	return a.dispatchCallback(c, session.Event{Kind: session.EventStartBreathing})
}

func (a *App) cbStopBreatheHandler(c tele.Context) error {
	return a.dispatchCallback(c, session.Event{Kind: session.EventStopBreathing})
}

func (a *App) cbBackHandler(c tele.Context) error {
	return a.dispatchCallback(c, session.Event{Kind: session.EventBack})
}

// cbDoneDeleteHandler closes the menu entirely: any active breathing timer
// is cancelled, the session returns home and the menu message is deleted so
// a stale tick has nothing left to edit.
func (a *App) cbDoneDeleteHandler(c tele.Context) error {
	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)
	err := a.withUser(userID, func() error {
		rec, err := a.records.Load(ctx, userID)
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
	return c.Delete()
}

func (a *App) cbTipsHandler(c tele.Context) error {
	name := callbacks.Payload(c)
	text, markup := tipsView(name)
	if text == "" {
		return c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
	}
	return tghelpers.EditOrSendMD(c, text, markup)
}

// dispatchCallback runs one session event for the pressing user and
// re-renders the menu message for the resulting state.
func (a *App) dispatchCallback(c tele.Context, ev session.Event) error {
	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)

	var render func() error
	err := a.withUser(userID, func() error {
		rec, err := a.records.Load(ctx, userID)
		if err != nil {
			return err
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

// applyEffect performs the transition's side effect and returns the render
// closure to run after the record is saved.
func (a *App) applyEffect(c tele.Context, ctx context.Context, rec *profile.Record, eff session.Effect) (func() error, error) {
	userID := c.Sender().ID

	switch eff.Kind {
	case session.EffectCommit:
		entry := profile.Entry{
			Emotions:  eff.Draft.Emotions,
			Intensity: eff.Draft.Intensity,
			Text:      eff.Draft.Text,
		}
		unlocked, err := journal.Commit(rec, entry, time.Now())
		if err != nil {
			// Unreachable through the flow; treat as an internal fault and
			// fall back home.
			logger.Error(ctx, "journal", "journal.commit",
				slog.String("status", "fail"),
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
			rec.Session = session.NewState()
			return func() error { return a.sendHome(c, rec) }, nil
		}
		logger.Info(ctx, "journal", "journal.commit",
			slog.String("status", "ok"),
			slog.Int64("user_id", userID),
			slog.Int("streak", rec.Streak),
			slog.Int("entries", len(rec.History)),
			slog.String("achievement", joinNames(unlocked)),
		)
		return func() error { return a.sendCommitConfirmation(c, rec, entry, unlocked) }, nil

	case session.EffectStartBreathing:
		return func() error {
			text, markup := breathingIntroView()
			opts := &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: markup}
			if c.Callback() != nil {
				// Reuse the menu message; the sequencer keeps editing it.
				if err := c.Edit(text, opts); err != nil {
					return err
				}
				a.rememberBreathingView(userID, c.Message())
			} else {
				msg, err := c.Bot().Send(c.Chat(), text, opts)
				if err != nil {
					return err
				}
				a.rememberBreathingView(userID, msg)
			}
			a.seq.Start(userID)
			logger.Info(ctx, "breathing", "breathing.start",
				slog.Int64("user_id", userID),
			)
			return nil
		}, nil

	case session.EffectCancelBreathing:
		a.seq.Stop(userID)
		a.forgetBreathingView(userID)
		logger.Info(ctx, "breathing", "breathing.stop",
			slog.Int64("user_id", userID),
		)
	}

	return func() error { return a.renderState(c, rec) }, nil
}

// renderState edits the current menu message to show the session's view.
func (a *App) renderState(c tele.Context, rec *profile.Record) error {
	var (
		text   string
		markup *tele.ReplyMarkup
	)
	switch rec.Session.Kind {
	case session.SelectEmotion:
		text, markup = emotionMenuView()
	case session.SelectIntensity:
		text, markup = intensityMenuView(rec.Session.Intensity.Emotion)
	case session.SelectMultiple:
		text, markup = multiMenuView(rec.Session.Multi.Selected)
	case session.Journal:
		text, markup = journalPromptView(rec.Session.Journal)
	case session.History:
		text, markup = historyView(rec)
	case session.Achievements:
		text, markup = achievementsView(rec)
	case session.Breathing:
		text, markup = breathingIntroView()
	default:
		text, markup = mainMenuView(rec)
	}
	return tghelpers.EditOrSendMD(c, text, markup)
}

func (a *App) reportTransitionError(c tele.Context, ctx context.Context, ev session.Event, err error) error {
	switch {
	case errors.Is(err, session.ErrEmptySelection):
		return c.Respond(&tele.CallbackResponse{Text: "Pick at least one emotion first"})
	case errors.Is(err, session.ErrUnknownEmotion):
		return c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
	case errors.Is(err, session.ErrIgnored):
		logger.Debug(ctx, "session", "event.ignored",
			slog.String("event", string(ev.Kind)),
		)
		if c.Callback() != nil {
			return c.Respond()
		}
		return nil
	}
	return err
}

func joinNames(names []string) string {
	out := ""
	for i, name := range names {
		if i > 0 {
			out += ","
		}
		out += name
	}
	return out
}
