package app

import (
	"errors"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"emobots/core/logger"
	"emobots/emocheck/breathing"
	"emobots/emocheck/journal"
	"emobots/emocheck/session"
)

var errBreathingStale = errors.New("breathing: session left breathing state")

// onBreathingTick renders one step into the remembered menu message. It
// verifies the session is still breathing before touching anything, so a
// tick that fires after a done_and_delete or stop is discarded.
func (a *App) onBreathingTick(userID int64, cycle, cycles int, step breathing.Step) error {
	ctx := logger.Background()

	var stale bool
	err := a.withUser(userID, func() error {
		rec, err := a.records.Load(ctx, userID)
		if err != nil {
			return err
		}
		stale = rec.Session.Kind != session.Breathing
		return nil
	})
	if err != nil {
		logger.Warn(ctx, "breathing", "tick.load",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return err
	}
	if stale {
		logger.Debug(ctx, "breathing", "tick.discard",
			slog.Int64("user_id", userID),
			slog.Int("cycle", cycle),
			slog.Int("step", int(step)),
		)
		return errBreathingStale
	}

	view, ok := a.breathingView(userID)
	if !ok {
		return errBreathingStale
	}
	bot := a.bot.Load()
	if bot == nil {
		return errBreathingStale
	}

	text, markup := breathingStepView(cycle, cycles, step)
	opts := &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: markup}
	if _, err := bot.Edit(view, text, opts); err != nil {
		// The edit can fail transiently; the sequence keeps going and the
		// next step retries with fresh text.
		logger.Warn(ctx, "breathing", "tick.edit",
			slog.Int64("user_id", userID),
			slog.Int("cycle", cycle),
			slog.Int("step", int(step)),
			slog.String("err", err.Error()),
		)
	}
	return nil
}

// onBreathingDone credits the completed sequence, sweeps achievements and
// renders the completion view.
func (a *App) onBreathingDone(userID int64) {
	ctx := logger.Background()

	var (
		unlocked []string
		count    int
	)
	err := a.withUser(userID, func() error {
		rec, err := a.records.Load(ctx, userID)
		if err != nil {
			return err
		}
		if rec.Session.Kind != session.Breathing {
			return errBreathingStale
		}
		unlocked = journal.CompleteBreathing(rec)
		count = rec.BreathingCount
		rec.Session = session.NewState()
		return a.records.Save(ctx, userID, rec)
	})
	if err != nil {
		if !errors.Is(err, errBreathingStale) {
			logger.Error(ctx, "breathing", "breathing.complete",
				slog.String("status", "fail"),
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		}
		a.forgetBreathingView(userID)
		return
	}

	logger.Info(ctx, "breathing", "breathing.complete",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Int("count", count),
		slog.String("achievement", joinNames(unlocked)),
	)

	view, ok := a.breathingView(userID)
	a.forgetBreathingView(userID)
	if !ok {
		return
	}
	bot := a.bot.Load()
	if bot == nil {
		return
	}
	text, markup := breathingDoneView(count, unlocked)
	opts := &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: markup}
	if _, err := bot.Edit(view, text, opts); err != nil {
		logger.Warn(ctx, "breathing", "complete.edit",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
	}
}
