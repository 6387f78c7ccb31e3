// Package app wires the OwlAI bot: a free-text relay to the Gemini-backed
// OWLai persona with per-chat conversation history.
package app

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"emobots/assistant"
	"emobots/core/config"
	"emobots/core/logger"
	"emobots/core/telegram"
	"emobots/core/telegram/commands"
	tghelpers "emobots/core/telegram/helpers"
	"emobots/core/telegram/middleware"
	"emobots/core/telegram/router"
	"emobots/store"
)

// App is the assembled bot.
type App struct {
	cfg   *config.Config
	turns *store.Turns
	ai    *assistant.Client
	reg   *telegram.Registry
}

// New assembles the bot from its collaborators.
func New(ctx context.Context, cfg *config.Config, db *sqlx.DB) (*App, error) {
	ai, err := assistant.New(ctx, cfg.Gemini)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:   cfg,
		turns: store.NewTurns(db),
		ai:    ai,
		reg:   telegram.NewRegistry(),
	}

	a.reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Meet OwlAI",
	})
	a.reg.RegisterCommand("/forget", commands.Command{
		Handler:     a.handleForget,
		Description: "Clear the conversation history for this chat",
		Aliases:     []string{"/reset"},
	})
	a.reg.SetTextFallback(a.handleText)

	return a, nil
}

// TelegramRunOptions builds the runtime wiring for the shared runner.
func (a *App) TelegramRunOptions() (telegram.RunOptions, error) {
	routes := router.CommandRoutes(a.reg, middleware.AdminOptions{AdminID: a.cfg.Telegram.AdminID})
	routes = append(routes, router.TextRoutes(a.reg)...)

	return telegram.RunOptions{
		Config:      a.cfg,
		Registry:    a.reg,
		Middlewares: telegram.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
	}, nil
}

func (a *App) handleStart(c tele.Context) error {
	return tghelpers.SendMD(c, assistant.IntroReply())
}

func (a *App) handleForget(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if err := a.turns.Purge(ctx, c.Chat().ID); err != nil {
		return err
	}
	logger.Info(ctx, "app", "history.purge",
		slog.Int64("chat_id", c.Chat().ID),
	)
	return tghelpers.SendText(c, "Forgotten. Clean slate. 🌱")
}

// handleText relays every non-command message to the persona, replying to
// the triggering message. Failures are logged and skipped without a reply.
func (a *App) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}

	ctx := tghelpers.BuildContext(c)
	chatID := c.Chat().ID

	tghelpers.Notify(c, tele.Typing)
	// A short humanizing pause before answering.
	time.Sleep(500*time.Millisecond + time.Duration(rand.Int63n(int64(time.Second))))

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
