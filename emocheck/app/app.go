// Package app wires the Emotions in Check bot: menus, check-in flows, the
// journal engine and the breathing sequencer on top of the shared core.
package app

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"emobots/assistant"
	"emobots/core/config"
	"emobots/core/telegram"
	"emobots/core/telegram/commands"
	"emobots/core/telegram/middleware"
	"emobots/core/telegram/router"
	"emobots/emocheck/breathing"
	"emobots/store"
)

// App is the assembled bot.
type App struct {
	cfg     *config.Config
	records *store.Records
	turns   *store.Turns
	ai      *assistant.Client
	seq     *breathing.Sequencer
	reg     *telegram.Registry

	bot atomic.Pointer[tele.Bot]

	// userMu serializes load-mutate-save per user; handlers for different
	// users run concurrently.
	userMu sync.Map // int64 -> *sync.Mutex

	// breathingViews maps user id to the message the sequencer re-renders.
	// In-memory only, like the timer handles themselves.
	viewMu         sync.Mutex
	breathingViews map[int64]tele.StoredMessage
}

// New assembles the bot from its collaborators.
func New(ctx context.Context, cfg *config.Config, db *sqlx.DB) (*App, error) {
	ai, err := assistant.New(ctx, cfg.Gemini)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:            cfg,
		records:        store.NewRecords(db),
		turns:          store.NewTurns(db),
		ai:             ai,
		reg:            telegram.NewRegistry(),
		breathingViews: make(map[int64]tele.StoredMessage),
	}
	a.seq = breathing.NewSequencer(breathing.Options{}, a.onBreathingTick, a.onBreathingDone)

	a.registerCommands()
	a.registerCallbacks()
	a.reg.SetTextFallback(a.handleText)

	return a, nil
}

// TelegramRunOptions builds the runtime wiring for the shared runner.
func (a *App) TelegramRunOptions() (telegram.RunOptions, error) {
	routes := router.CommandRoutes(a.reg, middleware.AdminOptions{AdminID: a.cfg.Telegram.AdminID})
	routes = append(routes, router.CallbackRoute(a.reg))
	routes = append(routes, router.TextRoutes(a.reg)...)

	return telegram.RunOptions{
		Config:      a.cfg,
		Registry:    a.reg,
		Middlewares: telegram.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt telegram.Runtime) error {
			a.bot.Store(rt.Bot)
			return nil
		},
		OnStop: func(ctx context.Context, rt telegram.Runtime) error {
			a.seq.StopAll()
			return nil
		},
	}, nil
}

func (a *App) registerCommands() {
	a.reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Start the bot and open the main menu",
	})
	a.reg.RegisterCommand("/menu", commands.Command{
		Handler:     a.handleMenu,
		Description: "Open the main menu",
		Aliases:     []string{"/home"},
	})
	a.reg.RegisterCommand("/history", commands.Command{
		Handler:     a.handleHistory,
		Description: "Show your recent journal entries",
	})
	a.reg.RegisterCommand("/achievements", commands.Command{
		Handler:     a.handleAchievements,
		Description: "Show your achievements",
	})
	a.reg.RegisterCommand("/breathe", commands.Command{
		Handler:     a.handleBreathe,
		Description: "Start a guided breathing exercise",
	})
	a.reg.RegisterCommand("/reset", commands.Command{
		Handler:     a.handleReset,
		Description: "Erase your journal and start over",
	})
	a.reg.RegisterCommand("/stats", commands.Command{
		Handler:     a.handleStats,
		Description: "Bot statistics",
		AdminOnly:   true,
		Hidden:      true,
	})
}

func (a *App) registerCallbacks() {
	for key, handler := range map[string]tele.HandlerFunc{
		cbMenu:         a.cbMenuHandler,
		cbCheckin:      a.cbCheckinHandler,
		cbMulti:        a.cbMultiHandler,
		cbEmotion:      a.cbEmotionHandler,
		cbIntensity:    a.cbIntensityHandler,
		cbToggle:       a.cbToggleHandler,
		cbConfirmMulti: a.cbConfirmMultiHandler,
		cbHistory:      a.cbHistoryHandler,
		cbAchievements: a.cbAchievementsHandler,
		cbBreathe:      a.cbBreatheHandler,
		cbStopBreathe:  a.cbStopBreatheHandler,
		cbBack:         a.cbBackHandler,
		cbDoneDelete:   a.cbDoneDeleteHandler,
		cbTips:         a.cbTipsHandler,
	} {
		_ = a.reg.RegisterCallback(key, handler)
	}
}

// withUser runs fn while holding the user's mutex.
func (a *App) withUser(userID int64, fn func() error) error {
	muIface, _ := a.userMu.LoadOrStore(userID, &sync.Mutex{})
	mu := muIface.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

func (a *App) rememberBreathingView(userID int64, msg *tele.Message) {
	if msg == nil {
		return
	}
	a.viewMu.Lock()
	a.breathingViews[userID] = tele.StoredMessage{
		MessageID: strconv.Itoa(msg.ID),
		ChatID:    msg.Chat.ID,
	}
	a.viewMu.Unlock()
}

func (a *App) breathingView(userID int64) (tele.StoredMessage, bool) {
	a.viewMu.Lock()
	defer a.viewMu.Unlock()
	view, ok := a.breathingViews[userID]
	return view, ok
}

func (a *App) forgetBreathingView(userID int64) {
	a.viewMu.Lock()
	delete(a.breathingViews, userID)
	a.viewMu.Unlock()
}
