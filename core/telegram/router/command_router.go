package router

import (
	"time"

	"emobots/core/telegram"
	"emobots/core/telegram/commands"
	"emobots/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CommandRoutes builds one route per registered command, including aliases.
// Admin-only commands are wrapped with the admin access middleware.
func CommandRoutes(reg *telegram.Registry, admin middleware.AdminOptions) []telegram.Route {
	routes := make([]telegram.Route, 0, 8)
	for name, cmd := range reg.Commands() {
		endpoints := append([]string{name}, cmd.Aliases...)
		handler := commandHandler(name, cmd)
		if cmd.AdminOnly {
			guard := middleware.AdminOnlyMiddleware(admin)
			handler = guard(handler)
		}
		for _, endpoint := range endpoints {
			routes = append(routes, telegram.Route{Endpoint: endpoint, Handler: handler})
		}
	}
	return routes
}

func commandHandler(name string, cmd commands.Command) tele.HandlerFunc {
	handlerName := "cmd_" + normalizeHandlerName(name)
	return func(c tele.Context) error {
		start := time.Now()
		return handleWithSummary(c, handlerName, start, func() error {
			return cmd.Handler(c)
		})
	}
}
