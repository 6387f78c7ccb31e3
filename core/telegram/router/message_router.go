package router

import (
	"time"

	"emobots/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// TextRoutes wires plain text messages: slash commands are resolved through
// the registry (covering aliases the command menu does not know about), and
// everything else goes to the registry's text fallback when one is set.
func TextRoutes(reg *telegram.Registry) []telegram.Route {
	return []telegram.Route{
		{
			Endpoint: tele.OnText,
			Handler: func(c tele.Context) error {
				start := time.Now()
				text := c.Text()
				if len(text) > 0 && text[0] == '/' {
					if name, cmd, ok := reg.LookupCommand(firstWord(text)); ok {
						return handleWithSummary(c, "cmd_"+normalizeHandlerName(name), start, func() error {
							return cmd.Handler(c)
						})
					}
				}
				fallback := reg.TextFallback()
				if fallback == nil {
					return nil
				}
				return handleWithSummary(c, "text_fallback", start, func() error {
					return fallback(c)
				})
			},
		},
	}
}

func firstWord(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
