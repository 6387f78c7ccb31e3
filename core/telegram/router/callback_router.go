package router

import (
	"time"

	"emobots/core/telegram"
	"emobots/core/telegram/callbacks"

	tele "gopkg.in/telebot.v4"
)

// CallbackRoute dispatches inline keyboard callbacks through the registry.
// The callback data carries a key and an optional payload; unknown keys fall
// through to the registry's not-found handler.
func CallbackRoute(reg *telegram.Registry) telegram.Route {
	return telegram.Route{
		Endpoint: tele.OnCallback,
		Handler: func(c tele.Context) error {
			start := time.Now()
			key, _ := callbacks.ParseCallbackData(c)
			handlerName := "cb_" + normalizeHandlerName(key)
			if key == "" {
				handlerName = "cb_unknown"
			}
			return handleWithSummary(c, handlerName, start, func() error {
				handler, ok := reg.GetCallback(key)
				if !ok {
					return reg.CallbackNotFound()(c)
				}
				err := handler(c)
				// Always acknowledge so the client stops the spinner, even
				// when the handler already responded with an alert.
				_ = c.Respond()
				return err
			})
		},
	}
}
