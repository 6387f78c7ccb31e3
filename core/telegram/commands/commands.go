package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command is one registered slash command. Hidden commands are omitted from
// the Telegram command menu; AdminOnly ones are gated by the admin middleware.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}
