// Package commands describes slash commands registered on the bot.
package commands

import tele "gopkg.in/telebot.v4"

// Command represents a bot command with its handler, description, and metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	// AdminOnly commands are answered only for the configured admin chat and
	// are never published in the command menu.
	AdminOnly bool
	Hidden    bool
	Aliases   []string
}
