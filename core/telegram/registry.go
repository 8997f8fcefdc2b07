package telegram

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/healthmode/core/logger"
	"github.com/m3rciful/healthmode/core/telegram/commands"
)

// Registry holds bot commands and the handler for free text.
type Registry struct {
	commands     map[string]commands.Command
	textFallback tele.HandlerFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]commands.Command)}
}

// RegisterCommand adds a new command. Invalid or duplicate registrations are logged and skipped.
func (r *Registry) RegisterCommand(name string, cmd commands.Command) {
	reason := ""
	switch {
	case r == nil || name == "" || cmd.Handler == nil || cmd.Description == "":
		reason = "invalid"
	case name[0] != '/':
		reason = "no_slash_prefix"
	default:
		if _, exists := r.commands[name]; exists {
			reason = "duplicate"
		}
	}
	if reason != "" {
		logger.TWire.LogAttrs(context.Background(), slog.LevelWarn, "register.command.skip",
			slog.String("name", name),
			slog.String("cause", reason),
		)
		return
	}
	r.commands[name] = cmd
}

// ListCommands returns commands sorted by name, optionally without hidden and admin-only ones.
func (r *Registry) ListCommands(visibleOnly bool) []tele.Command {
	var list []tele.Command
	for cmd, meta := range r.commands {
		if visibleOnly && (meta.Hidden || meta.AdminOnly) {
			continue
		}
		list = append(list, tele.Command{Text: strings.TrimPrefix(cmd, "/"), Description: meta.Description})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	return list
}

// LookupCommand finds a command by name or alias and returns its canonical key.
func (r *Registry) LookupCommand(name string) (string, commands.Command, bool) {
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	if cmd, ok := r.commands[name]; ok {
		return name, cmd, true
	}
	for key, cmd := range r.commands {
		for _, alias := range cmd.Aliases {
			if alias == name || "/"+alias == name {
				return key, cmd, true
			}
		}
	}
	return "", commands.Command{}, false
}

// Commands returns all registered commands.
func (r *Registry) Commands() map[string]commands.Command {
	return r.commands
}

// SetTextFallback sets the handler for text that is not a command.
func (r *Registry) SetTextFallback(h tele.HandlerFunc) {
	r.textFallback = h
}

// TextFallback returns the handler for text that is not a command.
func (r *Registry) TextFallback() tele.HandlerFunc {
	return r.textFallback
}

// CommandSetter is the part of *tele.Bot used to publish the command menu.
type CommandSetter interface {
	SetCommands(opts ...interface{}) error
}

// InitBotCommands publishes the visible commands to the Telegram command menu.
func InitBotCommands(bot CommandSetter, reg *Registry) {
	list := reg.ListCommands(true)
	if err := bot.SetCommands(list); err != nil {
		logger.TWire.LogAttrs(context.Background(), slog.LevelError, "register.commands.set_failed",
			slog.String("err", err.Error()),
		)
		return
	}
	logger.TWire.LogAttrs(context.Background(), slog.LevelInfo, "register.commands.set",
		slog.Int("count", len(list)),
	)
}
