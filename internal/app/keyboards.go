package app

import (
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/healthmode/core/telegram/keyboard"
	"github.com/m3rciful/healthmode/internal/content"
)

// markupFor maps a logical menu to Telegram reply markup. MenuNone leaves the
// current keyboard in place.
func markupFor(catalog *content.Catalog, m content.Menu) *tele.ReplyMarkup {
	switch m {
	case content.MenuNone:
		return nil
	case content.MenuRemove:
		return keyboard.RemoveKeyboard()
	}
	rows := catalog.Layout(m)
	if len(rows) == 0 {
		return nil
	}
	return keyboard.ReplyButtons(rows...)
}
